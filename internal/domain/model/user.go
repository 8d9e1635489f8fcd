package model

// User is the profile returned by the backend on login or signup.
type User struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// AuthResult is the body of /auth/login and /auth/signup responses.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
