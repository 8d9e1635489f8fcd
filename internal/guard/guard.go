// Package guard decides which console routes a session may enter.
package guard

import (
	"path"
	"strings"
)

const (
	LoginPath     = "/login"
	SignupPath    = "/signup"
	DashboardPath = "/dashboard"
)

var public = map[string]bool{
	LoginPath:  true,
	SignupPath: true,
}

var protected = map[string]bool{
	DashboardPath: true,
	"/customers":  true,
	"/orders":     true,
	"/products":   true,
	"/settings":   true,
}

// SessionSource reports whether a token is held. session.Store satisfies it.
type SessionSource interface {
	Authenticated() bool
}

// Decision is the outcome of one navigation.
type Decision struct {
	// Path is where navigation ends up.
	Path string `json:"path"`
	// Allowed is false when the requested path could not be entered as is.
	Allowed bool `json:"allowed"`
	// Redirect is set when Path differs from the requested path.
	Redirect bool `json:"redirect"`
}

// Resolve evaluates path against the current session. It is evaluated on
// every call; nothing is cached.
func Resolve(src SessionSource, requested string) Decision {
	clean := Clean(requested)
	target := clean
	if !public[target] && !protected[target] {
		target = DashboardPath
	}
	if protected[target] && (src == nil || !src.Authenticated()) {
		target = LoginPath
	}
	return Decision{
		Path:     target,
		Allowed:  target == clean,
		Redirect: target != clean,
	}
}

// Protected reports whether path needs a session.
func Protected(p string) bool {
	return protected[Clean(p)]
}

// Clean normalizes a navigation path: leading slash, no trailing slash, no
// query or fragment.
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + strings.TrimSpace(p))
}
