package test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// DemoEmail and DemoPassword are accepted by every FakeBackend.
const (
	DemoEmail    = "demo@fins.io"
	DemoPassword = "demo"
)

// RecordedRequest is a request seen by FakeBackend.
type RecordedRequest struct {
	Method        string
	Path          string
	EscapedPath   string
	Query         string
	Authorization string
	Body          string
}

type failure struct {
	status int
	body   string
	once   bool
}

// FakeBackend is an in-memory commerce backend served over httptest.
// Collections hold decoded JSON objects keyed by numeric id.
type FakeBackend struct {
	Server *httptest.Server

	mu          sync.Mutex
	nextID      int
	collections map[string]map[int]map[string]any
	users       map[string]fakeUser
	failures    map[string]failure
	requests    []RecordedRequest
	before      func(*http.Request)
	requireAuth bool
}

type fakeUser struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	password string
}

// NewFakeBackend starts the server and closes it on test cleanup.
func NewFakeBackend(t testing.TB) *FakeBackend {
	t.Helper()
	fb := &FakeBackend{
		nextID: 1,
		collections: map[string]map[int]map[string]any{
			"customers": {},
			"products":  {},
			"orders":    {},
		},
		users: map[string]fakeUser{
			DemoEmail: {ID: 1, Name: "Demo", Email: DemoEmail, password: DemoPassword},
		},
		failures: make(map[string]failure),
	}
	fb.Server = httptest.NewServer(http.HandlerFunc(fb.serve))
	t.Cleanup(fb.Server.Close)
	return fb
}

// URL is the base URL of the fake.
func (fb *FakeBackend) URL() string { return fb.Server.URL }

// RequireAuth makes resource endpoints answer 401 without a bearer token.
func (fb *FakeBackend) RequireAuth() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.requireAuth = true
}

// Before installs a hook run ahead of every request, outside the fake's lock.
func (fb *FakeBackend) Before(fn func(*http.Request)) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.before = fn
}

// Fail makes "METHOD /path" answer status with body until cleared.
func (fb *FakeBackend) Fail(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[method+" "+path] = failure{status: status, body: body}
}

// FailOnce is Fail for a single request.
func (fb *FakeBackend) FailOnce(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures[method+" "+path] = failure{status: status, body: body, once: true}
}

// ClearFailures removes every injected failure.
func (fb *FakeBackend) ClearFailures() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.failures = make(map[string]failure)
}

// Seed stores entity (any JSON-encodable value) in kind and returns its id.
func (fb *FakeBackend) Seed(kind string, entity any) int {
	raw, err := json.Marshal(entity)
	if err != nil {
		panic(err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		panic(err)
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	id := fb.nextID
	fb.nextID++
	obj["id"] = id
	fb.collections[kind][id] = obj
	return id
}

// Count returns the number of stored entities of kind.
func (fb *FakeBackend) Count(kind string) int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.collections[kind])
}

// Requests returns a copy of every recorded request.
func (fb *FakeBackend) Requests() []RecordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]RecordedRequest(nil), fb.requests...)
}

// RequestCount counts recorded requests matching method and path.
func (fb *FakeBackend) RequestCount(method, path string) int {
	n := 0
	for _, r := range fb.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (fb *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	before := fb.before
	fb.requests = append(fb.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		EscapedPath:   r.URL.EscapedPath(),
		Query:         r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Body:          string(body),
	})
	fb.mu.Unlock()

	if before != nil {
		before(r)
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	if f, ok := fb.failures[key]; ok {
		if f.once {
			delete(fb.failures, key)
		}
		w.WriteHeader(f.status)
		_, _ = io.WriteString(w, f.body)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(segments) == 2 && segments[0] == "auth":
		fb.serveAuth(w, segments[1], body)
	case len(segments) == 2 && segments[0] == "analytics" && segments[1] == "overview":
		if !fb.authorized(w, r) {
			return
		}
		fb.serveOverview(w, r)
	case len(segments) >= 1 && fb.collections[segments[0]] != nil:
		if !fb.authorized(w, r) {
			return
		}
		fb.serveCollection(w, r, segments, body)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (fb *FakeBackend) authorized(w http.ResponseWriter, r *http.Request) bool {
	if !fb.requireAuth || strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		return true
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
	return false
}

func (fb *FakeBackend) serveAuth(w http.ResponseWriter, action string, body []byte) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid body"})
		return
	}
	switch action {
	case "login":
		u, ok := fb.users[in.Email]
		if !ok || u.password != in.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "token-" + u.Email, "user": u})
	case "signup":
		if _, exists := fb.users[in.Email]; exists {
			writeJSON(w, http.StatusConflict, map[string]string{"detail": "Email already registered"})
			return
		}
		u := fakeUser{ID: len(fb.users) + 1, Name: in.Name, Email: in.Email, password: in.Password}
		fb.users[in.Email] = u
		writeJSON(w, http.StatusCreated, map[string]any{"token": "token-" + u.Email, "user": u})
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (fb *FakeBackend) serveCollection(w http.ResponseWriter, r *http.Request, segments []string, body []byte) {
	kind := segments[0]
	items := fb.collections[kind]

	if len(segments) == 1 {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, fb.list(kind, r))
		case http.MethodPost:
			obj, ok := decodeObject(w, body)
			if !ok {
				return
			}
			id := fb.nextID
			fb.nextID++
			obj["id"] = id
			items[id] = obj
			writeJSON(w, http.StatusCreated, obj)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	id, err := strconv.Atoi(segments[1])
	if err != nil || items[id] == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	switch r.Method {
	case http.MethodPut:
		obj, ok := decodeObject(w, body)
		if !ok {
			return
		}
		obj["id"] = id
		items[id] = obj
		writeJSON(w, http.StatusOK, obj)
	case http.MethodDelete:
		delete(items, id)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, items[id])
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (fb *FakeBackend) list(kind string, r *http.Request) []map[string]any {
	q := r.URL.Query()
	ids := make([]int, 0, len(fb.collections[kind]))
	for id := range fb.collections[kind] {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		obj := fb.collections[kind][id]
		if !matches(kind, obj, q.Get("q"), q.Get("category"), q.Get("status")) {
			continue
		}
		out = append(out, obj)
	}
	return out
}

func matches(kind string, obj map[string]any, text, category, status string) bool {
	switch kind {
	case "customers":
		if text == "" {
			return true
		}
		text = strings.ToLower(text)
		name, _ := obj["name"].(string)
		email, _ := obj["email"].(string)
		return strings.Contains(strings.ToLower(name), text) || strings.Contains(strings.ToLower(email), text)
	case "products":
		return category == "" || obj["category"] == category
	case "orders":
		return status == "" || obj["status"] == status
	}
	return true
}

func (fb *FakeBackend) serveOverview(w http.ResponseWriter, r *http.Request) {
	var total float64
	count := 0
	for _, order := range fb.collections["orders"] {
		count++
		lines, _ := order["items"].([]any)
		for _, l := range lines {
			line, _ := l.(map[string]any)
			qty, _ := line["quantity"].(float64)
			price, _ := line["price"].(float64)
			total += qty * price
		}
	}
	avg := 0.0
	if count > 0 {
		avg = total / float64(count)
	}
	q := r.URL.Query()
	trend := []map[string]any{}
	if d := q.Get("start_date"); d != "" {
		trend = append(trend, map[string]any{"date": d, "sales": total})
	}
	top := []map[string]any{}
	if c := q.Get("category"); c != "" {
		top = append(top, map[string]any{"category": c, "sales": total})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_sales":     total,
		"orders_count":    count,
		"avg_order_value": avg,
		"top_categories":  top,
		"trend":           trend,
	})
}

func decodeObject(w http.ResponseWriter, body []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]string{{"msg": fmt.Sprintf("invalid body: %v", err)}},
		})
		return nil, false
	}
	return obj, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
