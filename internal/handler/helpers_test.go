package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/auth"
	"github.com/eaterno-pos/backoffice/internal/middleware"
	"github.com/eaterno-pos/backoffice/internal/upstream"
)

const testSecret = "test-session-secret"

// --- Mock upstream source ---

type mockSource struct {
	mu       sync.Mutex
	payloads map[string]any
	errs     map[string]error
	calls    []string
}

func newMockSource() *mockSource {
	return &mockSource{payloads: make(map[string]any), errs: make(map[string]error)}
}

// set stores the payload served for path, decoded from raw JSON.
func (m *mockSource) set(t *testing.T, path, raw string) {
	t.Helper()
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal payload for %s: %v", path, err)
	}
	m.payloads[path] = payload
}

func (m *mockSource) GetJSON(_ context.Context, _ upstream.Token, path string) (any, error) {
	m.mu.Lock()
	m.calls = append(m.calls, "GET "+path)
	m.mu.Unlock()
	if err, ok := m.errs[path]; ok {
		return nil, err
	}
	payload, ok := m.payloads[path]
	if !ok {
		return nil, &upstream.Error{StatusCode: http.StatusNotFound, Method: "GET", Path: path}
	}
	return payload, nil
}

// --- Helpers ---

func testSessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	session, err := auth.GenerateSession(testSecret, "user-1", "Test User", "admin",
		upstream.Token{Type: "Bearer", Access: "upstream-token"})
	if err != nil {
		t.Fatalf("generate session: %v", err)
	}
	return &http.Cookie{Name: middleware.SessionCookie, Value: session}
}

// protectedRouter wires routes behind the session middleware the way the
// server does.
func protectedRouter(register func(chi.Router)) *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret))
		register(r)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rr.Body.String())
	}
	return resp
}

func rowsOf(t *testing.T, resp map[string]any) []any {
	t.Helper()
	rows, ok := resp["rows"].([]any)
	if !ok {
		t.Fatalf("response has no rows array: %v", resp)
	}
	return rows
}

// listPayload builds a {"data": [...]} wrapper around the given rows.
func listPayload(rows ...map[string]any) string {
	items := make([]any, 0, len(rows))
	for _, r := range rows {
		items = append(items, r)
	}
	data, _ := json.Marshal(map[string]any{"data": items})
	return string(data)
}

func assertStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rr.Code != want {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, want, rr.Body.String())
	}
}

func assertFallbackMessage(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	resp := decodeResponse(t, rr)
	if resp["error"] != upstream.FallbackMessage {
		t.Errorf("error message: got %v, want %q", resp["error"], upstream.FallbackMessage)
	}
}
