package handler_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/eaterno-pos/backoffice/internal/handler"
	"github.com/eaterno-pos/backoffice/internal/upstream"
)

type proxyCall struct {
	method string
	path   string
	body   string
	auth   string
}

type mockProxier struct {
	calls  []proxyCall
	status int
	body   string
	err    error
}

func (m *mockProxier) Do(_ context.Context, tok upstream.Token, method, path string, body []byte, _ http.Header) (*http.Response, error) {
	m.calls = append(m.calls, proxyCall{method: method, path: path, body: string(body), auth: tok.Header()})
	if m.err != nil {
		return nil, m.err
	}
	status := m.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(m.body)),
	}, nil
}

func TestProxyForward_RelaysRequestAndResponse(t *testing.T) {
	up := &mockProxier{status: http.StatusCreated, body: `{"id":"m1"}`}
	router := protectedRouter(handler.NewProxyHandler(up).RegisterRoutes)

	rr := doRequest(t, router, "POST", "/proxy/menus",
		map[string]string{"name": "Nasi Goreng"}, testSessionCookie(t))
	assertStatus(t, rr, http.StatusCreated)

	if len(up.calls) != 1 {
		t.Fatalf("expected 1 upstream call, got %d", len(up.calls))
	}
	call := up.calls[0]
	if call.method != "POST" || call.path != "/menus" {
		t.Errorf("forwarded %s %s", call.method, call.path)
	}
	if !strings.Contains(call.body, "Nasi Goreng") {
		t.Errorf("body not forwarded: %q", call.body)
	}
	if call.auth != "Bearer upstream-token" {
		t.Errorf("auth header: got %q", call.auth)
	}
	if rr.Body.String() != `{"id":"m1"}` {
		t.Errorf("response body: got %q", rr.Body.String())
	}
}

func TestProxyForward_KeepsQueryString(t *testing.T) {
	up := &mockProxier{body: `[]`}
	router := protectedRouter(handler.NewProxyHandler(up).RegisterRoutes)

	rr := doRequest(t, router, "GET", "/proxy/menus?page=2&limit=5", nil, testSessionCookie(t))
	assertStatus(t, rr, http.StatusOK)

	if up.calls[0].path != "/menus?page=2&limit=5" {
		t.Errorf("path: got %q", up.calls[0].path)
	}
}

func TestProxyForward_UpstreamErrorReturnsFallback(t *testing.T) {
	up := &mockProxier{err: &upstream.Error{StatusCode: http.StatusBadGateway, Method: "DELETE", Path: "/menus/1"}}
	router := protectedRouter(handler.NewProxyHandler(up).RegisterRoutes)

	rr := doRequest(t, router, "DELETE", "/proxy/menus/1", nil, testSessionCookie(t))
	assertStatus(t, rr, http.StatusBadGateway)
	assertFallbackMessage(t, rr)
}

func TestProxyForward_RequiresSession(t *testing.T) {
	up := &mockProxier{}
	router := protectedRouter(handler.NewProxyHandler(up).RegisterRoutes)

	rr := doRequest(t, router, "DELETE", "/proxy/menus/1", nil)
	assertStatus(t, rr, http.StatusUnauthorized)
	if len(up.calls) != 0 {
		t.Error("upstream must not be called without a session")
	}
}
