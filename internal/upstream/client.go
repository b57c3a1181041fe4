// Package upstream is the HTTP client for the POS backend that owns all
// business logic. This service never interprets upstream failures beyond
// success/failure: there are no retries and no backoff, and callers surface a
// single generic message to the UI.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// FallbackMessage is the generic user-facing failure string the admin UI
// shows for any upstream problem.
const FallbackMessage = "Gagal memuat data."

// Token is the opaque upstream credential attached to every request.
type Token struct {
	Type   string `json:"tokenType"`
	Access string `json:"accessToken"`
}

// Header renders the Authorization header value. The token type defaults to
// Bearer when the upstream did not name one.
func (t Token) Header() string {
	if t.Access == "" {
		return ""
	}
	typ := t.Type
	if typ == "" {
		typ = "Bearer"
	}
	return typ + " " + t.Access
}

// Error reports a non-2xx upstream answer.
type Error struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the upstream backend. The embedded timeout bounds every
// request so a hung upstream cannot hang the caller indefinitely.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL (e.g. "https://api.example.com/api").
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Do executes one upstream request with the token attached. A PATCH answered
// with 404 or 405 is replayed as PUT; some upstream deployments predate PATCH
// support. The response body is the caller's to close.
func (c *Client) Do(ctx context.Context, tok Token, method, path string, body []byte, header http.Header) (*http.Response, error) {
	resp, err := c.send(ctx, tok, method, path, body, header)
	if err != nil {
		return nil, err
	}

	if method == http.MethodPatch &&
		(resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed) {
		resp.Body.Close()
		return c.send(ctx, tok, http.MethodPut, path, body, header)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, tok Token, method, path string, body []byte, header http.Header) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth := tok.Header(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	return c.http.Do(req)
}

// GetJSON fetches path and decodes the body without assuming a shape; the
// normalizers deal with whatever comes back.
func (c *Client) GetJSON(ctx context.Context, tok Token, path string) (any, error) {
	return c.roundTripJSON(ctx, tok, http.MethodGet, path, nil)
}

// PostJSON posts a JSON payload and decodes the response the same way.
func (c *Client) PostJSON(ctx context.Context, tok Token, path string, payload any) (any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode upstream payload: %w", err)
	}
	return c.roundTripJSON(ctx, tok, http.MethodPost, path, body)
}

func (c *Client) roundTripJSON(ctx context.Context, tok Token, method, path string, body []byte) (any, error) {
	resp, err := c.Do(ctx, tok, method, path, body, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode upstream response: %w", err)
	}
	return decoded, nil
}
