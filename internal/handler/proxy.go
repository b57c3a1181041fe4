package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/upstream"
)

// Proxier is the raw pass-through slice of the upstream client.
// Satisfied by *upstream.Client.
type Proxier interface {
	Do(ctx context.Context, tok upstream.Token, method, path string, body []byte, header http.Header) (*http.Response, error)
}

// ProxyHandler forwards write operations the back office does not reshape
// (create/update/delete forms) straight to the upstream backend, with the
// session's token attached. The PATCH to PUT replay happens inside the
// client.
type ProxyHandler struct {
	upstream Proxier
}

// NewProxyHandler creates a new ProxyHandler.
func NewProxyHandler(up Proxier) *ProxyHandler {
	return &ProxyHandler{upstream: up}
}

// RegisterRoutes registers the pass-through route on the given Chi router.
func (h *ProxyHandler) RegisterRoutes(r chi.Router) {
	r.HandleFunc("/proxy/*", h.Forward)
}

// Forward relays the request to the upstream backend and copies the response
// back verbatim.
func (h *ProxyHandler) Forward(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}

	path := "/" + chi.URLParam(r, "*")
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if len(body) == 0 {
			body = nil
		}
	}

	header := make(http.Header)
	for _, key := range []string{"Content-Type", "Accept"} {
		if v := r.Header.Get(key); v != "" {
			header.Set(key, v)
		}
	}

	resp, err := h.upstream.Do(r.Context(), tok, r.Method, path, body, header)
	if err != nil {
		writeFetchError(w, "proxy "+r.Method+" "+path, err)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if hopByHop(key) {
			continue
		}
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Printf("ERROR: proxy copy response: %v", err)
	}
}

func hopByHop(key string) bool {
	switch strings.ToLower(key) {
	case "connection", "keep-alive", "transfer-encoding", "upgrade",
		"proxy-authenticate", "proxy-authorization", "te", "trailer":
		return true
	}
	return false
}
