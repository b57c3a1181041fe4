package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/eaterno-pos/backoffice/internal/upstream"
)

// Source is the slice of the upstream client handlers fetch through.
// Satisfied by *upstream.Client; narrow interface for testability.
type Source interface {
	GetJSON(ctx context.Context, tok upstream.Token, path string) (any, error)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// writeFetchError converts any upstream failure into the single generic
// message the UI shows. Transient backend errors are deliberately
// indistinguishable from "no data" for the user; the log keeps the detail.
func writeFetchError(w http.ResponseWriter, op string, err error) {
	log.Printf("ERROR: %s: %v", op, err)

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": upstream.FallbackMessage})
		return
	}
	if errors.Is(err, context.DeadlineExceeded) {
		writeJSON(w, http.StatusGatewayTimeout, map[string]string{"error": upstream.FallbackMessage})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": upstream.FallbackMessage})
}
