package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/auth"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
	"github.com/eaterno-pos/backoffice/internal/middleware"
	"github.com/eaterno-pos/backoffice/internal/upstream"
)

// AuthSource defines the upstream calls auth handlers need.
// Satisfied by *upstream.Client; narrow interface for testability.
type AuthSource interface {
	PostJSON(ctx context.Context, tok upstream.Token, path string, payload any) (any, error)
}

// TokenSink receives the upstream credential after a successful login, so
// background polling can run with it. Satisfied by *notify.Notifier.
type TokenSink interface {
	SetToken(tok upstream.Token)
}

// AuthHandler exchanges upstream credentials for a signed session cookie.
// Passwords are never stored or verified here; the upstream backend owns
// authentication.
type AuthHandler struct {
	source        AuthSource
	sessionSecret string
	tokenSink     TokenSink
}

// NewAuthHandler creates a new AuthHandler. tokenSink may be nil.
func NewAuthHandler(source AuthSource, sessionSecret string, tokenSink TokenSink) *AuthHandler {
	return &AuthHandler{source: source, sessionSecret: sessionSecret, tokenSink: tokenSink}
}

// RegisterRoutes registers auth endpoints on the given Chi router.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
}

// RegisterSessionRoutes registers endpoints that require a session.
func (h *AuthHandler) RegisterSessionRoutes(r chi.Router) {
	r.Get("/auth/me", h.Me)
}

// --- Request / Response types ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// --- Handlers ---

// Login forwards credentials upstream and, on success, wraps the returned
// token in a session cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	payload, err := h.source.PostJSON(r.Context(), upstream.Token{}, "/auth/login", map[string]string{
		"email":    req.Email,
		"password": req.Password,
	})
	if err != nil {
		var upErr *upstream.Error
		if errors.As(err, &upErr) && (upErr.StatusCode == http.StatusUnauthorized || upErr.StatusCode == http.StatusBadRequest) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeFetchError(w, "login", err)
		return
	}

	result := masterdata.NormalizeLogin(payload)
	if result.AccessToken == "" {
		log.Printf("ERROR: login: upstream response carried no token")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": upstream.FallbackMessage})
		return
	}

	tok := upstream.Token{Type: result.TokenType, Access: result.AccessToken}
	session, err := auth.GenerateSession(h.sessionSecret, result.UserID, result.Name, result.Role, tok)
	if err != nil {
		log.Printf("ERROR: login: sign session: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	if h.tokenSink != nil {
		h.tokenSink.SetToken(tok)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, sessionResponse{
		UserID: result.UserID,
		Name:   result.Name,
		Role:   result.Role,
	})
}

// Logout clears the session cookie. The upstream token is simply forgotten;
// upstream owns its own expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Me returns the profile carried by the active session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   claims.Role,
	})
}
