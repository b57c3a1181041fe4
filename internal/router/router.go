package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eaterno-pos/backoffice/internal/config"
	"github.com/eaterno-pos/backoffice/internal/handler"
	"github.com/eaterno-pos/backoffice/internal/localstate"
	mw "github.com/eaterno-pos/backoffice/internal/middleware"
	"github.com/eaterno-pos/backoffice/internal/notify"
	"github.com/eaterno-pos/backoffice/internal/upstream"
	"github.com/eaterno-pos/backoffice/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Everything except health, login, and the WebSocket endpoint sits behind
// the session middleware.
func New(cfg *config.Config, up *upstream.Client, store *localstate.Store, hub *ws.Hub, notifier *notify.Notifier) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(up, cfg.SessionSecret, notifier)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param or cookie)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.SessionSecret, w, r)
	})

	// Protected routes (require a session)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.SessionSecret))

		authHandler.RegisterSessionRoutes(r)

		listsHandler := handler.NewListsHandler(up)

		handler.NewDashboardHandler(up).RegisterRoutes(r)
		handler.NewProductsHandler(up).RegisterRoutes(r)
		listsHandler.RegisterRoutes(r)
		handler.NewKitchenHandler(up).RegisterRoutes(r)
		handler.NewTablesHandler(up, store, hub).RegisterRoutes(r)
		handler.NewNotificationsHandler(notifier).RegisterRoutes(r)

		// Write pass-through for the CRUD forms
		handler.NewProxyHandler(up).RegisterRoutes(r)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole("admin", "owner"))
			listsHandler.RegisterAdminRoutes(r)
		})
	})

	return r
}
