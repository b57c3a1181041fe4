package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/listing"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
	"github.com/eaterno-pos/backoffice/internal/middleware"
	"github.com/eaterno-pos/backoffice/internal/upstream"
)

// ListsHandler serves the simple table pages that all follow the same
// fetch → normalize → filter/paginate shape. Each endpoint is one
// listing.Resource bound to its upstream path and normalizer.
type ListsHandler struct {
	source Source
}

// NewListsHandler creates a new ListsHandler.
func NewListsHandler(source Source) *ListsHandler {
	return &ListsHandler{source: source}
}

// RegisterRoutes registers the list endpoints every signed-in user can see.
func (h *ListsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.Categories)
	r.Get("/addons", h.AddOns)
	r.Get("/ingredients", h.Ingredients)
	r.Get("/transactions", h.Transactions)
}

// RegisterAdminRoutes registers the management pages reserved for admins.
func (h *ListsHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/roles", h.Roles)
	r.Get("/users", h.Users)
	r.Get("/activity-logs", h.ActivityLogs)
}

func (h *ListsHandler) fetcher(tok upstream.Token, path string) func(ctx context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return h.source.GetJSON(ctx, tok, path)
	}
}

// serve runs one resource end to end and writes the page or the fallback.
func serve[T any](w http.ResponseWriter, r *http.Request, op string, res listing.Resource[T], filterNames ...string) {
	params := listing.ParseParams(r.URL.Query(), filterNames...)
	page, err := res.Load(r.Context(), params)
	if err != nil {
		writeFetchError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func sessionToken(w http.ResponseWriter, r *http.Request) (upstream.Token, bool) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return upstream.Token{}, false
	}
	return claims.Token(), true
}

// Categories lists the product category filter options.
func (h *ListsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list categories", listing.Resource[masterdata.CategoryOption]{
		Fetch:     h.fetcher(tok, "/categories"),
		Normalize: masterdata.NormalizeCategories,
		Match: func(row masterdata.CategoryOption, p listing.Params) bool {
			return matchQuery(p.Query, row.Label)
		},
	})
}

// Roles lists roles with client-side search over name and description.
func (h *ListsHandler) Roles(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list roles", listing.Resource[masterdata.RoleRow]{
		Fetch:     h.fetcher(tok, "/roles"),
		Normalize: masterdata.NormalizeRoles,
		Match: func(row masterdata.RoleRow, p listing.Params) bool {
			return matchQuery(p.Query, row.Name, row.Description)
		},
	})
}

// Users lists users, searchable by name and email and filterable by role.
func (h *ListsHandler) Users(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list users", listing.Resource[masterdata.UserRow]{
		Fetch:     h.fetcher(tok, "/users"),
		Normalize: masterdata.NormalizeUsers,
		Match: func(row masterdata.UserRow, p listing.Params) bool {
			if role := p.Filter("role"); role != "" && !strings.EqualFold(row.Role, role) {
				return false
			}
			return matchQuery(p.Query, row.Name, row.Email)
		},
	}, "role")
}

// AddOns lists add-ons, searchable by name and filterable by status.
func (h *ListsHandler) AddOns(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list addons", listing.Resource[masterdata.AddOnRow]{
		Fetch:     h.fetcher(tok, "/addons"),
		Normalize: masterdata.NormalizeAddOns,
		Match: func(row masterdata.AddOnRow, p listing.Params) bool {
			if status := p.Filter("status"); status != "" && !strings.EqualFold(row.Status, status) {
				return false
			}
			return matchQuery(p.Query, row.Name)
		},
	}, "status")
}

// Ingredients lists ingredients, searchable by name and filterable by status.
func (h *ListsHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list ingredients", listing.Resource[masterdata.IngredientRow]{
		Fetch:     h.fetcher(tok, "/ingredients"),
		Normalize: masterdata.NormalizeIngredients,
		Match: func(row masterdata.IngredientRow, p listing.Params) bool {
			if status := p.Filter("status"); status != "" && !strings.EqualFold(row.Status, status) {
				return false
			}
			return matchQuery(p.Query, row.Name)
		},
	}, "status")
}

// ActivityLogs lists the audit trail, searchable across actor, action, and
// detail.
func (h *ListsHandler) ActivityLogs(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list activity logs", listing.Resource[masterdata.ActivityRow]{
		Fetch:     h.fetcher(tok, "/activity-logs"),
		Normalize: masterdata.NormalizeActivityLogs,
		Match: func(row masterdata.ActivityRow, p listing.Params) bool {
			return matchQuery(p.Query, row.Actor, row.Action, row.Detail)
		},
	})
}

// Transactions lists sales transactions for the report page, searchable by
// code and cashier and filterable by status.
func (h *ListsHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}
	serve(w, r, "list transactions", listing.Resource[masterdata.TransactionRow]{
		Fetch:     h.fetcher(tok, "/transactions"),
		Normalize: masterdata.NormalizeTransactions,
		Match: func(row masterdata.TransactionRow, p listing.Params) bool {
			if status := p.Filter("status"); status != "" && !strings.EqualFold(row.Status, status) {
				return false
			}
			return matchQuery(p.Query, row.Code, row.CashierName)
		},
	}, "status")
}

// matchQuery reports whether any field contains the query,
// case-insensitively. An empty query matches everything.
func matchQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
