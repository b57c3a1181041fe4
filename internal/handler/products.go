package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/eaterno-pos/backoffice/internal/listing"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
	"github.com/eaterno-pos/backoffice/internal/middleware"
)

// ProductsHandler serves the product table: menus joined with prices,
// variants, and categories from the upstream backend.
type ProductsHandler struct {
	source Source
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(source Source) *ProductsHandler {
	return &ProductsHandler{source: source}
}

// RegisterRoutes registers product endpoints on the given Chi router.
func (h *ProductsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.List)
}

type productListResponse struct {
	listing.Page[masterdata.ProductRow]
	Categories []masterdata.CategoryOption `json:"categories"`
}

// List fetches the five upstream collections in parallel, folds them into
// table rows, and applies the query-string list controls.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
		return
	}
	tok := claims.Token()

	var payloads masterdata.ProductPayloads
	g, ctx := errgroup.WithContext(r.Context())
	fetch := func(path string, dst *any) {
		g.Go(func() error {
			payload, err := h.source.GetJSON(ctx, tok, path)
			if err != nil {
				return err
			}
			*dst = payload
			return nil
		})
	}
	fetch("/menus", &payloads.Menus)
	fetch("/menu-prices", &payloads.Prices)
	fetch("/menu-variants", &payloads.Variants)
	fetch("/menu-variant-items", &payloads.VariantItems)
	fetch("/categories", &payloads.Categories)
	if err := g.Wait(); err != nil {
		writeFetchError(w, "list products", err)
		return
	}

	table := masterdata.NormalizeProducts(payloads)

	params := listing.ParseParams(r.URL.Query(), "category", "status")
	page := listing.Apply(table.Rows, params, matchProduct, nil)

	writeJSON(w, http.StatusOK, productListResponse{
		Page:       page,
		Categories: table.Categories,
	})
}

func matchProduct(row masterdata.ProductRow, p listing.Params) bool {
	if q := strings.ToLower(p.Query); q != "" {
		if !strings.Contains(strings.ToLower(row.Name), q) &&
			!strings.Contains(strings.ToLower(row.SKU), q) {
			return false
		}
	}
	if cat := p.Filter("category"); cat != "" && row.CategoryID != cat {
		return false
	}
	if status := p.Filter("status"); status != "" && !strings.EqualFold(row.Status, status) {
		return false
	}
	return true
}
