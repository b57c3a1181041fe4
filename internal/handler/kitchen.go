package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/listing"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
)

// KitchenHandler serves the kitchen display: open orders with their ticket
// lines.
type KitchenHandler struct {
	source Source
}

// NewKitchenHandler creates a new KitchenHandler.
func NewKitchenHandler(source Source) *KitchenHandler {
	return &KitchenHandler{source: source}
}

// RegisterRoutes registers kitchen endpoints on the given Chi router.
func (h *KitchenHandler) RegisterRoutes(r chi.Router) {
	r.Get("/kitchen/orders", h.Orders)
}

// Orders lists kitchen orders, filterable by status and searchable by code
// and table.
func (h *KitchenHandler) Orders(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}

	payload, err := h.source.GetJSON(r.Context(), tok, "/orders")
	if err != nil {
		writeFetchError(w, "list kitchen orders", err)
		return
	}

	rows := masterdata.NormalizeKitchenOrders(payload)
	params := listing.ParseParams(r.URL.Query(), "status")
	page := listing.Apply(rows, params, func(row masterdata.KitchenOrderRow, p listing.Params) bool {
		if status := p.Filter("status"); status != "" && !strings.EqualFold(row.Status, status) {
			return false
		}
		return matchQuery(p.Query, row.Code, row.TableLabel)
	}, nil)

	writeJSON(w, http.StatusOK, page)
}
