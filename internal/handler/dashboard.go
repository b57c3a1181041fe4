package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/eaterno-pos/backoffice/internal/masterdata"
)

// DashboardHandler serves the summary cards shown on the landing page.
type DashboardHandler struct {
	source Source
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(source Source) *DashboardHandler {
	return &DashboardHandler{source: source}
}

// RegisterRoutes registers dashboard endpoints on the given Chi router.
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.Summary)
}

type dashboardSummary struct {
	TransactionCount int             `json:"transactionCount"`
	Revenue          decimal.Decimal `json:"revenue"`
	AverageTicket    decimal.Decimal `json:"averageTicket"`
	ActiveProducts   int             `json:"activeProducts"`
	ShiftName        string          `json:"shiftName"`
}

// Summary aggregates today's transactions and the product catalog into the
// dashboard cards. Revenue math stays in decimal; rows without a parseable
// total count toward volume but not revenue.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}

	var txPayload, menuPayload, shiftPayload any
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		txPayload, err = h.source.GetJSON(ctx, tok, "/transactions")
		return err
	})
	g.Go(func() error {
		var err error
		menuPayload, err = h.source.GetJSON(ctx, tok, "/menus")
		return err
	})
	g.Go(func() error {
		var err error
		shiftPayload, err = h.source.GetJSON(ctx, tok, "/shifts/active")
		return err
	})
	if err := g.Wait(); err != nil {
		writeFetchError(w, "dashboard summary", err)
		return
	}

	transactions := masterdata.NormalizeTransactions(txPayload)
	shift := masterdata.NormalizeShift(shiftPayload)

	summary := dashboardSummary{
		TransactionCount: len(transactions),
		Revenue:          decimal.Zero,
		AverageTicket:    decimal.Zero,
		ShiftName:        shift.Name,
	}

	priced := 0
	for _, tx := range transactions {
		if tx.Total != nil {
			summary.Revenue = summary.Revenue.Add(*tx.Total)
			priced++
		}
	}
	if priced > 0 {
		summary.AverageTicket = summary.Revenue.DivRound(decimal.NewFromInt(int64(priced)), 2)
	}

	products := masterdata.NormalizeProducts(masterdata.ProductPayloads{Menus: menuPayload})
	for _, row := range products.Rows {
		if strings.EqualFold(row.Status, masterdata.StatusActive) {
			summary.ActiveProducts++
		}
	}

	writeJSON(w, http.StatusOK, summary)
}
