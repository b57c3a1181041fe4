package handler_test

import (
	"net/http"
	"testing"

	"github.com/eaterno-pos/backoffice/internal/handler"
	"github.com/eaterno-pos/backoffice/internal/upstream"
)

func seedDashboardPayloads(t *testing.T, source *mockSource) {
	t.Helper()
	source.set(t, "/transactions", listPayload(
		map[string]any{"id": "t1", "grand_total": 50000, "status": "paid"},
		map[string]any{"id": "t2", "grand_total": "30000", "status": "paid"},
		map[string]any{"id": "t3", "status": "pending"},
	))
	source.set(t, "/menus", listPayload(
		map[string]any{"id": 1, "name": "Nasi Goreng", "isActive": true},
		map[string]any{"id": 2, "name": "Es Teh", "isActive": false},
	))
	source.set(t, "/shifts/active", `{"data":{"id":"s1","name":"Pagi"}}`)
}

func TestDashboardSummary_Aggregates(t *testing.T) {
	source := newMockSource()
	seedDashboardPayloads(t, source)
	router := protectedRouter(handler.NewDashboardHandler(source).RegisterRoutes)

	rr := doRequest(t, router, "GET", "/dashboard/summary", nil, testSessionCookie(t))
	assertStatus(t, rr, http.StatusOK)

	resp := decodeResponse(t, rr)
	if resp["transactionCount"] != float64(3) {
		t.Errorf("transactionCount: got %v", resp["transactionCount"])
	}
	if resp["revenue"] != "80000" {
		t.Errorf("revenue: got %v", resp["revenue"])
	}
	// Average over the two priced transactions only.
	if resp["averageTicket"] != "40000" {
		t.Errorf("averageTicket: got %v", resp["averageTicket"])
	}
	if resp["activeProducts"] != float64(1) {
		t.Errorf("activeProducts: got %v", resp["activeProducts"])
	}
	if resp["shiftName"] != "Pagi" {
		t.Errorf("shiftName: got %v", resp["shiftName"])
	}
}

func TestDashboardSummary_UpstreamErrorReturnsFallback(t *testing.T) {
	source := newMockSource()
	seedDashboardPayloads(t, source)
	source.errs["/menus"] = &upstream.Error{StatusCode: http.StatusInternalServerError, Method: "GET", Path: "/menus"}
	router := protectedRouter(handler.NewDashboardHandler(source).RegisterRoutes)

	rr := doRequest(t, router, "GET", "/dashboard/summary", nil, testSessionCookie(t))
	assertStatus(t, rr, http.StatusBadGateway)
	assertFallbackMessage(t, rr)
}
