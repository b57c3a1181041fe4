package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/localstate"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
	"github.com/eaterno-pos/backoffice/internal/ws"
)

// TableBroadcaster publishes table events to connected floor views.
// Satisfied by *ws.Hub.
type TableBroadcaster interface {
	Broadcast(topic string, event ws.Event)
}

// TablesHandler serves the floor view: upstream tables overlaid with local
// status overrides. Overrides live in the state store so a restart keeps
// them; last write wins.
type TablesHandler struct {
	source Source
	store  *localstate.Store
	hub    TableBroadcaster
}

// NewTablesHandler creates a new TablesHandler.
func NewTablesHandler(source Source, store *localstate.Store, hub TableBroadcaster) *TablesHandler {
	return &TablesHandler{source: source, store: store, hub: hub}
}

// RegisterRoutes registers table endpoints on the given Chi router.
func (h *TablesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tables", h.List)
	r.Put("/tables/{tableID}/status", h.UpdateStatus)
}

// List returns the dining tables with any local status overrides applied.
func (h *TablesHandler) List(w http.ResponseWriter, r *http.Request) {
	tok, ok := sessionToken(w, r)
	if !ok {
		return
	}

	payload, err := h.source.GetJSON(r.Context(), tok, "/tables")
	if err != nil {
		writeFetchError(w, "list tables", err)
		return
	}

	rows := masterdata.NormalizeTables(payload)

	overrides, err := h.loadOverrides()
	if err != nil {
		log.Printf("ERROR: load table overrides: %v", err)
		overrides = map[string]string{}
	}
	for i, row := range rows {
		if status, ok := overrides[row.ID]; ok && status != "" {
			rows[i].Status = status
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

type tableStatusRequest struct {
	Status string `json:"status"`
}

type tableStatusEvent struct {
	TableID string `json:"tableId"`
	Status  string `json:"status"`
}

// UpdateStatus records a local status override for one table and notifies
// every open floor view.
func (h *TablesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessionToken(w, r); !ok {
		return
	}
	tableID := chi.URLParam(r, "tableID")

	var req tableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	overrides, err := h.loadOverrides()
	if err != nil {
		log.Printf("ERROR: load table overrides: %v", err)
		overrides = map[string]string{}
	}
	overrides[tableID] = req.Status
	if err := h.store.Put(localstate.KeyTableStatusOverrides, overrides); err != nil {
		log.Printf("ERROR: save table overrides: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	payload, err := json.Marshal(tableStatusEvent{TableID: tableID, Status: req.Status})
	if err == nil {
		h.hub.Broadcast(ws.TopicTables, ws.Event{Type: "tables.status", Payload: payload})
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": tableID, "status": req.Status})
}

func (h *TablesHandler) loadOverrides() (map[string]string, error) {
	overrides := map[string]string{}
	err := h.store.Get(localstate.KeyTableStatusOverrides, &overrides)
	if err != nil && !errors.Is(err, localstate.ErrNotFound) {
		return nil, err
	}
	if overrides == nil {
		overrides = map[string]string{}
	}
	return overrides, nil
}
