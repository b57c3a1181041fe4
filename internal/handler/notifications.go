package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eaterno-pos/backoffice/internal/notify"
)

// NotificationsHandler exposes the poller's current notification snapshot
// and the read markers.
type NotificationsHandler struct {
	notifier *notify.Notifier
}

// NewNotificationsHandler creates a new NotificationsHandler.
func NewNotificationsHandler(notifier *notify.Notifier) *NotificationsHandler {
	return &NotificationsHandler{notifier: notifier}
}

// RegisterRoutes registers notification endpoints on the given Chi router.
func (h *NotificationsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/notifications", h.List)
	r.Post("/notifications/read", h.MarkRead)
}

type notificationListResponse struct {
	Notifications []notify.Notification `json:"notifications"`
	ShiftKey      string                `json:"shiftKey"`
	Unread        int                   `json:"unread"`
}

// List returns the latest derived notifications. The snapshot comes from the
// background poller, so this never blocks on the upstream backend.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	notifications := h.notifier.Snapshot()
	writeJSON(w, http.StatusOK, notificationListResponse{
		Notifications: notifications,
		ShiftKey:      h.notifier.ShiftKey(),
		Unread:        countUnread(notifications),
	})
}

type markReadRequest struct {
	ShiftKey string   `json:"shiftKey"`
	Keys     []string `json:"keys"`
}

// MarkRead records read markers for the given shift and returns the updated
// notifications.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ShiftKey == "" || len(req.Keys) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shiftKey and keys are required"})
		return
	}

	notifications, err := h.notifier.MarkRead(req.ShiftKey, req.Keys)
	if err != nil {
		log.Printf("ERROR: mark notifications read: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, notificationListResponse{
		Notifications: notifications,
		ShiftKey:      req.ShiftKey,
		Unread:        countUnread(notifications),
	})
}

func countUnread(notifications []notify.Notification) int {
	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}
	return unread
}
