// Package notify derives navbar notifications from upstream transactions and
// tracks which of them the staff already read. Polling is best-effort: a
// failed refresh keeps the previous snapshot, there are no retries, and read
// markers resolve conflicts last-write-wins.
package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eaterno-pos/backoffice/internal/localstate"
	"github.com/eaterno-pos/backoffice/internal/masterdata"
	"github.com/eaterno-pos/backoffice/internal/upstream"
	"github.com/eaterno-pos/backoffice/internal/ws"
)

// Source is the slice of the upstream client the notifier needs.
type Source interface {
	GetJSON(ctx context.Context, tok upstream.Token, path string) (any, error)
}

// Broadcaster pushes refresh summaries to subscribed WebSocket clients.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(topic string, event ws.Event)
}

// Notification is one navbar entry.
type Notification struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
}

// Notifier polls transactions and shift data, derives notifications, and
// reconciles them with the persisted read markers.
type Notifier struct {
	source   Source
	store    *localstate.Store
	hub      Broadcaster
	interval time.Duration

	mu       sync.RWMutex
	token    upstream.Token
	hasToken bool
	snapshot []Notification
	shiftKey string
}

// New creates a Notifier. hub may be nil when no live push is wanted.
func New(source Source, store *localstate.Store, hub Broadcaster, interval time.Duration) *Notifier {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Notifier{
		source:   source,
		store:    store,
		hub:      hub,
		interval: interval,
	}
}

// SetToken hands the notifier an upstream credential to poll with. The most
// recent login wins; polling is idle until the first one arrives.
func (n *Notifier) SetToken(tok upstream.Token) {
	n.mu.Lock()
	n.token = tok
	n.hasToken = tok.Access != ""
	n.mu.Unlock()
}

// Run polls until ctx is done. Refresh failures are logged and skipped; the
// next tick tries again.
func (n *Notifier) Run(ctx context.Context) {
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := n.Refresh(ctx); err != nil {
				log.Printf("ERROR: refresh notifications: %v", err)
			}
		}
	}
}

// Refresh fetches transactions and the active shift in parallel, rebuilds
// the notification list, and pushes an unread summary to subscribers.
func (n *Notifier) Refresh(ctx context.Context) ([]Notification, error) {
	n.mu.RLock()
	tok, ok := n.token, n.hasToken
	n.mu.RUnlock()
	if !ok {
		// Nothing to poll with yet; keep the empty snapshot.
		return n.Snapshot(), nil
	}

	var txPayload, shiftPayload any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txPayload, err = n.source.GetJSON(gctx, tok, "/transactions")
		return err
	})
	g.Go(func() error {
		var err error
		shiftPayload, err = n.source.GetJSON(gctx, tok, "/shifts/active")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch notification sources: %w", err)
	}

	shift := masterdata.NormalizeShift(shiftPayload)
	state, err := LoadReadState(n.store)
	if err != nil {
		return nil, err
	}
	// Read markers from a previous shift do not carry over.
	if shift.ID != "" && state.ShiftKey != shift.ID {
		state = ReadState{ShiftKey: shift.ID}
	}

	notifications := Derive(masterdata.NormalizeTransactions(txPayload), state)

	n.mu.Lock()
	n.snapshot = notifications
	n.shiftKey = shift.ID
	n.mu.Unlock()

	n.publish(notifications)
	return notifications, nil
}

// Derive builds the notification list from transaction rows, marking entries
// read per the given state. Exported for the handler tests.
func Derive(rows []masterdata.TransactionRow, state ReadState) []Notification {
	out := make([]Notification, 0, len(rows))
	for _, row := range rows {
		key := EventKey(row.ID, row.Status)
		title := row.Code
		if title == "" || title == "-" {
			title = "Transaksi " + row.ID
		}
		out = append(out, Notification{
			Key:       key,
			Title:     title,
			Message:   transactionMessage(row),
			Status:    row.Status,
			CreatedAt: row.CreatedAt,
			Read:      state.IsRead(key),
		})
	}
	return out
}

func transactionMessage(row masterdata.TransactionRow) string {
	status := strings.ToLower(row.Status)
	if status == "" || status == "-" {
		return fmt.Sprintf("Transaksi %s diperbarui", row.Code)
	}
	return fmt.Sprintf("Transaksi %s %s", row.Code, status)
}

// Snapshot returns the most recently derived notifications.
func (n *Notifier) Snapshot() []Notification {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Notification, len(n.snapshot))
	copy(out, n.snapshot)
	return out
}

// ShiftKey returns the active shift id from the last refresh.
func (n *Notifier) ShiftKey() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.shiftKey
}

// MarkRead records the given event keys as read for the active shift and
// updates the snapshot in place.
func (n *Notifier) MarkRead(shiftKey string, keys []string) ([]Notification, error) {
	state, err := MarkRead(n.store, shiftKey, keys)
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	for i := range n.snapshot {
		n.snapshot[i].Read = state.IsRead(n.snapshot[i].Key)
	}
	out := make([]Notification, len(n.snapshot))
	copy(out, n.snapshot)
	n.mu.Unlock()

	n.publish(out)
	return out, nil
}

func (n *Notifier) publish(notifications []Notification) {
	if n.hub == nil {
		return
	}
	unread := 0
	for _, notif := range notifications {
		if !notif.Read {
			unread++
		}
	}
	payload := fmt.Sprintf(`{"unread":%d,"total":%d}`, unread, len(notifications))
	n.hub.Broadcast(ws.TopicNotifications, ws.Event{
		Type:    "notifications.updated",
		Payload: []byte(payload),
	})
}
