package notify

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/eaterno-pos/backoffice/internal/localstate"
)

// maxReadKeys caps how many read markers are kept per shift. Older markers
// fall off; their notifications simply show as unread again, which is
// harmless for a navbar badge.
const maxReadKeys = 10

// eventNamespace seeds the stable event-key UUIDs. Changing it invalidates
// every stored read marker.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("eaterno-backoffice"))

// EventKey derives the stable key for one transaction+status pair. The same
// transaction produces a new key each time its status changes, so a paid
// order notifies again after its "pending" notification was read.
func EventKey(transactionID, status string) string {
	return uuid.NewSHA1(eventNamespace, []byte(transactionID+"#"+status)).String()
}

// ReadState is the persisted read-marker blob, keyed to the shift it belongs
// to. A new shift starts with a clean slate. Stored last-write-wins.
type ReadState struct {
	ShiftKey      string   `json:"shiftKey"`
	ReadEventKeys []string `json:"readEventKeys"`
}

// IsRead reports whether the event key was marked read in this state.
func (s ReadState) IsRead(key string) bool {
	for _, k := range s.ReadEventKeys {
		if k == key {
			return true
		}
	}
	return false
}

// LoadReadState fetches the read markers, returning a zero state when none
// were ever written.
func LoadReadState(store *localstate.Store) (ReadState, error) {
	var state ReadState
	err := store.Get(localstate.KeyNotificationRead, &state)
	if errors.Is(err, localstate.ErrNotFound) {
		return ReadState{}, nil
	}
	if err != nil {
		return ReadState{}, fmt.Errorf("load read state: %w", err)
	}
	return state, nil
}

// MarkRead appends event keys to the read markers for shiftKey, resetting
// the state when the shift changed and trimming to the most recent
// maxReadKeys entries.
func MarkRead(store *localstate.Store, shiftKey string, keys []string) (ReadState, error) {
	state, err := LoadReadState(store)
	if err != nil {
		return ReadState{}, err
	}

	if state.ShiftKey != shiftKey {
		state = ReadState{ShiftKey: shiftKey}
	}

	for _, key := range keys {
		if key == "" || state.IsRead(key) {
			continue
		}
		state.ReadEventKeys = append(state.ReadEventKeys, key)
	}
	if n := len(state.ReadEventKeys); n > maxReadKeys {
		state.ReadEventKeys = state.ReadEventKeys[n-maxReadKeys:]
	}

	if err := store.Put(localstate.KeyNotificationRead, state); err != nil {
		return ReadState{}, fmt.Errorf("save read state: %w", err)
	}
	return state, nil
}
