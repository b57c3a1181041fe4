package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, topic string) *Client {
	return &Client{
		hub:   hub,
		topic: topic,
		send:  make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, TopicTables)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[TopicTables] == nil {
		t.Fatal("topic room not created")
	}
	if !hub.rooms[TopicTables][client] {
		t.Fatal("client not registered in topic room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub, TopicTables)

	// Register client
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Unregister client
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[TopicTables] != nil {
		t.Fatal("topic room not cleaned up after last client unregistered")
	}
}

func TestBroadcastToSingleTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	tablesClient := mockClient(hub, TopicTables)
	notifClient := mockClient(hub, TopicNotifications)

	// Register both clients
	hub.register <- tablesClient
	hub.register <- notifClient
	time.Sleep(10 * time.Millisecond)

	// Broadcast to the tables topic only
	testPayload := json.RawMessage(`{"tableId":"table-3","status":"occupied"}`)
	event := Event{
		Type:    "table.status",
		Payload: testPayload,
	}
	hub.Broadcast(TopicTables, event)

	// Check the tables client receives the message
	select {
	case msg := <-tablesClient.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "table.status" {
			t.Errorf("expected type 'table.status', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("tables client did not receive message")
	}

	// Check the notifications client does NOT receive the message
	select {
	case <-notifClient.send:
		t.Fatal("notifications client should not have received a tables event")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToMultipleClientsOnSameTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub, TopicNotifications)
	client2 := mockClient(hub, TopicNotifications)
	client3 := mockClient(hub, TopicNotifications)

	// Register all clients to the same topic
	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	// Broadcast event
	testPayload := json.RawMessage(`{"unread":2}`)
	event := Event{
		Type:    "notifications.updated",
		Payload: testPayload,
	}
	hub.Broadcast(TopicNotifications, event)

	// All three clients should receive the message
	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "notifications.updated" {
				t.Errorf("client%d: expected type 'notifications.updated', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub, TopicTables)
	client2 := mockClient(hub, TopicTables)

	// Register both clients
	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[TopicTables]) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(hub.rooms[TopicTables]))
	}
	hub.mu.RUnlock()

	// Unregister first client
	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[TopicTables]) != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", len(hub.rooms[TopicTables]))
	}
	hub.mu.RUnlock()

	// Unregister second client
	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if hub.rooms[TopicTables] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
	hub.mu.RUnlock()
}

func TestBroadcastToEmptyTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Create a client for the tables topic
	client := mockClient(hub, TopicTables)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Broadcast to notifications (no subscribers)
	event := Event{
		Type:    "notifications.updated",
		Payload: json.RawMessage(`{"unread":0}`),
	}
	hub.Broadcast(TopicNotifications, event)

	// The tables client should NOT receive anything
	select {
	case <-client.send:
		t.Fatal("client should not receive message for a different topic")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message
	}
}

func TestValidTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  bool
	}{
		{TopicTables, true},
		{TopicNotifications, true},
		{"orders", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidTopic(tt.topic); got != tt.want {
			t.Errorf("ValidTopic(%q): got %v, want %v", tt.topic, got, tt.want)
		}
	}
}
