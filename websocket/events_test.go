package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fanhub/models"

	"github.com/gorilla/websocket"
)

// dialTestClient upgrades a connection through an in-process server and
// registers the server side with the hub.
func dialTestClient(t *testing.T, hub *EventHub) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Upgrade failed: %v", err)
			return
		}
		hub.Register(&EventClient{Conn: conn})
	}))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Registration happens on the server goroutine after the handshake.
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	return conn
}

func TestEventHubBroadcast(t *testing.T) {
	hub := NewEventHub()
	conn := dialTestClient(t, hub)

	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 registered client, got %d", hub.ClientCount())
	}

	hub.Broadcast(models.EngagementEvent{
		Type:   "level_up",
		UserID: 42,
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.EngagementEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got.Type != "level_up" || got.UserID != 42 {
		t.Errorf("Unexpected event received: %+v", got)
	}
}

func TestEventHubUnregister(t *testing.T) {
	hub := NewEventHub()
	dialTestClient(t, hub)

	if hub.ClientCount() != 1 {
		t.Fatalf("Expected 1 registered client, got %d", hub.ClientCount())
	}

	var client *EventClient
	hub.mu.RLock()
	for c := range hub.clients {
		client = c
	}
	hub.mu.RUnlock()

	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", hub.ClientCount())
	}

	// A second unregister of the same client is a no-op.
	hub.Unregister(client)
	if hub.ClientCount() != 0 {
		t.Errorf("Expected unregister to stay idempotent, got %d clients", hub.ClientCount())
	}
}
