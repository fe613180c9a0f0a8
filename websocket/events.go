package websocket

import (
	"log"
	"sync"

	"fanhub/models"

	"github.com/gorilla/websocket"
)

// EventClient is a dashboard client connected for live engagement updates.
type EventClient struct {
	Conn    *websocket.Conn
	writeMu sync.Mutex
}

// SafeWriteJSON serializes writes to the client's connection.
func (ec *EventClient) SafeWriteJSON(v interface{}) error {
	ec.writeMu.Lock()
	defer ec.writeMu.Unlock()
	return ec.Conn.WriteJSON(v)
}

// EventHub fans engagement events out to all connected dashboard clients.
// A failed write drops the client.
type EventHub struct {
	mu      sync.RWMutex
	clients map[*EventClient]bool
}

func NewEventHub() *EventHub {
	return &EventHub{clients: make(map[*EventClient]bool)}
}

// Register adds a client to the hub.
func (h *EventHub) Register(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
	log.Printf("Event client registered. Total clients: %d", len(h.clients))
}

// Unregister removes a client and closes its connection.
func (h *EventHub) Unregister(client *EventClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.Conn.Close()
	log.Printf("Event client unregistered. Total clients: %d", len(h.clients))
}

// Broadcast sends an engagement event to every connected client.
func (h *EventHub) Broadcast(event models.EngagementEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		if err := client.SafeWriteJSON(event); err != nil {
			log.Printf("Error broadcasting event to client: %v", err)
			go h.Unregister(client)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
