package control

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one websocket connection. Writes are serialized per connection;
// gorilla connections do not allow concurrent writers.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// Send writes one JSON message to the client.
func (c *Client) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks connected websocket clients and fans commands out to all of
// them. A client whose write fails is dropped on the spot.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	logf    func(format string, args ...any)
}

// NewHub creates an empty hub. logf may be nil.
func NewHub(logf func(format string, args ...any)) *Hub {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logf:    logf,
	}
}

// Add registers a connection and returns its client handle.
func (h *Hub) Add(conn *websocket.Conn) *Client {
	c := &Client{conn: conn}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logf("websocket connected, %d total", n)
	return c
}

// Remove unregisters a client and closes its connection.
func (h *Hub) Remove(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	if !ok {
		return
	}
	c.conn.Close()
	h.logf("websocket disconnected, %d total", n)
}

// Broadcast sends v to every connected client, dropping the ones whose
// writes fail.
func (h *Hub) Broadcast(v any) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.Send(v); err != nil {
			h.logf("websocket broadcast failed: %v", err)
			h.Remove(c)
		}
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
