// Package live streams committed change events to WebSocket clients so
// open views can refresh without polling.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/iliyamo/home-inventory/internal/queue"
)

// Hub maintains the set of active WebSocket clients and broadcasts
// change events to them.  It satisfies queue.Publisher.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  *slog.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes a client and closes its send channel.  Calling it
// twice is harmless.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Publish broadcasts ev to every connected client.  Slow clients whose
// buffer is full miss the event rather than stall the request.
func (h *Hub) Publish(_ context.Context, ev queue.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("live: marshal event", "event", ev.ID, "error", err)
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
		}
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
