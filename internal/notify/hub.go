// Package notify pushes ledger updates to connected dashboards over
// websockets.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

const (
	SummaryType = "SUMMARY" // Full dashboard view after a change
)

// Message is the envelope sent to every client.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SnapshotFunc returns the payload a client receives when it connects.
type SnapshotFunc func() any

// Hub fans messages out to every connected client. Run owns the client set;
// other goroutines talk to it through the channels.
type Hub struct {
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client

	snapshot SnapshotFunc
	done     chan struct{}

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub creates a hub. snapshot may be nil.
func NewHub(snapshot SnapshotFunc) *Hub {
	return &Hub{
		Broadcast:  make(chan []byte, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		snapshot:   snapshot,
		done:       make(chan struct{}),
		clients:    make(map[*Client]bool),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			return

		case c := <-h.Register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			slog.Debug("Websocket client connected", "clients", h.Clients())

			if h.snapshot != nil {
				if msg, err := encode(SummaryType, h.snapshot()); err == nil {
					c.trySend(msg)
				} else {
					slog.Error("Failed to encode snapshot", "error", err)
				}
			}

		case c := <-h.Unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()
			slog.Debug("Websocket client disconnected", "clients", h.Clients())

		case msg := <-h.Broadcast:
			h.mu.Lock()
			for c := range h.clients {
				if !c.trySend(msg) {
					// Slow consumer: drop it rather than stall the hub
					delete(h.clients, c)
					close(c.Send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish encodes payload and queues it for every client. It returns
// without blocking once the hub has stopped.
func (h *Hub) Publish(msgType string, payload any) error {
	msg, err := encode(msgType, payload)
	if err != nil {
		return err
	}

	select {
	case h.Broadcast <- msg:
		return nil
	case <-h.done:
		return nil
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func encode(msgType string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", msgType, err)
	}
	msg, err := json.Marshal(Message{Type: msgType, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s message: %w", msgType, err)
	}
	return msg, nil
}
