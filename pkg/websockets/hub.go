package websockets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultWriteTimeout = 10 * time.Second

// Hub delivers messages to the websocket clients connected to this process.
type Hub struct {
	mu           sync.RWMutex
	clients      map[string]*client
	writeTimeout time.Duration
}

// gorilla connections allow one concurrent writer.
type client struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients:      make(map[string]*client),
		writeTimeout: defaultWriteTimeout,
	}
}

var _ Publisher = (*Hub)(nil)

// Register adds a connection under id, replacing any previous one.
func (h *Hub) Register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[id] = &client{conn: conn}
}

// Unregister forgets the connection. It does not close it.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish writes the message to every registered connection. A connection
// that cannot be written to is closed and dropped.
func (h *Hub) Publish(ctx context.Context, message Message) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mu.RUnlock()

	for id, c := range targets {
		if err := c.write(payload, h.writeTimeout); err != nil {
			slog.Warn("dropping websocket client", "connectionId", id, "error", err)
			h.Unregister(id)
			c.conn.Close()
		}
	}
	return nil
}

func (c *client) write(payload []byte, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
