package ws

import (
	"sync"

	"github.com/tmgasek/typing-game-server/internal/domain"
)

// Hub owns the global set of live connections and implements the
// game.Broadcaster capability: unicast, room-cast and global broadcast,
// all fire-and-forget. It never reads or mutates room state; room
// membership is resolved by the game service, which hands the hub the
// recipient connection IDs.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // keyed by connection ID
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register adds a connection to the global set
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.Identity.ID] = c
	h.mu.Unlock()
}

// Unregister removes a connection and closes its send queue.
// Safe to call twice for the same client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.Identity.ID]; !ok {
		return
	}
	delete(h.clients, c.Identity.ID)
	close(c.send)
}

// ClientCount returns the number of live connections
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Identities returns a snapshot of every connected identity
func (h *Hub) Identities() []domain.Identity {
	h.mu.RLock()
	defer h.mu.RUnlock()

	users := make([]domain.Identity, 0, len(h.clients))
	for _, c := range h.clients {
		users = append(users, c.Identity)
	}
	return users
}

// BroadcastUsers sends the global user list snapshot to everyone,
// as happens after every connect and disconnect.
func (h *Hub) BroadcastUsers() {
	h.Broadcast("", domain.NewEvent(domain.EventUsers, domain.UsersPayload{
		Users: h.Identities(),
	}))
}

// Unicast delivers an event to one connection. A connection that has
// already gone away is skipped. The lock is held across the send so a
// concurrent Unregister cannot close the channel underneath it.
func (h *Hub) Unicast(connID string, e domain.Event) {
	data := e.Encode()

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[connID]; ok {
		c.Send(data)
	}
}

// RoomCast delivers an event to the given member connections
func (h *Hub) RoomCast(connIDs []string, e domain.Event) {
	data := e.Encode()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, id := range connIDs {
		if c, ok := h.clients[id]; ok {
			c.Send(data)
		}
	}
}

// Broadcast delivers an event to every connection except exceptID
// ("" sends to all)
func (h *Hub) Broadcast(exceptID string, e domain.Event) {
	data := e.Encode()

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id == exceptID {
			continue
		}
		c.Send(data)
	}
}
