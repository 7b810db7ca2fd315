package ws

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tmgasek/typing-game-server/internal/domain"
	"github.com/tmgasek/typing-game-server/internal/game"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10
)

// Client represents a single websocket connection bound to an identity
type Client struct {
	Identity domain.Identity
	hub      *Hub
	service  *game.Service
	conn     *websocket.Conn
	send     chan []byte
}

// NewClient creates a new Client
func NewClient(hub *Hub, service *game.Service, conn *websocket.Conn, identity domain.Identity) *Client {
	return &Client{
		Identity: identity,
		hub:      hub,
		service:  service,
		conn:     conn,
		send:     make(chan []byte, 256),
	}
}

// ReadPump pumps inbound events from the websocket to the game service.
// Events from one connection are processed here in receive order.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.service.Disconnected(c.Identity)
		c.hub.BroadcastUsers()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(domain.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event domain.Event
		if err := json.Unmarshal(message, &event); err != nil {
			// Malformed frame, skip it rather than kill the connection
			continue
		}

		c.service.Dispatch(c.Identity, event)
	}
}

// WritePump pumps queued events to the websocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a message for delivery. Fire-and-forget: a full buffer
// drops the message rather than block the sender.
func (c *Client) Send(msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}
