package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"github.com/tmgasek/typing-game-server/internal/config"
	"github.com/tmgasek/typing-game-server/internal/delivery/ws"
	"github.com/tmgasek/typing-game-server/internal/domain"
	"github.com/tmgasek/typing-game-server/internal/game"
)

// isOriginAllowed checks if the origin is in the allowed list
func isOriginAllowed(origin string) bool {
	// Empty origin is allowed (same-origin requests)
	if origin == "" {
		return true
	}

	for _, allowed := range config.AppConfig.AllowedOrigins {
		if allowed == "*" || origin == allowed {
			return true
		}
	}
	return false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return isOriginAllowed(origin)
	},
}

// sanitizeUsername trims and bounds the claimed display name
func sanitizeUsername(name string) string {
	name = strings.TrimSpace(name)

	if utf8.RuneCountInString(name) > 30 {
		runes := []rune(name)
		name = string(runes[:30])
	}

	return name
}

// Handler serves the HTTP front door: liveness, room listing, and the
// websocket handshake
type Handler struct {
	hub     *ws.Hub
	service *game.Service
}

// NewHandler creates the front door handler
func NewHandler(hub *ws.Hub, service *game.Service) *Handler {
	return &Handler{
		hub:     hub,
		service: service,
	}
}

// HandleHealth is the liveness check
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte("server up"))
}

// HandleListRooms returns the current room list as JSON
func (h *Handler) HandleListRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rooms": h.service.Registry().List(),
	})
}

// HandleWebSocket performs the handshake: a non-empty username is
// required before the upgrade completes; without one the connection
// attempt fails with 401.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	username := sanitizeUsername(r.URL.Query().Get("username"))
	if username == "" {
		http.Error(w, domain.ErrAuthentication.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	identity := domain.NewIdentity(username)
	client := ws.NewClient(h.hub, h.service, conn, identity)

	// Connection setup order matters for the new client: room list
	// snapshot first, then the refreshed global user list.
	h.hub.Register(client)
	h.service.Connected(identity)
	h.hub.BroadcastUsers()

	go client.WritePump()
	go client.ReadPump()
}
