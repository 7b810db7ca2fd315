package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tmgasek/typing-game-server/internal/config"
	"github.com/tmgasek/typing-game-server/internal/delivery/ws"
	"github.com/tmgasek/typing-game-server/internal/domain"
	"github.com/tmgasek/typing-game-server/internal/game"
	"github.com/tmgasek/typing-game-server/internal/usecase"
)

func setupTestHandler() *Handler {
	hub := ws.NewHub()
	registry := game.NewRegistry(50)
	service := game.NewService(registry, hub, usecase.NewQuoteGenerator(), 5)
	return NewHandler(hub, service)
}

func TestNewHandler(t *testing.T) {
	h := setupTestHandler()

	if h == nil {
		t.Fatal("Expected handler to be created")
	}
	if h.hub == nil {
		t.Error("Expected hub to be set")
	}
	if h.service == nil {
		t.Error("Expected service to be set")
	}
}

func TestHandleHealth(t *testing.T) {
	h := setupTestHandler()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", w.Result().StatusCode)
	}
	if w.Body.String() != "server up" {
		t.Errorf("Expected 'server up', got %q", w.Body.String())
	}
}

func TestHandleHealth_UnknownPath(t *testing.T) {
	h := setupTestHandler()

	req := httptest.NewRequest("GET", "/nonexistent", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Result().StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Result().StatusCode)
	}
}

func TestHandleListRooms(t *testing.T) {
	h := setupTestHandler()
	room := h.service.Registry().Create("speed demons")

	req := httptest.NewRequest("GET", "/api/rooms", nil)
	w := httptest.NewRecorder()
	h.HandleListRooms(w, req)

	if w.Result().StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Result().StatusCode)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var body struct {
		Rooms map[string]string `json:"rooms"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Rooms[room.ID] != "speed demons" {
		t.Errorf("Expected room %s in listing, got %v", room.ID, body.Rooms)
	}
}

func TestHandleListRooms_MethodNotAllowed(t *testing.T) {
	h := setupTestHandler()

	req := httptest.NewRequest("POST", "/api/rooms", nil)
	w := httptest.NewRecorder()
	h.HandleListRooms(w, req)

	if w.Result().StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Result().StatusCode)
	}
}

func TestHandleWebSocket_MissingUsername(t *testing.T) {
	h := setupTestHandler()

	req := httptest.NewRequest("GET", "/ws", nil)
	w := httptest.NewRecorder()
	h.HandleWebSocket(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without username, got %d", w.Result().StatusCode)
	}
}

func TestHandleWebSocket_BlankUsername(t *testing.T) {
	h := setupTestHandler()

	req := httptest.NewRequest("GET", "/ws?username=%20%20", nil)
	w := httptest.NewRecorder()
	h.HandleWebSocket(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 for whitespace-only username, got %d", w.Result().StatusCode)
	}
}

func TestHandleWebSocket_Handshake(t *testing.T) {
	h := setupTestHandler()

	server := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?username=speedster"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	// The server greets a new connection with the room list, then the
	// refreshed user roster.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first domain.Event
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("Failed to read first event: %v", err)
	}
	if first.Type != domain.EventRooms {
		t.Errorf("Expected ROOMS first, got %s", first.Type)
	}

	var second domain.Event
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("Failed to read second event: %v", err)
	}
	if second.Type != domain.EventUsers {
		t.Fatalf("Expected USERS second, got %s", second.Type)
	}

	var users domain.UsersPayload
	if err := json.Unmarshal(second.Payload, &users); err != nil {
		t.Fatalf("Failed to decode users payload: %v", err)
	}
	if len(users.Users) != 1 || users.Users[0].Username != "speedster" {
		t.Errorf("Expected roster with speedster, got %v", users.Users)
	}
}

func TestIsOriginAllowed(t *testing.T) {
	original := config.AppConfig
	defer func() { config.AppConfig = original }()

	tests := []struct {
		name     string
		allowed  []string
		origin   string
		expected bool
	}{
		{"wildcard allows any", []string{"*"}, "http://evil.example", true},
		{"empty origin allowed", []string{"http://localhost:3000"}, "", true},
		{"exact match", []string{"http://localhost:3000"}, "http://localhost:3000", true},
		{"mismatch denied", []string{"http://localhost:3000"}, "http://other.example", false},
		{"second entry matches", []string{"http://a.example", "http://b.example"}, "http://b.example", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.AllowedOrigins = tc.allowed
			config.AppConfig = cfg

			if got := isOriginAllowed(tc.origin); got != tc.expected {
				t.Errorf("isOriginAllowed(%q) with %v = %v, want %v",
					tc.origin, tc.allowed, got, tc.expected)
			}
		})
	}
}

func TestSanitizeUsername(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "alice", "alice"},
		{"trims whitespace", "  alice  ", "alice"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
		{"caps long names", strings.Repeat("a", 50), strings.Repeat("a", 30)},
		{"unicode within cap", "スピードスター", "スピードスター"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sanitizeUsername(tc.input); got != tc.expected {
				t.Errorf("sanitizeUsername(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
