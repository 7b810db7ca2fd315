package game

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tmgasek/typing-game-server/internal/domain"
)

// Room is a named, capability-identified grouping of connections
// sharing one game session. The mutex serializes every mutation of one
// room's membership and session so the completion-count check is never
// evaluated against a partially-applied update; distinct rooms progress
// independently.
type Room struct {
	ID   string
	Name string

	mu      sync.Mutex
	members map[string]string // connID -> username
	session *Session
	history *History
}

// memberIDs returns the member connection IDs.
// Caller must hold r.mu.
func (r *Room) memberIDs() []string {
	ids := make([]string, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	return ids
}

// memberIdentities returns the member identities.
// Caller must hold r.mu.
func (r *Room) memberIdentities() []domain.Identity {
	players := make([]domain.Identity, 0, len(r.members))
	for id, username := range r.members {
		players = append(players, domain.Identity{ID: id, Username: username})
	}
	return players
}

// hasUsername reports whether any current member claims the username.
// Caller must hold r.mu.
func (r *Room) hasUsername(username string) bool {
	for _, name := range r.members {
		if name == username {
			return true
		}
	}
	return false
}

// MemberCount returns the live membership size
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Registry is the process-wide room table. Constructed once at startup
// and injected into the service, never a package-level singleton.
type Registry struct {
	mu          sync.RWMutex
	rooms       map[string]*Room
	historySize int
}

// NewRegistry creates an empty room registry
func NewRegistry(historySize int) *Registry {
	if historySize <= 0 {
		historySize = domain.MaxHistorySize
	}
	return &Registry{
		rooms:       make(map[string]*Room),
		historySize: historySize,
	}
}

// Create allocates a room with a fresh unguessable identifier, an empty
// member set and an idle session. UUIDs make collisions a non-concern,
// so creation always succeeds.
func (rg *Registry) Create(name string) *Room {
	rg.mu.Lock()
	defer rg.mu.Unlock()

	room := &Room{
		ID:      uuid.New().String(),
		Name:    name,
		members: make(map[string]string),
		session: newSession(),
		history: NewHistory(rg.historySize),
	}
	rg.rooms[room.ID] = room

	return room
}

// Get returns a room by ID, nil if it does not exist
func (rg *Registry) Get(roomID string) *Room {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return rg.rooms[roomID]
}

// Delete removes a room from the registry
func (rg *Registry) Delete(roomID string) {
	rg.mu.Lock()
	defer rg.mu.Unlock()
	delete(rg.rooms, roomID)
}

// List returns a snapshot of roomID -> name
func (rg *Registry) List() map[string]string {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	rooms := make(map[string]string, len(rg.rooms))
	for id, room := range rg.rooms {
		rooms[id] = room.Name
	}
	return rooms
}

// All returns a snapshot of the current rooms
func (rg *Registry) All() []*Room {
	rg.mu.RLock()
	defer rg.mu.RUnlock()

	rooms := make([]*Room, 0, len(rg.rooms))
	for _, room := range rg.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}

// Count returns the number of active rooms
func (rg *Registry) Count() int {
	rg.mu.RLock()
	defer rg.mu.RUnlock()
	return len(rg.rooms)
}
