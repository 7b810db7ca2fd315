package game

import "github.com/tmgasek/typing-game-server/internal/domain"

// Broadcaster is the capability the core uses to reach connections.
// All deliveries are fire-and-forget; the transport adapter implements
// this, tests substitute an in-memory recorder.
type Broadcaster interface {
	// Unicast delivers to one connection
	Unicast(connID string, e domain.Event)

	// RoomCast delivers to the given member connections
	RoomCast(connIDs []string, e domain.Event)

	// Broadcast delivers to every connection except exceptID ("" for all)
	Broadcast(exceptID string, e domain.Event)
}

// WordSource produces the race text for a round.
// Implementations must be safe for concurrent use by rooms starting
// games simultaneously.
type WordSource interface {
	Generate(count int) []string
}
