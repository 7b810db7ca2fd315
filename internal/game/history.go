package game

import "github.com/tmgasek/typing-game-server/internal/domain"

// History is a fixed-size circular buffer of a room's recent chat
// events, replayed to late joiners. O(1) append; the owning Room's
// mutex serializes access.
type History struct {
	events []domain.Event
	head   int // next write position
	size   int
	cap    int
}

// NewHistory creates a history buffer with the given capacity
func NewHistory(capacity int) *History {
	return &History{
		events: make([]domain.Event, capacity),
		cap:    capacity,
	}
}

// Add appends an event, overwriting the oldest if full
func (h *History) Add(e domain.Event) {
	h.events[h.head] = e
	h.head = (h.head + 1) % h.cap

	if h.size < h.cap {
		h.size++
	}
}

// All returns the buffered events in chronological order (oldest first)
func (h *History) All() []domain.Event {
	if h.size == 0 {
		return nil
	}

	result := make([]domain.Event, h.size)

	if h.size < h.cap {
		copy(result, h.events[:h.size])
	} else {
		// Full buffer: head points at the oldest element
		copy(result, h.events[h.head:])
		copy(result[h.cap-h.head:], h.events[:h.head])
	}

	return result
}

// Len returns the current number of buffered events
func (h *History) Len() int {
	return h.size
}
