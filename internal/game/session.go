package game

import (
	"sort"

	"github.com/tmgasek/typing-game-server/internal/domain"
)

// State is the lifecycle phase of a room's game session
type State int

const (
	// StateIdle: no words, no stats; ready for START_GAME
	StateIdle State = iota

	// StateInProgress: words fixed for the round, stats accumulating
	StateInProgress

	// StateCompleted is transient; it exists only between the completion
	// check and the results broadcast, after which the session resets
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Result is one participant's self-reported performance for a round
type Result struct {
	WPM      float64
	Accuracy float64
}

// Session is the per-room game state machine. It is not internally
// locked; the owning Room's mutex serializes all access.
type Session struct {
	state State
	words []string
	stats map[string]Result // keyed by username
}

func newSession() *Session {
	return &Session{
		state: StateIdle,
		stats: make(map[string]Result),
	}
}

// State returns the current lifecycle phase
func (s *Session) State() State {
	return s.state
}

// Words returns the word set fixed for the current round
func (s *Session) Words() []string {
	return s.words
}

// Start begins a round with the given word set, discarding any stats
// from an unfinished previous round. Calling Start mid-round is the
// intentional "restart round" behavior.
func (s *Session) Start(words []string) {
	s.state = StateInProgress
	s.words = words
	s.stats = make(map[string]Result)
}

// Record stores a participant's result, overwriting any prior entry
// from the same username this round. Duplicate submissions are
// therefore never double-counted.
func (s *Session) Record(username string, r Result) error {
	if s.state != StateInProgress {
		return domain.ErrInvalidState
	}
	s.stats[username] = r
	return nil
}

// RemoveParticipant drops a departed member's entry so a stale result
// can neither block nor prematurely satisfy the completion check.
func (s *Session) RemoveParticipant(username string) {
	delete(s.stats, username)
}

// CompleteIfReady checks the round against the current live member
// count. Iff every member has reported, it returns the results sorted
// by WPM descending and resets the session to idle. The reset happens
// here so the completion broadcast can fire exactly once per round.
func (s *Session) CompleteIfReady(memberCount int) ([]domain.PlayerResult, bool) {
	if s.state != StateInProgress {
		return nil, false
	}
	if memberCount == 0 || len(s.stats) != memberCount {
		return nil, false
	}

	s.state = StateCompleted

	results := make([]domain.PlayerResult, 0, len(s.stats))
	for username, r := range s.stats {
		results = append(results, domain.PlayerResult{
			Username: username,
			WPM:      r.WPM,
			Accuracy: r.Accuracy,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].WPM > results[j].WPM
	})

	s.reset()
	return results, true
}

// reset returns the session to idle, ready for another round
func (s *Session) reset() {
	s.state = StateIdle
	s.words = nil
	s.stats = make(map[string]Result)
}

// StatsCount returns the number of recorded entries this round
func (s *Session) StatsCount() int {
	return len(s.stats)
}
