package domain

// ==== WebSocket Constants ====

// MaxMessageSize is the maximum allowed WebSocket message size in bytes
const MaxMessageSize = 4096

// MaxHistorySize is the maximum number of chat messages replayed to a
// member joining a room
const MaxHistorySize = 50

// ==== Game Constants ====

// DefaultWordCount is the number of quotes generated per round
const DefaultWordCount = 5

// ==== Rate Limit Constants ====

const (
	// DefaultRateLimitAPI is the default rate limit for API endpoints (requests/sec)
	DefaultRateLimitAPI = 10

	// DefaultRateLimitWS is the default rate limit for WebSocket connections (req/sec)
	DefaultRateLimitWS = 5
)
