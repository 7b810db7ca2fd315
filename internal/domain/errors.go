package domain

import "errors"

// Sentinel errors for the coordination core. Handlers map these onto
// ERROR events sent back to the offending connection; none of them ever
// terminates the process.
var (
	// ErrAuthentication: handshake arrived without a username
	ErrAuthentication = errors.New("missing username in handshake")

	// ErrRoomNotFound: operation referenced a room that does not exist
	ErrRoomNotFound = errors.New("room not found")

	// ErrInvalidState: stats submitted outside an in-progress round,
	// or by a username that is not a member of the room
	ErrInvalidState = errors.New("invalid game state")
)

// ErrorCode maps a core error to the wire-level error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrAuthentication):
		return "AUTHENTICATION_ERROR"
	case errors.Is(err, ErrRoomNotFound):
		return "ROOM_NOT_FOUND"
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	default:
		return "INTERNAL_ERROR"
	}
}
