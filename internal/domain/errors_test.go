package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"authentication", ErrAuthentication, "AUTHENTICATION_ERROR"},
		{"room not found", ErrRoomNotFound, "ROOM_NOT_FOUND"},
		{"invalid state", ErrInvalidState, "INVALID_STATE"},
		{"wrapped sentinel", fmt.Errorf("join: %w", ErrRoomNotFound), "ROOM_NOT_FOUND"},
		{"unknown error", errors.New("disk on fire"), "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ErrorCode(tc.err); got != tc.expected {
				t.Errorf("ErrorCode(%v) = %s, want %s", tc.err, got, tc.expected)
			}
		})
	}
}
