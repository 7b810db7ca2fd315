package domain

import "github.com/google/uuid"

// Identity binds a transport connection to its claimed display name.
// Created at handshake, immutable for the connection's life.
type Identity struct {
	ID       string `json:"userID"`
	Username string `json:"username"`
}

// NewIdentity creates an identity with a fresh connection ID
func NewIdentity(username string) Identity {
	return Identity{
		ID:       uuid.New().String(),
		Username: username,
	}
}
