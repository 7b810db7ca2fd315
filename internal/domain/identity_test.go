package domain

import "testing"

func TestNewIdentity(t *testing.T) {
	identity := NewIdentity("speedster")

	if identity.Username != "speedster" {
		t.Errorf("Expected username 'speedster', got %s", identity.Username)
	}
	if identity.ID == "" {
		t.Error("Expected connection ID to be generated")
	}

	other := NewIdentity("speedster")
	if other.ID == identity.ID {
		t.Error("Expected distinct connection IDs for separate handshakes")
	}
}
