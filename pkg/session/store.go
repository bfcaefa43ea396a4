package session

import (
	"context"
	"time"
)

// SessionStore defines the interface for session persistence backends.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// Save persists session state until expiresAt.
	// If sessionID already exists, it should be overwritten.
	Save(ctx context.Context, sessionID string, data []byte, expiresAt time.Time) error

	// Load retrieves session state by ID.
	// Returns (nil, nil) if the session doesn't exist or has expired.
	// Returns (nil, err) on backend errors.
	Load(ctx context.Context, sessionID string) ([]byte, error)

	// Delete removes a session.
	// Should not return an error if the session doesn't exist.
	Delete(ctx context.Context, sessionID string) error

	// Touch updates the expiration time without loading full state.
	// Should not return an error if the session doesn't exist.
	Touch(ctx context.Context, sessionID string, expiresAt time.Time) error

	// Close releases any resources held by the store.
	Close() error
}

// ErrStoreClosed is returned when operations are attempted on a closed store.
type ErrStoreClosed struct{}

func (e ErrStoreClosed) Error() string {
	return "session store is closed"
}
