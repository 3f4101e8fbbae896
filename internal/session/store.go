package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store keeps server-side session state keyed by an opaque id. The id is
// what travels in the cookie; everything else stays on this side.
type Store interface {
	// Create opens a session for the user and returns its id.
	Create(ctx context.Context, userID uint) (string, error)
	// Get resolves a session id to a user id and refreshes the
	// inactivity window.
	Get(ctx context.Context, sessionID string) (uint, error)
	// Destroy ends a session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, sessionID string) error
}

// DefaultTTL is the session inactivity window.
const DefaultTTL = 7 * 24 * time.Hour
