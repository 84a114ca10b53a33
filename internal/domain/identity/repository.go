package identity

import (
	"context"
	"time"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// SessionStore keeps sessions server-side, keyed by session ID
type SessionStore interface {
	// Save stores or replaces the session for ttl
	Save(ctx context.Context, session *Session, ttl time.Duration) error

	// Get returns the session, or shared.ErrNotFound when missing or expired
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// Update applies fn to the stored session and writes the result back
	// atomically, keeping the remaining TTL. fn sees the latest state and may
	// run more than once. Returns shared.ErrNotFound when missing or expired.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}
