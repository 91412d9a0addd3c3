package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store persists session-ID → user-ID bindings. The default implementation
// keeps sessions in process memory; a Redis-backed one is used when the
// deployment needs sessions to survive restarts.
type Store interface {
	// Set binds sid to userID for the given TTL
	Set(ctx context.Context, sid string, userID int64, ttl time.Duration) error

	// Get resolves sid to a user ID. Returns apperrors.ErrSessionNotFound
	// for unknown or expired sessions.
	Get(ctx context.Context, sid string) (int64, error)

	// Touch extends the TTL of an existing session
	Touch(ctx context.Context, sid string, ttl time.Duration) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sid string) error

	// Close releases store resources
	Close() error
}

// Manager issues and resolves sessions on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager creates a session manager
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create starts a new session for the user and returns its ID
func (m *Manager) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.New().String()
	if err := m.store.Set(ctx, sid, userID, m.ttl); err != nil {
		return "", err
	}
	return sid, nil
}

// Resolve returns the user ID bound to sid and slides its expiry
func (m *Manager) Resolve(ctx context.Context, sid string) (int64, error) {
	userID, err := m.store.Get(ctx, sid)
	if err != nil {
		return 0, err
	}
	// Sliding expiration; a failed touch is not fatal for the request
	_ = m.store.Touch(ctx, sid, m.ttl)
	return userID, nil
}

// Destroy ends a session. Destroying an unknown session succeeds, which is
// what makes logout idempotent.
func (m *Manager) Destroy(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

// TTL returns the configured session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Close closes the underlying store
func (m *Manager) Close() error {
	return m.store.Close()
}
