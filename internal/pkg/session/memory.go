package session

import (
	"context"
	"sync"
	"time"

	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// memoryEntry is a single in-memory session record
type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on
// restart; use the Redis store when that matters.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	done     chan struct{}
	closeOne sync.Once
}

// NewMemoryStore creates a memory store and starts its expiry sweeper
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		done:     make(chan struct{}),
	}
	go s.sweep(time.Minute)
	return s
}

// sweep periodically removes expired sessions
func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for sid, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, sid)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Set binds sid to userID for the given TTL
func (s *MemoryStore) Set(_ context.Context, sid string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get resolves sid to a user ID
func (s *MemoryStore) Get(_ context.Context, sid string) (int64, error) {
	s.mu.RLock()
	entry, ok := s.sessions[sid]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return 0, apperrors.ErrSessionNotFound
	}
	return entry.userID, nil
}

// Touch extends the TTL of an existing session
func (s *MemoryStore) Touch(_ context.Context, sid string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sid]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	entry.expiresAt = time.Now().Add(ttl)
	s.sessions[sid] = entry
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

// Close stops the expiry sweeper
func (s *MemoryStore) Close() error {
	s.closeOne.Do(func() { close(s.done) })
	return nil
}
