package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sannaclaudia/WebAPP/internal/domain/identity"
	"github.com/sannaclaudia/WebAPP/internal/domain/shared"
)

// InMemorySessionStore keeps sessions in process memory.
// Sessions do not survive a restart and are not shared between instances.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	now      func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

type sessionEntry struct {
	session   identity.Session
	expiresAt time.Time
}

// NewInMemorySessionStore creates a store and starts a sweeper that drops
// expired entries every cleanupInterval. A zero interval disables it.
func NewInMemorySessionStore(cleanupInterval time.Duration) *InMemorySessionStore {
	s := &InMemorySessionStore{
		sessions: make(map[string]sessionEntry),
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.sweep(cleanupInterval)
	}
	return s
}

// Save stores a copy of the session for ttl
func (s *InMemorySessionStore) Save(_ context.Context, session *identity.Session, ttl time.Duration) error {
	if ttl <= 0 {
		return shared.NewDomainError("INVALID_TTL", "Session TTL must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = sessionEntry{session: *session, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get returns a copy of the session, or shared.ErrNotFound
func (s *InMemorySessionStore) Get(_ context.Context, id string) (*identity.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, shared.ErrNotFound
	}
	session := entry.session
	return &session, nil
}

// Update applies fn to a copy of the session under the write lock
func (s *InMemorySessionStore) Update(_ context.Context, id string, fn func(*identity.Session) error) (*identity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, shared.ErrNotFound
	}
	session := entry.session
	if err := fn(&session); err != nil {
		return nil, err
	}
	entry.session = session
	s.sessions[id] = entry
	return &session, nil
}

// Delete removes the session
func (s *InMemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored entries, expired ones included
func (s *InMemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the sweeper
func (s *InMemorySessionStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCh) })
	return nil
}

func (s *InMemorySessionStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.stopCh:
			return
		}
	}
}

func (s *InMemorySessionStore) removeExpired() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// Ensure InMemorySessionStore implements SessionStore
var _ identity.SessionStore = (*InMemorySessionStore)(nil)
