package middleware

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const SessionCookieName = "relatrix_session"

const sessionTTL = 7 * 24 * time.Hour // one week

// Session represents an authenticated operator session. Email identifies
// the signed-in user for the lifetime of the session.
type Session struct {
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore defines the session storage interface.
// Implementations could use memory, SQLite, Redis, etc.
type SessionStore interface {
	Create(email string) string
	Get(id string) (Session, bool)
	Delete(id string)
}

// MemorySessionStore is an in-memory implementation of SessionStore.
// Sessions are lost on server restart.
type MemorySessionStore struct {
	mu sync.RWMutex
	m  map[string]Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		m: make(map[string]Session),
	}
}

// Create creates a new session for the given user and returns its ID.
func (s *MemorySessionStore) Create(email string) string {
	id := uuid.NewString()
	now := time.Now()

	s.mu.Lock()
	s.m[id] = Session{
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	s.mu.Unlock()

	return id
}

// Get retrieves a session by ID. Returns false if not found or expired.
func (s *MemorySessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.m[id]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}

	if time.Now().After(sess.ExpiresAt) {
		// Expired: clean up and treat as missing
		s.mu.Lock()
		delete(s.m, id)
		s.mu.Unlock()
		return Session{}, false
	}

	return sess, true
}

// Delete removes a session by ID.
func (s *MemorySessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
}

// Default session store used by package-level functions
var defaultStore SessionStore = NewMemorySessionStore()

// CreateSession creates a new session and returns its ID.
func CreateSession(email string) string {
	return defaultStore.Create(email)
}

// GetSession retrieves a session by ID. Returns false if not found or expired.
func GetSession(id string) (Session, bool) {
	return defaultStore.Get(id)
}

// DeleteSession removes a session by ID.
func DeleteSession(id string) {
	defaultStore.Delete(id)
}
