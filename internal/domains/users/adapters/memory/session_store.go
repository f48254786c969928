package memory

import (
	"context"
	"sync"

	"github.com/pawsit/pawsit-server/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore keeps session tokens in memory for development and tests.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewSessionStore constructs an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]string{}}
}

// Save stores the token keyed by account email.
func (s *SessionStore) Save(_ context.Context, email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[email] = token
	return nil
}

// Delete removes the session for the account.
func (s *SessionStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, email)
	return nil
}

// Token returns the stored token, primarily for test assertions.
func (s *SessionStore) Token(email string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[email]
}
