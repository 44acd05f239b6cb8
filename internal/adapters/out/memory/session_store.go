// Package memory provides in-process adapters for session-scoped state.
// Table sessions live for one visit and are not worth a database round
// trip; the store is injected wherever sessions are needed so nothing
// depends on process-wide state.
package memory

import (
	"context"
	"sync"
	"time"

	"tableorder/internal/core/domain/model/kernel"
	"tableorder/internal/core/domain/model/tablesession"
	"tableorder/internal/pkg/errs"
)

// SessionStore is a thread-safe in-memory implementation of
// ports.TableSessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[kernel.UUID]*tablesession.TableSession
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[kernel.UUID]*tablesession.TableSession),
	}
}

// Add registers a session under its token.
func (s *SessionStore) Add(_ context.Context, session *tablesession.TableSession) error {
	if err := session.Token().Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token()] = session
	return nil
}

// Get retrieves a session by token.
func (s *SessionStore) Get(_ context.Context, token kernel.UUID) (*tablesession.TableSession, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sessionToken", token.String())
	}
	return session, nil
}

// Remove drops a session. Removing an unknown token is a no-op.
func (s *SessionStore) Remove(_ context.Context, token kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// SweepIdle removes every session with no activity since the deadline.
func (s *SessionStore) SweepIdle(_ context.Context, deadline time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if session.IdleSince(deadline) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
