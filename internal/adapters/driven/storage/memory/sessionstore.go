package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions are copied on the way in and out so callers never share slices
// with the store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.PlacementSession
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.PlacementSession),
	}
}

// Save stores or replaces a session.
func (s *SessionStore) Save(_ context.Context, session *domain.PlacementSession) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(*session)
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.PlacementSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneSession(session)
	return &clone, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(_ context.Context) ([]domain.PlacementSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.PlacementSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, cloneSession(session))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UpdatedAt.Equal(result[j].UpdatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})
	return result, nil
}

func cloneSession(src domain.PlacementSession) domain.PlacementSession {
	dst := src
	dst.Document.Pages = append([]domain.PageDims(nil), src.Document.Pages...)
	dst.Recipients = append([]domain.Recipient(nil), src.Recipients...)
	dst.Placeholders = append([]domain.SignaturePlaceholder(nil), src.Placeholders...)
	return dst
}
