package driven

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// SessionStore persists placement sessions with their recipients and
// placeholders. Backed by SQLite, or memory for ephemeral runs.
type SessionStore interface {
	// Save stores or replaces a session, including its recipients and placeholders.
	Save(ctx context.Context, session *domain.PlacementSession) error

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*domain.PlacementSession, error)

	// Delete removes a session and everything it owns.
	Delete(ctx context.Context, id string) error

	// List returns all sessions, most recently updated first.
	List(ctx context.Context) ([]domain.PlacementSession, error)
}
