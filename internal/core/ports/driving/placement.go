package driving

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// PlacementService manages placement sessions: the document, its
// recipients and their signature placeholders.
type PlacementService interface {
	// CreateSession loads a PDF and starts a new session for it.
	CreateSession(ctx context.Context, documentPath string) (*domain.PlacementSession, error)

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, sessionID string) (*domain.PlacementSession, error)

	// ListSessions returns all sessions.
	ListSessions(ctx context.Context) ([]domain.PlacementSession, error)

	// DeleteSession discards a session.
	DeleteSession(ctx context.Context, sessionID string) error

	// ReloadDocument re-reads page geometry after the PDF changed.
	// Placeholders on pages that no longer exist are removed.
	ReloadDocument(ctx context.Context, sessionID string) (*domain.PlacementSession, error)

	// AddRecipient adds a signer to the session.
	AddRecipient(ctx context.Context, sessionID, name, email string) (*domain.Recipient, error)

	// RemoveRecipient removes a signer and their placeholder.
	RemoveRecipient(ctx context.Context, sessionID, recipientID string) error

	// AddPlaceholder places a default-sized box for a recipient centred on
	// a screen point. Returns domain.ErrRecipientAssigned if the recipient
	// already has one.
	AddPlaceholder(ctx context.Context, req AddPlaceholderRequest) (*domain.SignaturePlaceholder, error)

	// UpdatePlaceholder applies a screen-space drag or resize result.
	// Unknown placeholder IDs are ignored.
	UpdatePlaceholder(ctx context.Context, sessionID, placeholderID string, change domain.ScreenChange, scale float64) ([]domain.SignaturePlaceholder, error)

	// RemovePlaceholder deletes a placeholder and renumbers the rest.
	// Unknown placeholder IDs are ignored.
	RemovePlaceholder(ctx context.Context, sessionID, placeholderID string) ([]domain.SignaturePlaceholder, error)

	// ReorderPlaceholder moves a placeholder to a new signing position.
	ReorderPlaceholder(ctx context.Context, sessionID, placeholderID string, order int) ([]domain.SignaturePlaceholder, error)

	// SaveViewport remembers the zoom and page last used for the session.
	SaveViewport(ctx context.Context, sessionID string, scale float64, page int) error
}

// AddPlaceholderRequest describes where a new placeholder goes.
type AddPlaceholderRequest struct {
	// SessionID identifies the session.
	SessionID string

	// RecipientID is the signer the box belongs to.
	RecipientID string

	// PageNumber is the 1-based target page.
	PageNumber int

	// Center is the screen point the box is centred on, usually the
	// centre of the visible viewport.
	Center domain.Point

	// Scale is the zoom factor the center point was measured at.
	Scale float64
}
