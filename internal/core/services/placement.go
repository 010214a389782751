package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/placement"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// Ensure PlacementService implements the interface.
var _ driving.PlacementService = (*PlacementService)(nil)

// PlacementService manages placement sessions.
// Mutations are serialised so the TUI, MCP server and file watcher can
// share one instance.
type PlacementService struct {
	loader   driven.DocumentLoader
	store    driven.SessionStore
	settings driving.SettingsService

	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewPlacementService creates a new placement service.
// settings may be nil, in which case default placement settings are used.
func NewPlacementService(
	loader driven.DocumentLoader,
	store driven.SessionStore,
	settings driving.SettingsService,
) *PlacementService {
	return &PlacementService{
		loader:   loader,
		store:    store,
		settings: settings,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// CreateSession loads a PDF and starts a new session for it.
func (s *PlacementService) CreateSession(ctx context.Context, documentPath string) (*domain.PlacementSession, error) {
	if s.loader == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if strings.TrimSpace(documentPath) == "" {
		return nil, fmt.Errorf("%w: document path is required", domain.ErrInvalidInput)
	}

	logger.Section("Create Session")
	doc, err := s.loader.Load(ctx, documentPath)
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	logger.Debug("Loaded %s: %d pages", doc.Path, doc.NumPages())

	now := s.now()
	session := &domain.PlacementSession{
		ID:          s.newID(),
		Document:    *doc,
		Scale:       1,
		CurrentPage: 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	logger.Info("Created session %s", session.ID)
	return session, nil
}

// GetSession retrieves a session by ID.
func (s *PlacementService) GetSession(ctx context.Context, sessionID string) (*domain.PlacementSession, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, sessionID)
}

// ListSessions returns all sessions.
func (s *PlacementService) ListSessions(ctx context.Context) ([]domain.PlacementSession, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// DeleteSession discards a session.
func (s *PlacementService) DeleteSession(ctx context.Context, sessionID string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return err
	}
	logger.Info("Deleting session %s", sessionID)
	return s.store.Delete(ctx, sessionID)
}

// ReloadDocument re-reads page geometry after the PDF changed.
func (s *PlacementService) ReloadDocument(ctx context.Context, sessionID string) (*domain.PlacementSession, error) {
	if s.loader == nil {
		return nil, domain.ErrNotImplemented
	}
	var result *domain.PlacementSession
	err := s.mutate(ctx, sessionID, func(session *domain.PlacementSession) error {
		doc, err := s.loader.Load(ctx, session.Document.Path)
		if err != nil {
			return fmt.Errorf("reload document: %w", err)
		}

		st := s.newStore(session)
		st.SetDocument(doc)
		dropped := st.RemoveWhere(func(p domain.SignaturePlaceholder) bool {
			return !doc.HasPage(p.PageNumber)
		})
		if dropped > 0 {
			logger.Warn("Dropped %d placeholder(s) on pages beyond %d", dropped, doc.NumPages())
		}

		session.Document = *doc
		session.Placeholders = st.List()
		if session.CurrentPage > doc.NumPages() {
			session.CurrentPage = max(doc.NumPages(), 1)
		}
		result = session
		return nil
	})
	return result, err
}

// AddRecipient adds a signer to the session.
func (s *PlacementService) AddRecipient(ctx context.Context, sessionID, name, email string) (*domain.Recipient, error) {
	recipient := domain.Recipient{
		ID:    s.newID(),
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
	if err := recipient.Validate(); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, sessionID, func(session *domain.PlacementSession) error {
		for _, r := range session.Recipients {
			if strings.EqualFold(r.Email, recipient.Email) {
				return fmt.Errorf("%w: recipient %s", domain.ErrAlreadyExists, recipient.Email)
			}
		}
		session.Recipients = append(session.Recipients, recipient)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &recipient, nil
}

// RemoveRecipient removes a signer and their placeholder.
func (s *PlacementService) RemoveRecipient(ctx context.Context, sessionID, recipientID string) error {
	return s.mutate(ctx, sessionID, func(session *domain.PlacementSession) error {
		kept := session.Recipients[:0:0]
		for _, r := range session.Recipients {
			if r.ID != recipientID {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(session.Recipients) {
			return fmt.Errorf("%w: recipient %s", domain.ErrNotFound, recipientID)
		}
		session.Recipients = kept

		st := s.newStore(session)
		st.RemoveWhere(func(p domain.SignaturePlaceholder) bool {
			return p.RecipientID == recipientID
		})
		session.Placeholders = st.List()
		return nil
	})
}

// AddPlaceholder places a default-sized box for a recipient.
func (s *PlacementService) AddPlaceholder(
	ctx context.Context,
	req driving.AddPlaceholderRequest,
) (*domain.SignaturePlaceholder, error) {
	var added domain.SignaturePlaceholder
	err := s.mutate(ctx, req.SessionID, func(session *domain.PlacementSession) error {
		recipient, ok := session.Recipient(req.RecipientID)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnknownRecipient, req.RecipientID)
		}
		if placement.NewGate(session.Placeholders).IsAssigned(recipient.ID) {
			return fmt.Errorf("%w: %s", domain.ErrRecipientAssigned, recipient.Name)
		}
		if !session.Document.HasPage(req.PageNumber) {
			return fmt.Errorf("%w: page %d of %d", domain.ErrPageOutOfRange,
				req.PageNumber, session.Document.NumPages())
		}

		st := s.newStore(session)
		added = st.Add(recipient, req.PageNumber, req.Center, req.Scale)
		session.Placeholders = st.List()
		logger.Debug("Added placeholder %s for %s on page %d (order %d)",
			added.ID, recipient.Name, added.PageNumber, added.Order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// UpdatePlaceholder applies a screen-space drag or resize result.
func (s *PlacementService) UpdatePlaceholder(
	ctx context.Context,
	sessionID, placeholderID string,
	change domain.ScreenChange,
	scale float64,
) ([]domain.SignaturePlaceholder, error) {
	if err := validateChange(change); err != nil {
		return nil, err
	}
	return s.mutatePlaceholders(ctx, sessionID, func(st *placement.Store) []domain.SignaturePlaceholder {
		return st.Update(placeholderID, change, scale)
	})
}

// validateChange rejects non-finite coordinates and non-positive sizes.
func validateChange(change domain.ScreenChange) error {
	for name, v := range map[string]*float64{"x": change.X, "y": change.Y} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be finite", domain.ErrInvalidInput, name)
		}
	}
	for name, v := range map[string]*float64{"width": change.Width, "height": change.Height} {
		if v != nil && (!(*v > 0) || math.IsInf(*v, 0)) {
			return fmt.Errorf("%w: %s must be positive", domain.ErrInvalidInput, name)
		}
	}
	return nil
}

// RemovePlaceholder deletes a placeholder and renumbers the rest.
func (s *PlacementService) RemovePlaceholder(
	ctx context.Context,
	sessionID, placeholderID string,
) ([]domain.SignaturePlaceholder, error) {
	return s.mutatePlaceholders(ctx, sessionID, func(st *placement.Store) []domain.SignaturePlaceholder {
		return st.Remove(placeholderID)
	})
}

// ReorderPlaceholder moves a placeholder to a new signing position.
func (s *PlacementService) ReorderPlaceholder(
	ctx context.Context,
	sessionID, placeholderID string,
	order int,
) ([]domain.SignaturePlaceholder, error) {
	return s.mutatePlaceholders(ctx, sessionID, func(st *placement.Store) []domain.SignaturePlaceholder {
		return st.Reorder(placeholderID, order)
	})
}

// SaveViewport remembers the zoom and page last used for the session.
func (s *PlacementService) SaveViewport(ctx context.Context, sessionID string, scale float64, page int) error {
	return s.mutate(ctx, sessionID, func(session *domain.PlacementSession) error {
		if scale > 0 {
			session.Scale = scale
		}
		if session.Document.HasPage(page) {
			session.CurrentPage = page
		}
		return nil
	})
}

// mutate loads a session, applies fn and saves the result under the lock.
// Nothing is saved when fn fails.
func (s *PlacementService) mutate(
	ctx context.Context,
	sessionID string,
	fn func(session *domain.PlacementSession) error,
) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := fn(session); err != nil {
		return err
	}
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, session); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *PlacementService) mutatePlaceholders(
	ctx context.Context,
	sessionID string,
	fn func(st *placement.Store) []domain.SignaturePlaceholder,
) ([]domain.SignaturePlaceholder, error) {
	var result []domain.SignaturePlaceholder
	err := s.mutate(ctx, sessionID, func(session *domain.PlacementSession) error {
		st := s.newStore(session)
		result = fn(st)
		session.Placeholders = result
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PlacementService) newStore(session *domain.PlacementSession) *placement.Store {
	return placement.NewStore(&session.Document, s.defaultSize(), session.Placeholders).
		WithIDGenerator(s.newID)
}

func (s *PlacementService) defaultSize() domain.Size {
	if s.settings != nil {
		if settings, err := s.settings.Get(); err == nil {
			return settings.Placement.DefaultSize()
		}
	}
	return domain.DefaultAppSettings().Placement.DefaultSize()
}
