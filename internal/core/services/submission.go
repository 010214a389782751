package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/geometry"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// Ensure SubmissionService implements the interface.
var _ driving.SubmissionService = (*SubmissionService)(nil)

// SubmissionService hands finished sessions to the signing API.
type SubmissionService struct {
	sessions  driven.SessionStore
	submitter driven.Submitter
}

// NewSubmissionService creates a new submission service.
// submitter may be nil when no signing API is configured.
func NewSubmissionService(sessions driven.SessionStore, submitter driven.Submitter) *SubmissionService {
	return &SubmissionService{
		sessions:  sessions,
		submitter: submitter,
	}
}

// BuildPayload validates a session and returns the upload request.
func (s *SubmissionService) BuildPayload(ctx context.Context, sessionID string) (*domain.Submission, error) {
	if s.sessions == nil {
		return nil, domain.ErrNotImplemented
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := validateSession(session); err != nil {
		return nil, err
	}

	placeholders := make([]domain.SignaturePlaceholder, len(session.Placeholders))
	copy(placeholders, session.Placeholders)
	sort.SliceStable(placeholders, func(i, j int) bool {
		return placeholders[i].Order < placeholders[j].Order
	})

	recipients := make([]domain.Recipient, len(session.Recipients))
	copy(recipients, session.Recipients)

	return &domain.Submission{
		DocumentPath: session.Document.Path,
		Recipients:   recipients,
		Placeholders: placeholders,
	}, nil
}

// Submit validates, uploads and, on success, discards the session.
func (s *SubmissionService) Submit(ctx context.Context, sessionID string) (*domain.SubmissionReceipt, error) {
	if s.submitter == nil {
		return nil, domain.ErrSubmissionDisabled
	}

	logger.Section("Submit")
	payload, err := s.BuildPayload(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Submitting %s with %d placeholder(s) for %d recipient(s)",
		payload.DocumentPath, len(payload.Placeholders), len(payload.Recipients))

	receipt, err := s.submitter.Submit(ctx, payload)
	if err != nil {
		// The session is kept so the user can retry.
		return nil, err
	}
	logger.Info("Submitted as %s (%s)", receipt.DocumentID, receipt.Status)

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Failed to discard session %s: %v", sessionID, err)
	}
	return receipt, nil
}

// validateSession checks that a session can be sent for signing.
func validateSession(session *domain.PlacementSession) error {
	if len(session.Placeholders) == 0 {
		return domain.ErrNoPlaceholders
	}
	for _, r := range session.Recipients {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	for _, p := range session.Placeholders {
		if !session.Document.HasPage(p.PageNumber) {
			return fmt.Errorf("%w: placeholder %d is on page %d of %d",
				domain.ErrPageOutOfRange, p.Order, p.PageNumber, session.Document.NumPages())
		}
		if page, _ := session.Document.Page(p.PageNumber); !geometry.WithinPage(p, page) {
			return fmt.Errorf("%w: placeholder %d", domain.ErrOffPage, p.Order)
		}
		if _, ok := session.Recipient(p.RecipientID); !ok {
			return fmt.Errorf("%w: placeholder %d", domain.ErrUnknownRecipient, p.Order)
		}
	}
	return nil
}
