package driving

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// SubmissionService hands finished sessions to the signing API.
type SubmissionService interface {
	// BuildPayload validates a session and returns the upload request
	// without sending it.
	BuildPayload(ctx context.Context, sessionID string) (*domain.Submission, error)

	// Submit validates, uploads and, on success, discards the session.
	Submit(ctx context.Context, sessionID string) (*domain.SubmissionReceipt, error)
}
