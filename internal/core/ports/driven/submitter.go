package driven

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// Submitter uploads a finished placement to the external signing API.
type Submitter interface {
	// Submit sends the document and its placeholders.
	// Returns domain.ErrSubmissionFailed wrapped with the API's reason on rejection.
	Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionReceipt, error)
}
