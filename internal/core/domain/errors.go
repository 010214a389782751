package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Document Errors.

	// ErrNoDocument indicates the session has no loaded document geometry.
	ErrNoDocument = errors.New("no document loaded")

	// ErrInvalidDocument indicates the file could not be read as a PDF.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrPageOutOfRange indicates a page number outside 1..numPages.
	ErrPageOutOfRange = errors.New("page out of range")

	// Placement Errors.

	// ErrRecipientAssigned indicates the recipient already has a placeholder.
	ErrRecipientAssigned = errors.New("recipient already has a placeholder")

	// ErrNoPlaceholders indicates a submission without any placeholder.
	ErrNoPlaceholders = errors.New("no signature placeholder added")

	// ErrOffPage indicates a placeholder that does not lie entirely on its page.
	ErrOffPage = errors.New("placeholder outside page")

	// ErrUnknownRecipient indicates a placeholder references a missing recipient.
	ErrUnknownRecipient = errors.New("unknown recipient")

	// Submission Errors.

	// ErrSubmissionDisabled indicates no signing API endpoint is configured.
	ErrSubmissionDisabled = errors.New("signing API not configured")

	// ErrSubmissionFailed indicates the signing API rejected the upload.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrRateLimited indicates the outbound rate limit could not be satisfied.
	ErrRateLimited = errors.New("rate limited")
)
