package domain

// Submission is the upload request handed to the external signing API.
// Placeholders are sorted by Order.
type Submission struct {
	// DocumentPath is the PDF to upload.
	DocumentPath string `json:"documentPath"`

	// Recipients are all signers of the document.
	Recipients []Recipient `json:"recipients"`

	// Placeholders are the signature boxes in document space.
	Placeholders []SignaturePlaceholder `json:"placeholders"`
}

// SubmissionReceipt is what the signing API returns for an accepted upload.
type SubmissionReceipt struct {
	// DocumentID is the identifier assigned by the signing API.
	DocumentID string `json:"documentId"`

	// Status is the API's status string (e.g. "pending").
	Status string `json:"status"`
}
