// Package httpapi submits placements to the external signing API over HTTP.
//
// A submission is a multipart/form-data POST to {base}/documents with three
// parts:
//
//   - document: the PDF file
//   - recipients: JSON array of {id, name, email}
//   - placeholders: JSON array of placeholders in document space
//
// The API answers with {"documentId": "...", "status": "..."}.
// Outbound requests are throttled by a token bucket and back off after a
// 429 response.
package httpapi
