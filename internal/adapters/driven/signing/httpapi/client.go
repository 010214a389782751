package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/logger"
)

// DefaultTimeout bounds a single upload.
const DefaultTimeout = 60 * time.Second

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 4 << 10

// Ensure Client implements the interface.
var _ driven.Submitter = (*Client)(nil)

// Client implements driven.Submitter against the signing API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Useful for testing.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithRateLimiter replaces the request throttle.
func WithRateLimiter(l *RateLimiter) Option {
	return func(client *Client) {
		client.limiter = l
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, ratePerSecond float64, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, domain.ErrSubmissionDisabled
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: api base url must be http(s): %s", domain.ErrInvalidInput, baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    NewRateLimiter(ratePerSecond),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Submit uploads the document with its recipients and placeholders.
func (c *Client) Submit(ctx context.Context, submission *domain.Submission) (*domain.SubmissionReceipt, error) {
	body, contentType, err := encodeSubmission(submission)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limit: %w", err)
	}

	url := c.baseURL + "/documents"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	logger.Debug("httpapi: POST %s (%d bytes)", url, body.Len())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.RecordRateLimited(parseRetryAfter(resp.Header.Get("Retry-After")))
		return nil, fmt.Errorf("%w: signing api returned 429", domain.ErrRateLimited)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: %s: %s", domain.ErrSubmissionFailed,
			resp.Status, strings.TrimSpace(string(msg)))
	}

	var receipt domain.SubmissionReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrSubmissionFailed, err)
	}
	if receipt.DocumentID == "" {
		return nil, fmt.Errorf("%w: response has no documentId", domain.ErrSubmissionFailed)
	}
	return &receipt, nil
}

// encodeSubmission builds the multipart body with the PDF held in memory.
func encodeSubmission(submission *domain.Submission) (*bytes.Buffer, string, error) {
	if submission == nil {
		return nil, "", domain.ErrInvalidInput
	}

	pdf, err := os.ReadFile(submission.DocumentPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", domain.ErrNoDocument, submission.DocumentPath)
		}
		return nil, "", fmt.Errorf("read document: %w", err)
	}

	recipients, err := json.Marshal(submission.Recipients)
	if err != nil {
		return nil, "", fmt.Errorf("marshal recipients: %w", err)
	}
	placeholders, err := json.Marshal(submission.Placeholders)
	if err != nil {
		return nil, "", fmt.Errorf("marshal placeholders: %w", err)
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename=%q`,
		filepath.Base(submission.DocumentPath)))
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create document part: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return nil, "", fmt.Errorf("write document part: %w", err)
	}

	if err := w.WriteField("recipients", string(recipients)); err != nil {
		return nil, "", fmt.Errorf("write recipients: %w", err)
	}
	if err := w.WriteField("placeholders", string(placeholders)); err != nil {
		return nil, "", fmt.Errorf("write placeholders: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

// parseRetryAfter reads a Retry-After header given in seconds or as an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		return time.Until(at)
	}
	return 0
}
