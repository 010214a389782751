package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/sigplace/internal/core/domain"
)

// mockLoader is a DocumentLoader returning fixed page geometry per path.
type mockLoader struct {
	mu    sync.Mutex
	pages map[string][]domain.PageDims
	err   error
	calls int
}

func newMockLoader() *mockLoader {
	return &mockLoader{pages: make(map[string][]domain.PageDims)}
}

func (m *mockLoader) set(path string, pages ...domain.PageDims) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[path] = pages
}

func (m *mockLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	pages, ok := m.pages[path]
	if !ok {
		return nil, domain.ErrInvalidDocument
	}
	return &domain.Document{
		Path:     path,
		Pages:    append([]domain.PageDims(nil), pages...),
		LoadedAt: time.Now(),
	}, nil
}

// mockSubmitter records the last submission.
type mockSubmitter struct {
	last    *domain.Submission
	receipt *domain.SubmissionReceipt
	err     error
}

func (m *mockSubmitter) Submit(_ context.Context, s *domain.Submission) (*domain.SubmissionReceipt, error) {
	m.last = s
	if m.err != nil {
		return nil, m.err
	}
	if m.receipt != nil {
		return m.receipt, nil
	}
	return &domain.SubmissionReceipt{DocumentID: "doc-1", Status: "pending"}, nil
}

var letter = domain.PageDims{Width: 612, Height: 792}

// sequentialIDs returns an ID generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
