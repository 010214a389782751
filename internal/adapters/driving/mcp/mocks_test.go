package mcp

import (
	"context"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// mockPlacementService is a mock implementation of driving.PlacementService.
type mockPlacementService struct {
	sessions     []domain.PlacementSession
	session      *domain.PlacementSession
	placeholder  *domain.SignaturePlaceholder
	placeholders []domain.SignaturePlaceholder
	err          error

	lastAdd      driving.AddPlaceholderRequest
	lastChange   domain.ScreenChange
	lastScale    float64
	savedScale   float64
	savedPage    int
	viewportSets int
}

func (m *mockPlacementService) CreateSession(_ context.Context, _ string) (*domain.PlacementSession, error) {
	return m.session, m.err
}

func (m *mockPlacementService) GetSession(_ context.Context, id string) (*domain.PlacementSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.session == nil || m.session.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.session, nil
}

func (m *mockPlacementService) ListSessions(_ context.Context) ([]domain.PlacementSession, error) {
	return m.sessions, m.err
}

func (m *mockPlacementService) DeleteSession(_ context.Context, _ string) error {
	return m.err
}

func (m *mockPlacementService) ReloadDocument(_ context.Context, _ string) (*domain.PlacementSession, error) {
	return m.session, m.err
}

func (m *mockPlacementService) AddRecipient(_ context.Context, _, name, email string) (*domain.Recipient, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Recipient{ID: "r-new", Name: name, Email: email}, nil
}

func (m *mockPlacementService) RemoveRecipient(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockPlacementService) AddPlaceholder(
	_ context.Context,
	req driving.AddPlaceholderRequest,
) (*domain.SignaturePlaceholder, error) {
	m.lastAdd = req
	return m.placeholder, m.err
}

func (m *mockPlacementService) UpdatePlaceholder(
	_ context.Context,
	_, _ string,
	change domain.ScreenChange,
	scale float64,
) ([]domain.SignaturePlaceholder, error) {
	m.lastChange = change
	m.lastScale = scale
	return m.placeholders, m.err
}

func (m *mockPlacementService) RemovePlaceholder(_ context.Context, _, _ string) ([]domain.SignaturePlaceholder, error) {
	return m.placeholders, m.err
}

func (m *mockPlacementService) ReorderPlaceholder(
	_ context.Context,
	_, _ string,
	_ int,
) ([]domain.SignaturePlaceholder, error) {
	return m.placeholders, m.err
}

func (m *mockPlacementService) SaveViewport(_ context.Context, _ string, scale float64, page int) error {
	m.savedScale = scale
	m.savedPage = page
	m.viewportSets++
	return m.err
}

// testSession returns a two-page letter-size session with one placeholder.
func testSession() *domain.PlacementSession {
	return &domain.PlacementSession{
		ID: "sess-1",
		Document: domain.Document{
			Path:  "/tmp/contract.pdf",
			Pages: []domain.PageDims{{Width: 612, Height: 792}, {Width: 612, Height: 792}},
		},
		Recipients: []domain.Recipient{
			{ID: "r-1", Name: "Alice", Email: "alice@example.com"},
			{ID: "r-2", Name: "Bob", Email: "bob@example.com"},
		},
		Placeholders: []domain.SignaturePlaceholder{
			{ID: "p-1", X: 256, Y: 371, Width: 100, Height: 50, PageNumber: 1, RecipientID: "r-1", RecipientName: "Alice", Order: 1},
		},
		Scale:       1,
		CurrentPage: 2,
	}
}
