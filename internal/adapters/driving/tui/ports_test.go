package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/services"
)

type stubLoader struct{}

func (stubLoader) Load(_ context.Context, path string) (*domain.Document, error) {
	return &domain.Document{
		Path:  path,
		Pages: []domain.PageDims{{Width: 612, Height: 792}, {Width: 612, Height: 792}},
	}, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = settings
	return nil
}

func (m *mockSettingsService) Set(_, _ string) error { return nil }

func (m *mockSettingsService) Keys() []string { return []string{"zoom.max"} }

func (m *mockSettingsService) Value(_ string) (string, error) { return "2", nil }

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// mockSubmissionService implements driving.SubmissionService for testing.
type mockSubmissionService struct {
	receipt *domain.SubmissionReceipt
	err     error
}

func (m *mockSubmissionService) BuildPayload(_ context.Context, _ string) (*domain.Submission, error) {
	return nil, domain.ErrNotImplemented
}

func (m *mockSubmissionService) Submit(_ context.Context, _ string) (*domain.SubmissionReceipt, error) {
	return m.receipt, m.err
}

func newPlacementService() *services.PlacementService {
	return services.NewPlacementService(stubLoader{}, memory.NewSessionStore(), nil)
}

func TestNewPorts(t *testing.T) {
	svc := newPlacementService()

	ports := NewPorts(svc)

	require.NotNil(t, ports)
	assert.Equal(t, svc, ports.Placement)
	assert.Nil(t, ports.Submission)
	assert.Nil(t, ports.Settings)
	assert.Nil(t, ports.Watcher)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing placement", ports: &Ports{}, wantErr: ErrMissingPlacementService},
		{name: "placement only", ports: NewPorts(newPlacementService())},
		{
			name: "all ports",
			ports: &Ports{
				Placement:  newPlacementService(),
				Submission: &mockSubmissionService{},
				Settings:   &mockSettingsService{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.NoError(t, err)
		})
	}
}
