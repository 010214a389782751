package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sigplace/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sigplace/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
	assert.False(t, settings.API.IsConfigured())
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("placement.default_width", 120.0)
	_ = store.Set("zoom.max", 3) // ints widen
	_ = store.Set("autoscroll.interval_ms", 20)
	_ = store.Set("tui.cell_height", 12)
	_ = store.Set("api.base_url", "https://sign.example.com/")

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.InDelta(t, 120, settings.Placement.DefaultWidth, 1e-9)
	assert.InDelta(t, 3, settings.Zoom.Max, 1e-9)
	assert.Equal(t, 20*time.Millisecond, settings.AutoScroll.Interval)
	assert.Equal(t, 12, settings.TUI.CellHeight)
	assert.Equal(t, "https://sign.example.com", settings.API.BaseURL)
	assert.True(t, settings.API.IsConfigured())
}

func TestSettingsService_Get_InvalidZoomFallsBack(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("zoom.min", 5.0)
	_ = store.Set("zoom.max", 2.0)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings().Zoom, settings.Zoom)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Placement.DefaultHeight = 60
	settings.AutoScroll.Interval = 75 * time.Millisecond
	settings.API.BaseURL = "http://localhost:8080"

	require.NoError(t, service.Save(&settings))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
	assert.Equal(t, 75, store.GetInt("autoscroll.interval_ms"))
}

func TestSettingsService_Save_RejectsBadZoom(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Zoom.Step = 0

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{"float", "zoom.step", "0.25", false},
		{"int", "tui.cell_width", "10", false},
		{"string", "api.base_url", "https://api.example.com", false},
		{"unknown key", "render.dpi", "300", true},
		{"not a number", "zoom.min", "small", true},
		{"not positive", "placement.default_width", "-5", true},
		{"int with fraction", "autoscroll.interval_ms", "2.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())
			err := service.Set(tt.key, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSettingsService_Set_IsVisibleInGet(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.Set("zoom.step", "0.25"))
	require.NoError(t, service.Set("tui.cell_width", "10"))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.InDelta(t, 0.25, settings.Zoom.Step, 1e-9)
	assert.Equal(t, 10, settings.TUI.CellWidth)
}

func TestSettingsService_Keys(t *testing.T) {
	keys := NewSettingsService(memory.NewConfigStore()).Keys()

	assert.Len(t, keys, 12)
	assert.Equal(t, "placement.default_width", keys[0])
	assert.Contains(t, keys, "api.base_url")
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingsService_Value(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Set("zoom.max", "1.5"))
	require.NoError(t, service.Set("api.base_url", "https://sign.example.com"))

	tests := []struct {
		key  string
		want string
	}{
		{"placement.default_width", "100"},
		{"zoom.min", "0.3"},
		{"zoom.max", "1.5"},
		{"autoscroll.interval_ms", "50"},
		{"tui.cell_height", "16"},
		{"api.base_url", "https://sign.example.com"},
		{"api.rate_per_second", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := service.Value(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSettingsService_Value_CoversEveryKey(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	for _, key := range service.Keys() {
		_, err := service.Value(key)
		assert.NoError(t, err, key)
	}

	_, err := service.Value("nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
