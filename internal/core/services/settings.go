package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/sigplace/internal/core/domain"
	"github.com/custodia-labs/sigplace/internal/core/ports/driven"
	"github.com/custodia-labs/sigplace/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultWidth   = "placement.default_width"
	keyDefaultHeight  = "placement.default_height"
	keyZoomMin        = "zoom.min"
	keyZoomMax        = "zoom.max"
	keyZoomStep       = "zoom.step"
	keyScrollInterval = "autoscroll.interval_ms"
	keyScrollEdge     = "autoscroll.edge"
	keyScrollSpeed    = "autoscroll.speed"
	keyCellWidth      = "tui.cell_width"
	keyCellHeight     = "tui.cell_height"
	keyAPIBaseURL     = "api.base_url"
	keyAPIRate        = "api.rate_per_second"
)

// settingKind is how a raw string from the CLI is parsed.
type settingKind int

const (
	kindFloat settingKind = iota
	kindInt
	kindString
)

var settingKeys = []struct {
	key  string
	kind settingKind
}{
	{keyDefaultWidth, kindFloat},
	{keyDefaultHeight, kindFloat},
	{keyZoomMin, kindFloat},
	{keyZoomMax, kindFloat},
	{keyZoomStep, kindFloat},
	{keyScrollInterval, kindInt},
	{keyScrollEdge, kindFloat},
	{keyScrollSpeed, kindFloat},
	{keyCellWidth, kindInt},
	{keyCellHeight, kindInt},
	{keyAPIBaseURL, kindString},
	{keyAPIRate, kindFloat},
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or non-positive values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Placement: domain.PlacementSettings{
			DefaultWidth:  s.getFloat(keyDefaultWidth, defaults.Placement.DefaultWidth),
			DefaultHeight: s.getFloat(keyDefaultHeight, defaults.Placement.DefaultHeight),
		},
		Zoom: domain.ZoomSettings{
			Min:  s.getFloat(keyZoomMin, defaults.Zoom.Min),
			Max:  s.getFloat(keyZoomMax, defaults.Zoom.Max),
			Step: s.getFloat(keyZoomStep, defaults.Zoom.Step),
		},
		AutoScroll: domain.AutoScrollSettings{
			Interval: s.getMillis(keyScrollInterval, defaults.AutoScroll.Interval),
			Edge:     s.getFloat(keyScrollEdge, defaults.AutoScroll.Edge),
			Speed:    s.getFloat(keyScrollSpeed, defaults.AutoScroll.Speed),
		},
		TUI: domain.TUISettings{
			CellWidth:  s.getInt(keyCellWidth, defaults.TUI.CellWidth),
			CellHeight: s.getInt(keyCellHeight, defaults.TUI.CellHeight),
		},
		API: domain.APISettings{
			BaseURL:       strings.TrimRight(s.configStore.GetString(keyAPIBaseURL), "/"),
			RatePerSecond: s.getFloat(keyAPIRate, defaults.API.RatePerSecond),
		},
	}

	if err := settings.Zoom.Validate(); err != nil {
		settings.Zoom = defaults.Zoom
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Zoom.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyDefaultWidth, settings.Placement.DefaultWidth},
		{keyDefaultHeight, settings.Placement.DefaultHeight},
		{keyZoomMin, settings.Zoom.Min},
		{keyZoomMax, settings.Zoom.Max},
		{keyZoomStep, settings.Zoom.Step},
		{keyScrollInterval, int(settings.AutoScroll.Interval / time.Millisecond)},
		{keyScrollEdge, settings.AutoScroll.Edge},
		{keyScrollSpeed, settings.AutoScroll.Speed},
		{keyCellWidth, settings.TUI.CellWidth},
		{keyCellHeight, settings.TUI.CellHeight},
		{keyAPIBaseURL, settings.API.BaseURL},
		{keyAPIRate, settings.API.RatePerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting by its config key.
func (s *SettingsService) Set(key, value string) error {
	for _, k := range settingKeys {
		if k.key != key {
			continue
		}
		parsed, err := parseSetting(k.kind, value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		if err := s.configStore.Set(key, parsed); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys returns the configurable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	for i, k := range settingKeys {
		keys[i] = k.key
	}
	return keys
}

// Value returns the effective value of one setting, formatted the way Set
// accepts it.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	switch key {
	case keyDefaultWidth:
		return f(settings.Placement.DefaultWidth), nil
	case keyDefaultHeight:
		return f(settings.Placement.DefaultHeight), nil
	case keyZoomMin:
		return f(settings.Zoom.Min), nil
	case keyZoomMax:
		return f(settings.Zoom.Max), nil
	case keyZoomStep:
		return f(settings.Zoom.Step), nil
	case keyScrollInterval:
		return strconv.FormatInt(settings.AutoScroll.Interval.Milliseconds(), 10), nil
	case keyScrollEdge:
		return f(settings.AutoScroll.Edge), nil
	case keyScrollSpeed:
		return f(settings.AutoScroll.Speed), nil
	case keyCellWidth:
		return strconv.Itoa(settings.TUI.CellWidth), nil
	case keyCellHeight:
		return strconv.Itoa(settings.TUI.CellHeight), nil
	case keyAPIBaseURL:
		return settings.API.BaseURL, nil
	case keyAPIRate:
		return f(settings.API.RatePerSecond), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func parseSetting(kind settingKind, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, err
		}
		if f <= 0 {
			return nil, fmt.Errorf("must be positive, got %v", f)
		}
		return f, nil
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("must be positive, got %d", n)
		}
		return n, nil
	default:
		return value, nil
	}
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val := s.configStore.GetFloat(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getMillis(key string, defaultVal time.Duration) time.Duration {
	if val := s.configStore.GetInt(key); val > 0 {
		return time.Duration(val) * time.Millisecond
	}
	return defaultVal
}
