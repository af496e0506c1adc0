package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/donation-cli/internal/core/domain"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driven"
	"github.com/custodia-labs/donation-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyWindowStart = "extraction.window_start"
	keyWindowEnd   = "extraction.window_end"
	keyGapMinutes  = "session.gap_minutes"
	keyLanguage    = "ui.language"
	keyDataDir     = "storage.data_dir"
)

var settingKeys = []string{keyWindowStart, keyWindowEnd, keyGapMinutes, keyLanguage, keyDataDir}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	window := domain.TimeWindow{
		Start: s.getTime(keyWindowStart, defaults.Window.Start),
		End:   s.getTime(keyWindowEnd, defaults.Window.End),
	}
	if !window.IsValid() {
		window = defaults.Window
	}

	settings := &domain.AppSettings{
		Window:     window,
		SessionGap: time.Duration(s.getInt(keyGapMinutes, int(defaults.SessionGap/time.Minute))) * time.Minute,
		Language:   s.getLanguage(defaults.Language),
		DataDir:    s.configStore.GetString(keyDataDir),
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Window.IsValid() {
		return fmt.Errorf("%w: window start is after window end", domain.ErrInvalidInput)
	}
	if settings.SessionGap < time.Minute {
		return fmt.Errorf("%w: session gap must be at least one minute", domain.ErrInvalidInput)
	}
	if !domain.IsSupportedLanguage(settings.Language) {
		return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, settings.Language)
	}

	if err := s.configStore.Set(keyWindowStart, settings.Window.Start.Format(domain.TimestampLayout)); err != nil {
		return fmt.Errorf("save window start: %w", err)
	}
	if err := s.configStore.Set(keyWindowEnd, settings.Window.End.Format(domain.TimestampLayout)); err != nil {
		return fmt.Errorf("save window end: %w", err)
	}
	if err := s.configStore.Set(keyGapMinutes, int(settings.SessionGap/time.Minute)); err != nil {
		return fmt.Errorf("save session gap: %w", err)
	}
	if err := s.configStore.Set(keyLanguage, settings.Language); err != nil {
		return fmt.Errorf("save language: %w", err)
	}
	if err := s.configStore.Set(keyDataDir, settings.DataDir); err != nil {
		return fmt.Errorf("save data dir: %w", err)
	}
	return nil
}

// SetWindow updates the extraction time window.
func (s *SettingsService) SetWindow(window domain.TimeWindow) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Window = window
	return s.Save(settings)
}

// SetLanguage updates the display language.
func (s *SettingsService) SetLanguage(lang string) error {
	if !domain.IsSupportedLanguage(lang) {
		return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, lang)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Language = lang
	return s.Save(settings)
}

// Reset deletes every settings key. Unrelated keys in the store are kept.
func (s *SettingsService) Reset() error {
	for _, key := range settingKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

func (s *SettingsService) getTime(key string, defaultVal time.Time) time.Time {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	t, err := domain.ParseTimestamp(val)
	if err != nil {
		return defaultVal
	}
	return t
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getLanguage(defaultVal string) string {
	val := s.configStore.GetString(keyLanguage)
	if !domain.IsSupportedLanguage(val) {
		return defaultVal
	}
	return val
}
