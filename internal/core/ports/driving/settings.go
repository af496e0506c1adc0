package driving

import "github.com/custodia-labs/donation-cli/internal/core/domain"

// SettingsService reads and updates the extraction and session settings.
type SettingsService interface {
	// Get returns the stored settings. Missing or invalid values are
	// replaced by their defaults.
	Get() (*domain.AppSettings, error)

	// Save validates and stores every setting.
	Save(settings *domain.AppSettings) error

	SetWindow(window domain.TimeWindow) error
	SetLanguage(lang string) error

	// Reset removes every stored setting so the defaults apply again.
	Reset() error
}
