package domain

import "time"

// AppSettings holds the effective application configuration.
type AppSettings struct {
	// Window restricts extracted records to a date range.
	Window TimeWindow

	// SessionGap separates usage sessions.
	SessionGap time.Duration

	// Language selects the display language for titles and prompts.
	Language string

	// DataDir holds the donation database. Empty means the default location.
	DataDir string
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Window:     DefaultTimeWindow(),
		SessionGap: DefaultSessionGap,
		Language:   LanguageEN,
	}
}

// IsSupportedLanguage reports whether lang has translations.
func IsSupportedLanguage(lang string) bool {
	return lang == LanguageEN || lang == LanguageNL
}
