package driven

// ConfigStore holds flat dot-notation settings such as "ui.language".
// Set and Delete are durable when they return nil.
type ConfigStore interface {
	// Get returns the raw value at key.
	Get(key string) (any, bool)

	// GetString returns "" when key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when key is missing or not a number.
	GetInt(key string) int

	Set(key string, value any) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Keys lists every stored key in sorted order.
	Keys() []string

	// Path names where the settings live, for display.
	Path() string
}
