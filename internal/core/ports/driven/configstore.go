package driven

// ConfigStore provides access to the project configuration file.
// Keys are dot-separated paths into the file (e.g. "docker.run_args").
type ConfigStore interface {
	// Get retrieves a value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetStringSlice retrieves a string slice value.
	// Returns nil if key doesn't exist or isn't a slice.
	GetStringSlice(key string) []string

	// Keys returns every key present, sorted.
	Keys() []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Load re-reads configuration from storage.
	// A missing file is an empty configuration, not an error.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
