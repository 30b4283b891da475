package driving

import "github.com/custodia-labs/st-cli/internal/core/domain"

// SettingsService manages project settings.
type SettingsService interface {
	// Get returns the effective settings with defaults applied.
	Get() (*domain.Settings, error)

	// Set validates and persists one configuration key.
	Set(key, value string) error

	// Path returns the configuration file location.
	Path() string
}
