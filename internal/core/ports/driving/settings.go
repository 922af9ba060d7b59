package driving

import "github.com/custodia-labs/dedup-cli/internal/core/domain"

// SettingsService resolves the run configuration from stored settings.
type SettingsService interface {
	// Get returns the configuration built from defaults and stored values.
	Get() (*domain.Config, error)

	// GetDefaults returns the built-in configuration.
	GetDefaults() domain.Config

	// Source returns where stored settings are read from.
	Source() string
}
