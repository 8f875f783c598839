package driving

import "github.com/clamsproject/app-datimex-extraction/internal/core/domain"

// SettingsService reads and updates user settings.
type SettingsService interface {
	// Get returns the resolved settings: defaults overlaid with the
	// configuration file and environment.
	Get() (domain.Settings, error)

	// Set validates and persists one setting given as text.
	Set(key, value string) error

	// Keys returns the settable keys in sorted order.
	Keys() []string
}
