package domain

import "fmt"

// Configuration keys, in dot notation mirroring TOML tables.
const (
	KeyPattern        = "extraction.pattern"
	KeyConcurrency    = "extraction.concurrency"
	KeyServerPort     = "server.port"
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyVerbose        = "log.verbose"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// DefaultServerPort is the port of the HTTP service.
const DefaultServerPort = 5000

// Settings are the resolved user settings of the application.
type Settings struct {
	// Pattern is the default date pattern. Empty uses the built-in one.
	Pattern string

	// Concurrency is the number of documents processed at once.
	Concurrency int

	// ServerPort is the port the HTTP service listens on.
	ServerPort int

	// StorageBackend is StorageSQLite or StorageMemory.
	StorageBackend string

	// StoragePath is the sqlite data directory. Empty uses the default.
	StoragePath string

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultSettings returns settings with default values.
func DefaultSettings() Settings {
	return Settings{
		Concurrency:    1,
		ServerPort:     DefaultServerPort,
		StorageBackend: StorageSQLite,
	}
}

// Validate checks the settings are usable.
func (s Settings) Validate() error {
	switch {
	case s.Concurrency < 1:
		return fmt.Errorf("%w: concurrency must be at least 1, got %d", ErrConfiguration, s.Concurrency)
	case s.ServerPort < 0 || s.ServerPort > 65535:
		return fmt.Errorf("%w: port %d out of range", ErrConfiguration, s.ServerPort)
	case s.StorageBackend != StorageSQLite && s.StorageBackend != StorageMemory:
		return fmt.Errorf("%w: unknown storage backend %q", ErrConfiguration, s.StorageBackend)
	}
	return nil
}
