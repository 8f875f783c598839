package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/clamsproject/app-datimex-extraction/internal/core/domain"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driven"
	"github.com/clamsproject/app-datimex-extraction/internal/core/ports/driving"
	"github.com/clamsproject/app-datimex-extraction/internal/dates"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

type settingKind int

const (
	kindString settingKind = iota
	kindInt
	kindBool
)

var settingKinds = map[string]settingKind{
	domain.KeyPattern:        kindString,
	domain.KeyConcurrency:    kindInt,
	domain.KeyServerPort:     kindInt,
	domain.KeyStorageBackend: kindString,
	domain.KeyStoragePath:    kindString,
	domain.KeyVerbose:        kindBool,
}

// SettingsService resolves settings from a config store.
type SettingsService struct {
	config driven.ConfigStore
}

// NewSettingsService creates a settings service. A nil config store yields
// the defaults and refuses updates.
func NewSettingsService(config driven.ConfigStore) *SettingsService {
	return &SettingsService{config: config}
}

// Get returns the defaults overlaid with every configured key.
func (s *SettingsService) Get() (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if s.config == nil {
		return settings, nil
	}

	if _, ok := s.config.Get(domain.KeyPattern); ok {
		settings.Pattern = s.config.GetString(domain.KeyPattern)
	}
	if _, ok := s.config.Get(domain.KeyConcurrency); ok {
		settings.Concurrency = s.config.GetInt(domain.KeyConcurrency)
	}
	if _, ok := s.config.Get(domain.KeyServerPort); ok {
		settings.ServerPort = s.config.GetInt(domain.KeyServerPort)
	}
	if _, ok := s.config.Get(domain.KeyStorageBackend); ok {
		settings.StorageBackend = s.config.GetString(domain.KeyStorageBackend)
	}
	if _, ok := s.config.Get(domain.KeyStoragePath); ok {
		settings.StoragePath = s.config.GetString(domain.KeyStoragePath)
	}
	if _, ok := s.config.Get(domain.KeyVerbose); ok {
		settings.Verbose = s.config.GetBool(domain.KeyVerbose)
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	if _, err := dates.Compile(settings.Pattern); err != nil {
		return settings, err
	}
	return settings, nil
}

// Set parses value for key, checks the resulting settings are valid and
// persists it.
func (s *SettingsService) Set(key, value string) error {
	if s.config == nil {
		return domain.ErrNotImplemented
	}

	kind, ok := settingKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrConfiguration, key)
	}

	var typed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrConfiguration, key, value)
		}
		typed = int64(n)
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false, got %q", domain.ErrConfiguration, key, value)
		}
		typed = b
	default:
		typed = value
	}

	if err := validateSetting(key, typed); err != nil {
		return err
	}
	return s.config.Set(key, typed)
}

func validateSetting(key string, value any) error {
	settings := domain.DefaultSettings()
	switch key {
	case domain.KeyPattern:
		_, err := dates.Compile(value.(string))
		return err
	case domain.KeyConcurrency:
		settings.Concurrency = int(value.(int64))
	case domain.KeyServerPort:
		settings.ServerPort = int(value.(int64))
	case domain.KeyStorageBackend:
		settings.StorageBackend = value.(string)
	}
	return settings.Validate()
}

// Keys returns the settable keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingKinds))
	for k := range settingKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
