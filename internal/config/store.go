package config

import (
	"os"
	"strings"
	"time"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/errors"
)

// Source names where a resolved value came from.
type Source string

const (
	SourceNone    Source = ""
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
	SourceFile    Source = "file"
	SourceDefault Source = "default"
)

// Resolved is a configuration value together with its origin.
type Resolved struct {
	Value  string
	Source Source
}

// Override holds per-invocation values supplied on the command line.
type Override struct {
	APIKey  string
	BaseURL string
}

// Store resolves and persists per-platform credentials.
//
// Resolution precedence, highest first: command-line override, environment
// variable (<PLATFORM>_API_KEY, <PLATFORM>_BASE_URL), keyring secret (when a
// SecretStore is configured), persisted file value, then the built-in
// default for base URLs.
type Store struct {
	backend   Backend
	secrets   SecretStore
	lookupEnv func(string) (string, bool)
	overrides map[string]Override
	now       func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithEnv replaces the environment lookup (default os.LookupEnv).
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(s *Store) { s.lookupEnv = lookup }
}

// WithSecrets stores API keys in secrets instead of the config files.
func WithSecrets(secrets SecretStore) Option {
	return func(s *Store) { s.secrets = secrets }
}

// WithOverride registers command-line values for platform.
func WithOverride(platform string, o Override) Option {
	return func(s *Store) { s.overrides[platform] = o }
}

// WithClock replaces the time source used by Touch.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store persisting through backend.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		lookupEnv: os.LookupEnv,
		overrides: make(map[string]Override),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the persisted config of platform, with the API key read from
// the secret store when one is configured.
func (s *Store) Get(platform string) (PlatformConfig, error) {
	cfg, err := s.backend.Load(platform)
	if err != nil {
		return PlatformConfig{}, err
	}
	if s.secrets != nil {
		key, ok, err := s.secrets.Get(platform)
		if err != nil {
			return PlatformConfig{}, err
		}
		if ok {
			cfg.APIKey = key
		}
	}
	return cfg, nil
}

// Set merges the non-empty fields of partial into the stored config of
// platform. The write is a locked read-modify-write with an atomic rename,
// so other platforms and unspecified fields are preserved.
func (s *Store) Set(platform string, partial PlatformConfig) error {
	if partial.BaseURL != "" {
		if err := ValidateBaseURL(partial.BaseURL); err != nil {
			return err
		}
	}

	moveToSecrets := s.secrets != nil && partial.APIKey != ""
	if moveToSecrets {
		if err := s.secrets.Set(platform, partial.APIKey); err != nil {
			return err
		}
	}

	return s.backend.Update(platform, func(cfg *PlatformConfig) error {
		switch {
		case moveToSecrets:
			cfg.APIKey = ""
		case partial.APIKey != "":
			cfg.APIKey = partial.APIKey
		}
		if partial.BaseURL != "" {
			cfg.BaseURL = partial.BaseURL
		}
		if partial.LastUsed != nil {
			t := *partial.LastUsed
			cfg.LastUsed = &t
		}
		return nil
	})
}

// Field names a persisted per-platform setting.
type Field string

const (
	FieldAPIKey  Field = "apiKey"
	FieldBaseURL Field = "baseUrl"
)

// Unset removes field from the stored config of platform. Removing the API
// key also deletes it from the secret store when one is configured. Unsetting
// a value that is not stored is not an error.
func (s *Store) Unset(platform string, field Field) error {
	switch field {
	case FieldAPIKey, FieldBaseURL:
	default:
		return api.Validation("unknown config key %q", string(field))
	}

	if field == FieldAPIKey && s.secrets != nil {
		if err := s.secrets.Delete(platform); err != nil {
			return err
		}
	}

	return s.backend.Update(platform, func(cfg *PlatformConfig) error {
		if field == FieldAPIKey {
			cfg.APIKey = ""
		} else {
			cfg.BaseURL = ""
		}
		return nil
	})
}

// Touch records now as the last use of platform.
func (s *Store) Touch(platform string) error {
	now := s.now().UTC().Truncate(time.Second)
	return s.backend.Update(platform, func(cfg *PlatformConfig) error {
		cfg.LastUsed = &now
		return nil
	})
}

// ResolveAPIKey returns the API key for platform from the highest-precedence
// source. When no source yields a value it returns an *api.Error of kind
// KindNotConfigured.
func (s *Store) ResolveAPIKey(platform string) (Resolved, error) {
	if v := strings.TrimSpace(s.overrides[platform].APIKey); v != "" {
		return Resolved{Value: v, Source: SourceFlag}, nil
	}
	if v, ok := s.env(platform, "API_KEY"); ok {
		return Resolved{Value: v, Source: SourceEnv}, nil
	}
	if s.secrets != nil {
		key, ok, err := s.secrets.Get(platform)
		if err != nil {
			return Resolved{}, err
		}
		if ok {
			return Resolved{Value: key, Source: SourceKeyring}, nil
		}
	}

	cfg, err := s.backend.Load(platform)
	if err != nil {
		return Resolved{}, err
	}
	if v := strings.TrimSpace(cfg.APIKey); v != "" {
		return Resolved{Value: v, Source: SourceFile}, nil
	}

	return Resolved{}, api.NotConfigured(platform)
}

// ResolveBaseURL returns the base URL for platform, falling back to def.
func (s *Store) ResolveBaseURL(platform, def string) (Resolved, error) {
	if v := strings.TrimSpace(s.overrides[platform].BaseURL); v != "" {
		return Resolved{Value: v, Source: SourceFlag}, nil
	}
	if v, ok := s.env(platform, "BASE_URL"); ok {
		return Resolved{Value: v, Source: SourceEnv}, nil
	}

	cfg, err := s.backend.Load(platform)
	if err != nil {
		return Resolved{}, err
	}
	if v := strings.TrimSpace(cfg.BaseURL); v != "" {
		return Resolved{Value: v, Source: SourceFile}, nil
	}

	return Resolved{Value: def, Source: SourceDefault}, nil
}

// Platforms lists platforms with persisted config.
func (s *Store) Platforms() ([]string, error) {
	list, err := s.backend.Platforms()
	if err != nil {
		return nil, errors.Wrap(err, "listing configured platforms")
	}
	return list, nil
}

func (s *Store) env(platform, suffix string) (string, bool) {
	v, ok := s.lookupEnv(api.EnvName(platform, suffix))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}
