package config

import (
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/paths"
)

// Credential store names accepted by the credential_store setting.
const (
	CredentialStoreFile    = "file"
	CredentialStoreKeyring = "keyring"
)

// Settings are the application-wide options of cec, distinct from the
// per-platform credentials held by Store.
type Settings struct {
	CredentialStore   string        `mapstructure:"credential_store" yaml:"credential_store"`
	HealthConcurrency int           `mapstructure:"health_concurrency" yaml:"health_concurrency"`
	RetryDelay        time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	PlatformsDir      string        `mapstructure:"platforms_dir" yaml:"platforms_dir"`
}

// DefaultSettings returns the built-in settings.
func DefaultSettings() *Settings {
	return &Settings{
		CredentialStore:   CredentialStoreFile,
		HealthConcurrency: 4,
		RetryDelay:        500 * time.Millisecond,
		LogFormat:         "text",
		PlatformsDir:      paths.PlatformsDir(),
	}
}

// newViper returns an isolated viper instance with defaults and CEC_
// environment binding.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CEC")
	v.AutomaticEnv()

	d := DefaultSettings()
	v.SetDefault("credential_store", d.CredentialStore)
	v.SetDefault("health_concurrency", d.HealthConcurrency)
	v.SetDefault("retry_delay", d.RetryDelay)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("platforms_dir", d.PlatformsDir)
	return v
}

// LoadSettings reads the settings file.
// If path is provided, it reads from that specific file and a missing file is
// an error. If path is empty, the default location is used and a missing file
// yields the defaults. The loaded settings are validated.
func LoadSettings(path string) (*Settings, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("settings")
		v.AddConfigPath(paths.ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			if path != "" {
				return nil, errors.Wrapf(err, "settings file not found at %s", path)
			}
		case path != "" && isNotExist(err):
			return nil, errors.Wrapf(err, "settings file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading settings file")
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}

	if errs := Validate(&s); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating settings")
	}

	return &s, nil
}

// OpenStore builds the credential Store described by s.
func (s *Settings) OpenStore(opts ...Option) *Store {
	if s.CredentialStore == CredentialStoreKeyring {
		opts = append([]Option{WithSecrets(NewKeyringSecrets())}, opts...)
	}
	return NewStore(NewFileBackend(s.PlatformsDir), opts...)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
