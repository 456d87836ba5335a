package config

import (
	"github.com/zalando/go-keyring"

	"github.com/thoreinstein/cec/internal/errors"
)

// KeyringService is the service name API keys are stored under.
const KeyringService = "cec"

// SecretStore keeps API keys outside the JSON config files.
type SecretStore interface {
	// Get returns the key for platform; ok is false when none is stored.
	Get(platform string) (key string, ok bool, err error)
	Set(platform, key string) error
	Delete(platform string) error
}

// KeyringSecrets stores API keys in the OS keyring, one entry per platform.
type KeyringSecrets struct{}

// NewKeyringSecrets returns a keyring-backed SecretStore.
func NewKeyringSecrets() *KeyringSecrets {
	return &KeyringSecrets{}
}

// Get implements SecretStore.
func (KeyringSecrets) Get(platform string) (string, bool, error) {
	key, err := keyring.Get(KeyringService, platform)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "reading %s key from keyring", platform)
	}
	return key, key != "", nil
}

// Set implements SecretStore.
func (KeyringSecrets) Set(platform, key string) error {
	if err := keyring.Set(KeyringService, platform, key); err != nil {
		return errors.Wrapf(err, "saving %s key to keyring", platform)
	}
	return nil
}

// Delete implements SecretStore. Deleting a missing entry is not an error.
func (KeyringSecrets) Delete(platform string) error {
	err := keyring.Delete(KeyringService, platform)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrapf(err, "deleting %s key from keyring", platform)
	}
	return nil
}
