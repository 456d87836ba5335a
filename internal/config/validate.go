package config

import (
	"net/url"
	"time"

	"github.com/thoreinstein/cec/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrInvalidBaseURL indicates a base URL that is not absolute http(s).
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidCredentialStore indicates an unknown credential_store value.
	ErrInvalidCredentialStore = errors.New("invalid credential store")

	// ErrInvalidConcurrency indicates a non-positive health_concurrency.
	ErrInvalidConcurrency = errors.New("health_concurrency must be >= 1")

	// ErrInvalidRetryDelay indicates a negative retry_delay.
	ErrInvalidRetryDelay = errors.New("retry_delay must not be negative")
)

// ValidateBaseURL checks that raw is an absolute http or https URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Wrapf(ErrInvalidBaseURL, "%q", raw)
	}
	return nil
}

// Validate checks Settings for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(s *Settings) []error {
	if s == nil {
		return []error{errors.New("settings are nil")}
	}

	var errs []error

	switch s.CredentialStore {
	case CredentialStoreFile, CredentialStoreKeyring:
	default:
		errs = append(errs, errors.Wrapf(ErrInvalidCredentialStore, "%q (valid: file, keyring)", s.CredentialStore))
	}

	if s.HealthConcurrency < 1 {
		errs = append(errs, ErrInvalidConcurrency)
	}

	if s.RetryDelay < 0 || s.RetryDelay > time.Minute {
		errs = append(errs, errors.Wrapf(ErrInvalidRetryDelay, "%s", s.RetryDelay))
	}

	return errs
}
