package paths

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG config home.
const AppName = "cec"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidKey indicates a platform key cannot be used as a file name.
	ErrInvalidKey = errors.New("invalid platform key")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Platform keys double as file names and environment variable prefixes, so
// they are restricted to lower-case letters, digits and interior dashes.
var keyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidKey reports whether key is usable as a platform identifier.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the cec configuration directory (<ConfigHome>/cec).
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// SettingsFile returns the default path of the application settings file.
func SettingsFile() string {
	return filepath.Join(ConfigDir(), "settings.yaml")
}

// PlatformsDir returns the directory holding one credential file per platform.
func PlatformsDir() string {
	return filepath.Join(ConfigDir(), "platforms")
}

// PlatformFile returns the credential file path for key inside dir.
// Returns ErrInvalidKey if key would escape dir or is otherwise malformed.
func PlatformFile(dir, key string) (string, error) {
	if !ValidKey(key) {
		return "", errors.Wrapf(ErrInvalidKey, "%q", key)
	}
	return filepath.Join(dir, key+".json"), nil
}
