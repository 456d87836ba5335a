// Package paths resolves the on-disk locations used by cec.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// All state lives under a single directory:
//
//	<ConfigHome>/cec/settings.yaml          application settings
//	<ConfigHome>/cec/platforms/<key>.json   per-platform credentials
//
// Platform keys are validated with [ValidKey] before being turned into file
// names so a key can never address a file outside the platforms directory.
package paths
