package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/editor"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/paths"
	"github.com/thoreinstein/cec/internal/platform"
)

// openEditor runs the editor. Tests replace it.
var openEditor = editor.Open

func init() {
	rootCmd.AddCommand(configEditCmd)
}

var configEditCmd = &cobra.Command{
	Use:   "config:edit [platform]",
	Short: "Open the settings or a platform file in $EDITOR",
	Long: `Open the settings file, or with a platform argument that platform's
credential file, in $EDITOR ($VISUAL, nano or vi as fallbacks).

Missing files are created first. The edited file is parsed afterwards and
an error is reported if it is no longer valid.`,
	Example: `  cec config:edit
  cec config:edit lemlist

See Also: cec config:set, cec config:validate`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePlatforms,
	RunE:              runConfigEdit,
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, err := editTarget(args)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
	streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := openEditor(path, streams); err != nil {
		return errors.NewSystemError(err, "Set $EDITOR to an installed editor")
	}

	if len(args) == 0 {
		if _, err := config.LoadSettings(path); err != nil {
			return errors.NewConfigError(err)
		}
		return nil
	}
	if _, err := config.NewFileBackend(settings.PlatformsDir).Load(args[0]); err != nil {
		return errors.NewUserError(err, "Fix the file with: cec config:edit "+args[0])
	}
	return nil
}

// editTarget returns the file to edit, creating it when missing.
func editTarget(args []string) (string, error) {
	if len(args) == 0 {
		path := settingsPath
		if path == "" {
			path = paths.SettingsFile()
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			return "", errors.NewSystemError(errors.Wrap(err, "encoding settings"), "")
		}
		return path, createIfMissing(path, data)
	}

	if _, err := platform.Default().Get(args[0]); err != nil {
		return "", err
	}
	path, err := paths.PlatformFile(settings.PlatformsDir, args[0])
	if err != nil {
		return "", errors.NewUserError(err, "")
	}
	return path, createIfMissing(path, []byte("{}\n"))
}

func createIfMissing(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0o700); err != nil {
		return errors.NewSystemError(err, "")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "creating %s", path), "")
	}
	return nil
}
