// Package commands implements the CLI commands for cec.
package commands

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/cmd"
	"github.com/thoreinstein/cec/internal/cli/prompt"
	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/logging"
	"github.com/thoreinstein/cec/internal/platform"
	"github.com/thoreinstein/cec/internal/shell"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag. Empty means the
// log_format setting.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// apiKeyFlag and baseURLFlag override the credentials of the platform the
// command targets.
var (
	apiKeyFlag  string
	baseURLFlag string
)

// settingsPath holds the value of the --settings flag.
var settingsPath string

// settings are loaded once per invocation in PersistentPreRunE.
var settings = config.DefaultSettings()

// logSink is the open --log-file, closed by Execute.
var logSink io.Closer

// interactive reports whether prompts, spinners and the fuzzy finder can
// be used. Tests replace it.
var interactive = logging.IsInteractive

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from settings)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "",
		"API key for the target platform, overriding env and config")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "",
		"base URL for the target platform, overriding env and config")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "",
		"settings file (default: <config dir>/cec/settings.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("cec version {{.Version}}\n")

	// Errors are printed by Execute.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "cec [platform]",
	Short: "Cold email platforms from one command line",
	Long: `cec drives the APIs of cold-email platforms (SmartLead, Instantly,
Apollo, Salesforge, lemlist) through one uniform set of commands.

Without arguments it shows a platform menu and opens an interactive shell
for the chosen platform. With a platform argument it opens the shell
directly. Use "cec exec" for scripting.

API keys resolve from --api-key, then <PLATFORM>_API_KEY, then the keyring
(when credential_store is keyring), then "cec config:set".`,
	Example: `  # Pick a platform and start the shell
  cec

  # Shell for SmartLead
  cec smartlead

  # One-shot execution
  cec exec smartlead campaigns
  cec exec smartlead campaign-create --args '{"name":"Q1 Outreach"}'

See Also: cec platforms, cec commands, cec config:set`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completePlatforms,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadSettings(); err != nil {
			return err
		}
		return setupLogging(cmd)
	},
	RunE: runRoot,
}

func loadSettings() error {
	s, err := config.LoadSettings(settingsPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	settings = s
	return nil
}

// setupLogging configures the default logger based on verbosity flags and
// stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"Use either -q or -v")
	}

	format := logging.Format(settings.LogFormat)
	if logFormat != "" {
		format = logging.Format(logFormat)
	}
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewUserError(errors.Newf("unknown log format %q", format), "Use --log-format text or json")
	}

	cfg := logging.Config{
		Level:  logging.ResolveLevel(verbosity, quiet, os.LookupEnv),
		Format: format,
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		logSink = f
		cfg.File = f
	}

	logger := logging.New(cfg)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	key := ""
	if len(args) == 1 {
		key = args[0]
	} else {
		d, err := prompt.NewSelectorWithIO(in, out).SelectPlatform(platform.Default().List())
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		if err != nil {
			return errors.NewUserError(err, "Enter a number from the menu or a platform key")
		}
		key = d.Key
	}

	return runShell(cmd, in, key)
}

func runShell(cmd *cobra.Command, in *bufio.Reader, key string) error {
	exec := newExecutor(openStore(key))
	bound, err := exec.Select(key)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sh := &shell.Shell{
		Session: bound,
		In:      in,
		Out:     out,
		Confirm: prompt.LineConfirm(in, out),
	}
	if interactive(cmd.InOrStdin(), out) {
		sh.Confirm = prompt.SurveyConfirm
		sh.Spinner = shell.NewSpinner(cmd.ErrOrStderr())
		sh.Pick = shell.FuzzyPick
	}

	if err := sh.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func completePlatforms(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return platform.Default().Keys(), cobra.ShellCompDirectiveNoFileComp
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if logSink != nil {
		_ = logSink.Close()
	}
	if err == nil {
		return errors.ExitSuccess
	}

	exitErr := toExitError(err)
	printError(rootCmd.ErrOrStderr(), exitErr)
	return exitErr.Code
}
