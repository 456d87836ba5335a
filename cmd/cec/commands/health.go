package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

var healthJSON bool

func init() {
	healthCmd.Flags().BoolVar(&healthJSON, "json", false,
		"output the report as JSON")
	rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe every configured platform",
	Long: `Run a cheap read against every platform that has an API key and report
whether it answered. Platforms are checked concurrently, bounded by the
health_concurrency setting.

Exit codes:
  0 - Every checked platform answered
  1 - No platform is configured
  2 - At least one platform failed`,
	Example: `  cec health
  cec health --json

See Also: cec platforms --check, cec config:validate`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, _ []string) error {
	report := reachability(cmd, openStore(""), platform.Default().List())
	if len(report.Results) == 0 {
		return errors.NewUserError(errors.New("no platform is configured"),
			"Run: cec config:set <platform> apiKey <key>")
	}

	if healthJSON {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeReport(cmd.OutOrStdout(), report)
	}

	if report.HasErrors() {
		return errors.NewSystemError(errors.Newf("%d platform(s) failed", report.Summary.Errors), "")
	}
	return nil
}
