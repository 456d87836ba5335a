package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/cmd"
	"github.com/thoreinstein/cec/internal/platform"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, build date and Go version of cec, followed by whether each platform has an API key.`,
	Args:  cobra.NoArgs,
	Run: func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		fmt.Fprintf(out, "cec version %s\n", cmd.Version)
		fmt.Fprintf(out, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(out, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
		fmt.Fprintln(out, "  platforms:")

		store := openStore("")
		for _, d := range platform.Default().List() {
			status := "not configured"
			if key, err := store.ResolveAPIKey(d.Key); err == nil {
				status = fmt.Sprintf("configured (%s)", key.Source)
			}
			fmt.Fprintf(out, "    %-11s %s\n", d.Key+":", status)
		}
	},
}
