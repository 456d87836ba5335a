package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/doctor"
	"github.com/thoreinstein/cec/internal/platform"
)

var (
	platformsJSON  bool
	platformsCheck bool
)

func init() {
	platformsCmd.Flags().BoolVar(&platformsJSON, "json", false,
		"output as JSON")
	platformsCmd.Flags().BoolVar(&platformsCheck, "check", false,
		"check each configured platform with a cheap read")
	rootCmd.AddCommand(platformsCmd)
}

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms and their configuration",
	Long: `List every supported platform with its command count, where its API key
comes from and when it was last used.

With --check, each configured platform is checked with a cheap read and the
result is shown in a STATUS column.`,
	Example: `  cec platforms
  cec platforms --check
  cec platforms --json

See Also: cec commands, cec health`,
	Args: cobra.NoArgs,
	RunE: runPlatforms,
}

// platformInfo is the JSON form of one platforms row.
type platformInfo struct {
	Key          string     `json:"key"`
	Name         string     `json:"name"`
	Commands     int        `json:"commands"`
	Categories   int        `json:"categories"`
	Configured   bool       `json:"configured"`
	KeySource    string     `json:"key_source,omitempty"`
	BaseURL      string     `json:"base_url"`
	LastUsed     *time.Time `json:"last_used,omitempty"`
	Status       string     `json:"status,omitempty"`
	StatusDetail string     `json:"status_detail,omitempty"`
}

func runPlatforms(cmd *cobra.Command, _ []string) error {
	store := openStore("")
	descs := platform.Default().List()

	infos := make([]platformInfo, 0, len(descs))
	for _, d := range descs {
		info, err := describePlatform(store, d)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	if platformsCheck {
		report := reachability(cmd, store, descs)
		for _, r := range report.Results {
			for i := range infos {
				if infos[i].Key == r.Platform {
					infos[i].Status = r.Status.String()
					infos[i].StatusDetail = r.Message
				}
			}
		}
	}

	if platformsJSON {
		return writeJSON(cmd.OutOrStdout(), infos)
	}

	headers := []string{"KEY", "NAME", "COMMANDS", "CATEGORIES", "API KEY", "LAST USED"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}
	if platformsCheck {
		headers = append(headers, "STATUS")
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		source := "-"
		if info.Configured {
			source = info.KeySource
		}
		lastUsed := "never"
		if info.LastUsed != nil {
			lastUsed = info.LastUsed.Local().Format(time.DateTime)
		}
		row := []string{
			info.Key,
			info.Name,
			strconv.Itoa(info.Commands),
			strconv.Itoa(info.Categories),
			source,
			lastUsed,
		}
		if platformsCheck {
			status := info.Status
			if status == "" {
				status = "-"
			}
			row = append(row, status)
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
	return nil
}

func describePlatform(store *config.Store, d platform.Descriptor) (platformInfo, error) {
	info := platformInfo{
		Key:        d.Key,
		Name:       d.DisplayName,
		Commands:   d.CommandCount,
		Categories: d.CategoryCount,
		BaseURL:    d.DefaultBaseURL,
	}

	if key, err := store.ResolveAPIKey(d.Key); err == nil {
		info.Configured = true
		info.KeySource = string(key.Source)
	}
	if base, err := store.ResolveBaseURL(d.Key, d.DefaultBaseURL); err == nil {
		info.BaseURL = base.Value
	}

	cfg, err := store.Get(d.Key)
	if err != nil {
		return platformInfo{}, err
	}
	info.LastUsed = cfg.LastUsed
	return info, nil
}

// reachability checks the configured platforms among descs concurrently.
func reachability(cmd *cobra.Command, store *config.Store, descs []platform.Descriptor) *doctor.DoctorReport {
	exec := newExecutor(store)
	runner := doctor.NewRunner(settings.HealthConcurrency)
	for _, d := range descs {
		if _, err := store.ResolveAPIKey(d.Key); err != nil {
			continue
		}
		runner.AddCheck(doctor.NewReachabilityCheck(d, exec))
	}
	return runner.Run(cmd.Context())
}
