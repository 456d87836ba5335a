package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/doctor"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

// Canonical config keys accepted by config:set and config:unset.
const (
	keyAPIKey  = string(config.FieldAPIKey)
	keyBaseURL = string(config.FieldBaseURL)
)

var configKeyAliases = map[string]string{
	"apikey":   keyAPIKey,
	"api_key":  keyAPIKey,
	"api-key":  keyAPIKey,
	"baseurl":  keyBaseURL,
	"base_url": keyBaseURL,
	"base-url": keyBaseURL,
}

var (
	configListOutput      string
	configListShowSecrets bool
	configValidateJSON    bool
)

func init() {
	configListCmd.Flags().StringVarP(&configListOutput, "output", "o", "yaml",
		"output format: yaml, json, toml")
	configListCmd.Flags().BoolVar(&configListShowSecrets, "show-secrets", false,
		"print API keys unmasked")
	configValidateCmd.Flags().BoolVar(&configValidateJSON, "json", false,
		"output the report as JSON")

	rootCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configUnsetCmd)
	rootCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configValidateCmd)
}

var configSetCmd = &cobra.Command{
	Use:   "config:set <platform> <key> <value>",
	Short: "Store an API key or base URL for a platform",
	Long: `Store a credential for a platform.

Keys are apiKey and baseUrl (api_key, api-key, base_url and base-url are
accepted too). Values are written to <platforms dir>/<platform>.json with
owner-only permissions; with credential_store: keyring the API key goes to
the system keyring instead. Other values of the platform are kept.`,
	Example: `  cec config:set smartlead apiKey sl_0123456789
  cec config:set apollo base_url https://api.apollo.io/api/v1

See Also: cec config:list, cec config:unset, cec config:validate`,
	Args:              cobra.ExactArgs(3),
	ValidArgsFunction: completeConfigSet,
	RunE:              runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "config:unset <platform> <key>",
	Short: "Remove a stored API key or base URL",
	Long: `Remove a stored value of a platform. Removing apiKey also deletes the
key from the system keyring when credential_store is keyring. A removed base
URL falls back to the built-in default. Environment variables are not
affected.`,
	Example: `  cec config:unset smartlead apiKey
  cec config:unset apollo base_url

See Also: cec config:set, cec config:list`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeConfigSet,
	RunE:              runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:   "config:list",
	Short: "Show the resolved configuration of every platform",
	Long: `Show the API key, base URL and last use of every platform, together with
the source each value resolved from (flag, env, keyring, file, default).

API keys are masked unless --show-secrets is given.`,
	Example: `  cec config:list
  cec config:list --output json
  cec config:list -o toml --show-secrets

See Also: cec config:set`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configValidateCmd = &cobra.Command{
	Use:   "config:validate",
	Short: "Check the credentials of every platform",
	Long: `Run the credential checks of every platform without network access and
print a report. A platform without an API key is reported as an error
with a hint on how to configure it.

Exits 1 when no platform is configured at all.`,
	Example: `  cec config:validate
  cec config:validate --json

See Also: cec health, cec config:set`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

// normalizeConfigKey maps a config:set key or alias to its canonical name.
func normalizeConfigKey(key string) (string, error) {
	if canonical, ok := configKeyAliases[strings.ToLower(strings.TrimSpace(key))]; ok {
		return canonical, nil
	}
	return "", errors.NewUserError(errors.Newf("unknown config key %q", key),
		"Valid keys: apiKey, baseUrl")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, rawKey, value := args[0], args[1], strings.TrimSpace(args[2])

	if _, err := platform.Default().Get(key); err != nil {
		return err
	}
	name, err := normalizeConfigKey(rawKey)
	if err != nil {
		return err
	}
	if value == "" {
		return errors.NewUserError(errors.Newf("%s must not be empty", name), "")
	}

	var partial config.PlatformConfig
	shown := value
	switch name {
	case keyAPIKey:
		partial.APIKey = value
		shown = doctor.MaskValue(value)
	case keyBaseURL:
		if err := config.ValidateBaseURL(value); err != nil {
			return errors.NewUserError(err, "Use an absolute http(s) URL")
		}
		partial.BaseURL = value
	}

	if err := openStore("").Set(key, partial); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "saving %s config", key), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s %s = %s\n", key, name, shown)
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	key := args[0]
	if _, err := platform.Default().Get(key); err != nil {
		return err
	}
	name, err := normalizeConfigKey(args[1])
	if err != nil {
		return err
	}

	if err := openStore("").Unset(key, config.Field(name)); err != nil {
		return errors.NewSystemError(errors.Wrapf(err, "removing %s %s", key, name), "")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Unset %s %s\n", key, name)
	return nil
}

// configEntry is the config:list view of one platform.
type configEntry struct {
	APIKey        string     `json:"apiKey,omitempty" yaml:"apiKey,omitempty" toml:"apiKey,omitempty"`
	APIKeySource  string     `json:"apiKeySource" yaml:"apiKeySource" toml:"apiKeySource"`
	BaseURL       string     `json:"baseUrl" yaml:"baseUrl" toml:"baseUrl"`
	BaseURLSource string     `json:"baseUrlSource" yaml:"baseUrlSource" toml:"baseUrlSource"`
	LastUsed      *time.Time `json:"lastUsed,omitempty" yaml:"lastUsed,omitempty" toml:"lastUsed,omitempty"`
}

func collectConfig(store *config.Store, showSecrets bool) (map[string]configEntry, error) {
	out := make(map[string]configEntry)
	for _, d := range platform.Default().List() {
		var e configEntry

		e.APIKeySource = "none"
		if key, err := store.ResolveAPIKey(d.Key); err == nil {
			e.APIKey = key.Value
			if !showSecrets {
				e.APIKey = doctor.MaskValue(key.Value)
			}
			e.APIKeySource = string(key.Source)
		}

		base, err := store.ResolveBaseURL(d.Key, d.DefaultBaseURL)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s base URL", d.Key)
		}
		e.BaseURL = base.Value
		if !showSecrets {
			e.BaseURL = doctor.MaskURL(base.Value)
		}
		e.BaseURLSource = string(base.Source)

		cfg, err := store.Get(d.Key)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s config", d.Key)
		}
		e.LastUsed = cfg.LastUsed

		out[d.Key] = e
	}
	return out, nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	entries, err := collectConfig(openStore(""), configListShowSecrets)
	if err != nil {
		return errors.NewSystemError(err, "")
	}

	out := cmd.OutOrStdout()
	switch strings.ToLower(configListOutput) {
	case "json":
		return writeJSON(out, entries)
	case "yaml", "yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding YAML"), "")
		}
		return enc.Close()
	case "toml":
		data, err := toml.Marshal(entries)
		if err != nil {
			return errors.NewSystemError(errors.Wrap(err, "encoding TOML"), "")
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.NewUserError(errors.Newf("unknown output format %q", configListOutput),
			"Use --output yaml, json or toml")
	}
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	store := openStore("")
	runner := doctor.NewRunner(settings.HealthConcurrency)
	for _, d := range platform.Default().List() {
		runner.AddCheck(doctor.NewCredentialCheck(d, store))
	}
	report := runner.Run(cmd.Context())

	if configValidateJSON {
		if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
	} else {
		writeReport(cmd.OutOrStdout(), report)
	}

	if report.Summary.Errors == len(report.Results) {
		return errors.NewUserError(errors.New("no platform is configured"),
			"Run: cec config:set <platform> apiKey <key>")
	}
	return nil
}

func completeConfigSet(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	switch len(args) {
	case 0:
		return completePlatforms(nil, nil, "")
	case 1:
		return []string{keyAPIKey, keyBaseURL}, cobra.ShellCompDirectiveNoFileComp
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}
