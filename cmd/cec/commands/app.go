package commands

import (
	"log/slog"

	"github.com/thoreinstein/cec/cmd"
	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/executor"
	"github.com/thoreinstein/cec/internal/platform"
)

// apiTemplate is copied into every client built by the executor. Tests set
// HTTPClient to reach an httptest server.
var apiTemplate api.Options

// openStore opens the credential store described by the loaded settings.
// When target is non-empty, --api-key and --base-url override its values.
func openStore(target string) *config.Store {
	var opts []config.Option
	if target != "" && (apiKeyFlag != "" || baseURLFlag != "") {
		opts = append(opts, config.WithOverride(target, config.Override{
			APIKey:  apiKeyFlag,
			BaseURL: baseURLFlag,
		}))
	}
	return settings.OpenStore(opts...)
}

func newExecutor(store *config.Store) *executor.Executor {
	logger := slog.Default()

	template := apiTemplate
	template.UserAgent = cmd.UserAgent()
	template.Logger = logger

	return executor.New(platform.Default(),
		executor.StoreClients(store, template),
		executor.WithRetryDelay(settings.RetryDelay),
		executor.WithToucher(store),
		executor.WithLogger(logger),
	)
}
