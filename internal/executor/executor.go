// Package executor runs platform commands: it resolves the platform and
// command, builds an authenticated client, validates the arguments and
// invokes the handler with a single retry for idempotent reads.
package executor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/platform"
)

// DefaultRetryDelay is the pause before the single retry of a read.
const DefaultRetryDelay = 500 * time.Millisecond

// ClientFactory builds the client used for one execution.
type ClientFactory func(ctx context.Context, d platform.Descriptor) (command.Client, error)

// Credentials resolves what a client needs for a platform. *config.Store
// implements it.
type Credentials interface {
	ResolveAPIKey(platform string) (config.Resolved, error)
	ResolveBaseURL(platform, def string) (config.Resolved, error)
}

// Toucher records that a platform was used. *config.Store implements it.
type Toucher interface {
	Touch(platform string) error
}

// StoreClients returns a ClientFactory that resolves the API key and base
// URL through creds and builds an *api.Client from them. HTTPClient,
// UserAgent and Logger are taken from template.
func StoreClients(creds Credentials, template api.Options) ClientFactory {
	return func(_ context.Context, d platform.Descriptor) (command.Client, error) {
		key, err := creds.ResolveAPIKey(d.Key)
		if err != nil {
			return nil, err
		}
		base, err := creds.ResolveBaseURL(d.Key, d.DefaultBaseURL)
		if err != nil {
			return nil, err
		}

		opts := template
		opts.Platform = d.Key
		opts.APIKey = key.Value
		opts.BaseURL = base.Value
		opts.Auth = d.Auth
		return api.New(opts)
	}
}

// Executor is safe for concurrent use.
type Executor struct {
	registry   *platform.Registry
	clients    ClientFactory
	toucher    Toucher
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithRetryDelay sets the pause before a retry.
func WithRetryDelay(d time.Duration) Option {
	return func(e *Executor) { e.retryDelay = d }
}

// WithToucher records successful executions through t.
func WithToucher(t Toucher) Option {
	return func(e *Executor) { e.toucher = t }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// New returns an Executor over registry that builds clients with clients.
func New(registry *platform.Registry, clients ClientFactory, opts ...Option) *Executor {
	e := &Executor{
		registry:   registry,
		clients:    clients,
		retryDelay: DefaultRetryDelay,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the registry the executor resolves platforms from.
func (e *Executor) Registry() *platform.Registry {
	return e.registry
}

// Describe returns the descriptor and loaded module of platform.
func (e *Executor) Describe(platformKey string) (platform.Descriptor, *command.Module, error) {
	d, err := e.registry.Get(platformKey)
	if err != nil {
		return platform.Descriptor{}, nil, err
	}
	return d, d.Module(), nil
}

// Execute runs command on platform with args and returns the decoded result.
//
// Every failure is an *api.Error annotated with the platform and command.
// Unknown names fail with KindNotFound and missing credentials with
// KindNotConfigured before any client is used; bad arguments fail with
// KindValidation before any request. A retryable failure of a GET or HEAD
// command is retried once after the retry delay. Other commands run exactly
// once.
func (e *Executor) Execute(ctx context.Context, platformKey, commandName string, args command.Args) (any, error) {
	d, mod, err := e.Describe(platformKey)
	if err != nil {
		return nil, err
	}

	cmd, ok := mod.Lookup(commandName)
	if !ok {
		return nil, api.NotFound("unknown command %q for %s (available: %s)",
			commandName, platformKey, strings.Join(mod.Names(), ", ")).
			WithOperation(platformKey, "")
	}

	client, err := e.clients(ctx, d)
	if err != nil {
		return nil, api.AsError(err).WithOperation(platformKey, commandName)
	}

	valid, err := command.Validate(cmd.Fields, args)
	if err != nil {
		return nil, api.AsError(err).WithOperation(platformKey, commandName)
	}

	logger := e.logger.With("platform", platformKey, "command", commandName)
	start := time.Now()

	result, err := cmd.Handler(ctx, client, valid)
	if err != nil && cmd.Idempotent() && api.IsRetryable(err) {
		logger.Debug("retrying", "error", err, "delay", e.retryDelay)
		if sleepErr := sleep(ctx, e.retryDelay); sleepErr == nil {
			result, err = cmd.Handler(ctx, client, valid)
		}
	}
	if err != nil {
		apiErr := api.AsError(err).WithOperation(platformKey, commandName)
		logger.Debug("command failed", "kind", apiErr.Kind.String(), "duration", time.Since(start))
		return nil, apiErr
	}

	logger.Debug("command succeeded", "duration", time.Since(start))
	e.touch(logger, platformKey)
	return result, nil
}

func (e *Executor) touch(logger *slog.Logger, platformKey string) {
	if e.toucher == nil {
		return
	}
	if err := e.toucher.Touch(platformKey); err != nil {
		logger.Warn("could not record last use", "error", err)
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
