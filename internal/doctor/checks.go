package doctor

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/config"
	"github.com/thoreinstein/cec/internal/platform"
)

// Check categories.
const (
	CategoryCredentials  = "credentials"
	CategoryReachability = "reachability"
)

// Credentials resolves the API key and base URL of a platform.
type Credentials interface {
	ResolveAPIKey(platform string) (config.Resolved, error)
	ResolveBaseURL(platform, def string) (config.Resolved, error)
}

// Executor runs a platform command.
type Executor interface {
	Execute(ctx context.Context, platform, command string, args command.Args) (any, error)
}

// CredentialCheck verifies that a platform has a usable API key and base URL.
// It performs no network I/O.
type CredentialCheck struct {
	desc  platform.Descriptor
	creds Credentials
}

var _ Check = (*CredentialCheck)(nil)

// NewCredentialCheck creates a credential check for d.
func NewCredentialCheck(d platform.Descriptor, creds Credentials) *CredentialCheck {
	return &CredentialCheck{desc: d, creds: creds}
}

// Name returns the unique identifier for this check.
func (c *CredentialCheck) Name() string {
	return c.desc.Key + "-credentials"
}

// Category returns the grouping for this check.
func (c *CredentialCheck) Category() string {
	return CategoryCredentials
}

// Run executes the check.
func (c *CredentialCheck) Run(_ context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category(), Platform: c.desc.Key}

	key, err := c.creds.ResolveAPIKey(c.desc.Key)
	if err != nil {
		res.Status = SeverityError
		if api.KindOf(err) == api.KindNotConfigured {
			res.Message = "no API key configured"
			res.FixHint = fmt.Sprintf("export %s or run: cec config:set %s apiKey <key>",
				api.EnvName(c.desc.Key, "API_KEY"), c.desc.Key)
		} else {
			res.Message = fmt.Sprintf("reading API key: %v", err)
		}
		return res
	}

	base, err := c.creds.ResolveBaseURL(c.desc.Key, c.desc.DefaultBaseURL)
	if err != nil {
		res.Status = SeverityError
		res.Message = fmt.Sprintf("reading base URL: %v", err)
		return res
	}

	res.Details = map[string]any{
		"key_source":      string(key.Source),
		"key":             MaskValue(key.Value),
		"base_url":        MaskURL(base.Value),
		"base_url_source": string(base.Source),
	}

	if u, perr := url.Parse(base.Value); perr != nil || u.Scheme != "https" {
		res.Status = SeverityWarning
		res.Message = fmt.Sprintf("API key from %s, but base URL %q is not https", key.Source, base.Value)
		res.FixHint = fmt.Sprintf("run: cec config:set %s baseUrl %s", c.desc.Key, c.desc.DefaultBaseURL)
		return res
	}

	res.Status = SeverityInfo
	res.Message = fmt.Sprintf("API key from %s", key.Source)
	return res
}

// ReachabilityCheck runs a platform's health command and reports whether the
// upstream accepted the request.
type ReachabilityCheck struct {
	desc platform.Descriptor
	exec Executor
}

var _ Check = (*ReachabilityCheck)(nil)

// NewReachabilityCheck creates a reachability check for d.
func NewReachabilityCheck(d platform.Descriptor, exec Executor) *ReachabilityCheck {
	return &ReachabilityCheck{desc: d, exec: exec}
}

// Name returns the unique identifier for this check.
func (c *ReachabilityCheck) Name() string {
	return c.desc.Key + "-reachability"
}

// Category returns the grouping for this check.
func (c *ReachabilityCheck) Category() string {
	return CategoryReachability
}

// Run executes the check. A platform without credentials is skipped with a
// warning rather than failed.
func (c *ReachabilityCheck) Run(ctx context.Context) *CheckResult {
	res := &CheckResult{Name: c.Name(), Category: c.Category(), Platform: c.desc.Key}

	start := time.Now()
	_, err := c.exec.Execute(ctx, c.desc.Key, c.desc.HealthCommand, nil)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err == nil {
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("%s responded in %s", c.desc.DisplayName, elapsed)
		res.Details = map[string]any{"command": c.desc.HealthCommand, "duration_ms": elapsed.Milliseconds()}
		return res
	}

	apiErr := api.AsError(err)
	res.Details = map[string]any{"command": c.desc.HealthCommand, "kind": apiErr.Kind.String()}

	if apiErr.Kind == api.KindNotConfigured {
		res.Status = SeverityWarning
		res.Message = "skipped: not configured"
		res.FixHint = fmt.Sprintf("run: cec config:set %s apiKey <key>", c.desc.Key)
		return res
	}

	res.Status = SeverityError
	res.Message = fmt.Sprintf("%s: %s", apiErr.Kind, apiErr.Message)
	if apiErr.Kind == api.KindHTTPStatus {
		res.Details["status_code"] = apiErr.StatusCode
		res.Message = fmt.Sprintf("HTTP %d: %s", apiErr.StatusCode, apiErr.Message)
		if apiErr.StatusCode == 401 || apiErr.StatusCode == 403 {
			res.FixHint = "the API key was rejected; set a new one with cec config:set"
		}
	}
	return res
}
