package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thoreinstein/cec/internal/errors"
)

// DefaultTimeout bounds every request made by a Client.
const DefaultTimeout = 30 * time.Second

// maxBodySize is the largest response body accepted. Larger bodies fail
// the request.
const maxBodySize = 10 << 20

// AuthStyle selects where the API key is placed on a request.
type AuthStyle int

const (
	// AuthHeader sends the key in a request header, optionally prefixed
	// (e.g. "Bearer ").
	AuthHeader AuthStyle = iota

	// AuthQuery sends the key as a URL query parameter.
	AuthQuery

	// AuthBasic sends the key as the password of HTTP basic auth with the
	// configured user name (usually empty).
	AuthBasic
)

// Auth describes a platform's credential convention.
type Auth struct {
	Style AuthStyle

	// Name is the header name (AuthHeader), the query parameter
	// (AuthQuery) or the basic auth user name (AuthBasic).
	Name string

	// Prefix is prepended to the key in header auth.
	Prefix string
}

// Options configures a Client. It is a read-only snapshot: later changes to
// the configuration store are not observed by a Client built from it.
type Options struct {
	BaseURL string
	APIKey  string
	Auth    Auth

	// Platform names the upstream in log lines and errors.
	Platform string

	// HTTPClient overrides the transport. Its Timeout is replaced by
	// DefaultTimeout when zero.
	HTTPClient *http.Client

	UserAgent string
	Logger    *slog.Logger
}

// Client performs authenticated JSON requests against one platform.
// It is safe for concurrent use and holds no state between calls.
type Client struct {
	base      *url.URL
	apiKey    string
	auth      Auth
	platform  string
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

// New builds a Client. It fails with KindNotConfigured when no API key is
// given and with KindValidation when the base URL is not an absolute
// http(s) URL; no request is ever attempted without credentials.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, NotConfigured(opts.Platform)
	}

	base, err := url.Parse(opts.BaseURL)
	if err != nil || !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		e := Validation("invalid base URL %q for %s", opts.BaseURL, opts.Platform)
		e.Platform = opts.Platform
		return nil, e
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if hc.Timeout == 0 {
		c := *hc
		c.Timeout = DefaultTimeout
		hc = &c
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "cec"
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		base:      base,
		apiKey:    opts.APIKey,
		auth:      opts.Auth,
		platform:  opts.Platform,
		http:      hc,
		userAgent: ua,
		logger:    logger,
	}, nil
}

// Request sends method to path (relative to the base URL, optionally with a
// query string) with body encoded as JSON when non-nil.
//
// On success the decoded JSON value is returned; a body that is not JSON is
// returned as a string and an empty body as nil. Failures are always *Error.
func (c *Client) Request(ctx context.Context, method, path string, body any) (any, error) {
	target, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, Validation("encoding request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, Unknown(errors.Wrap(err, "building request"))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authenticate(req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = redactURL(err)
		c.logger.Debug("request failed",
			"platform", c.platform, "method", method, "path", target.Path,
			"request_id", requestID, "duration", time.Since(start), "error", err)
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, classify(ctx, err)
	}
	if len(raw) > maxBodySize {
		return nil, Unknown(errors.Newf("%s response exceeds %d MiB", c.platform, maxBodySize>>20))
	}

	c.logger.Debug("request completed",
		"platform", c.platform, "method", method, "path", target.Path,
		"status", resp.StatusCode, "request_id", requestID, "duration", time.Since(start))

	payload := decode(raw)
	if resp.StatusCode >= 400 {
		return nil, HTTPStatus(resp.StatusCode, payload)
	}
	return payload, nil
}

// resolve joins path onto the base URL, keeping any base path prefix and
// merging query parameters from both.
func (c *Client) resolve(path string) (*url.URL, error) {
	rel, err := url.Parse(path)
	if err != nil || rel.IsAbs() || rel.Host != "" {
		return nil, Validation("invalid request path %q", path)
	}

	u := *c.base
	u.Path = strings.TrimRight(c.base.Path, "/") + "/" + strings.TrimLeft(rel.Path, "/")
	u.RawPath = ""

	q := c.base.Query()
	for k, vs := range rel.Query() {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if c.auth.Style == AuthQuery {
		q.Set(c.auth.Name, c.apiKey)
	}
	u.RawQuery = q.Encode()

	return &u, nil
}

func (c *Client) authenticate(req *http.Request) {
	switch c.auth.Style {
	case AuthHeader:
		name := c.auth.Name
		if name == "" {
			name = "Authorization"
		}
		req.Header.Set(name, c.auth.Prefix+c.apiKey)
	case AuthBasic:
		req.SetBasicAuth(c.auth.Name, c.apiKey)
	case AuthQuery:
		// added in resolve
	}
}

// redactURL drops the query string from a *url.Error so that keys sent as
// query parameters never reach messages or logs.
func redactURL(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	if u, perr := url.Parse(ue.URL); perr == nil && u.RawQuery != "" {
		u.RawQuery = ""
		c := *ue
		c.URL = u.String()
		return &c
	}
	return err
}

// classify maps a transport error onto the taxonomy.
func classify(ctx context.Context, err error) *Error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return Unknown(errors.Wrap(err, "request cancelled"))
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Timeout(err)
	}
	return Network(err)
}

// decode parses raw as JSON. Integral numbers become int64 and others
// float64; a body that is not JSON comes back as a string.
func decode(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(raw)
	}
	return normalizeNumbers(v)
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeNumbers(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = normalizeNumbers(val)
		}
		return t
	default:
		return v
	}
}

func httpStatusText(code int) string {
	if s := http.StatusText(code); s != "" {
		return strings.ToLower(s)
	}
	return "unexpected status"
}
