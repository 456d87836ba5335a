package api

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/cec/internal/errors"
)

// Kind classifies an Error.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota

	// KindNotConfigured means no API key could be resolved for the platform.
	KindNotConfigured

	// KindNotFound means the platform or command name is not registered.
	KindNotFound

	// KindValidation means the arguments failed their declared checks.
	KindValidation

	// KindNetwork is a transport failure (DNS, connect, TLS, reset).
	KindNetwork

	// KindTimeout means the request did not complete within its deadline.
	KindTimeout

	// KindHTTPStatus is an upstream response with status >= 400.
	KindHTTPStatus
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// UserFacing reports whether the kind describes operator input rather than
// a system or upstream failure.
func (k Kind) UserFacing() bool {
	switch k {
	case KindNotConfigured, KindNotFound, KindValidation:
		return true
	default:
		return false
	}
}

// Error is the single error type returned across the execution core.
type Error struct {
	Kind    Kind
	Message string

	// StatusCode and Body are set for KindHTTPStatus. Body holds the decoded
	// JSON response or the raw text when it was not JSON.
	StatusCode int
	Body       any

	// Retryable marks transient failures that are safe to repeat for
	// idempotent requests.
	Retryable bool

	// Platform and Command are filled in by the executor.
	Platform string
	Command  string

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Platform != "" {
		b.WriteString(e.Platform)
		if e.Command != "" {
			b.WriteString(" ")
			b.WriteString(e.Command)
		}
		b.WriteString(": ")
	}
	if e.Kind == KindHTTPStatus {
		fmt.Fprintf(&b, "HTTP %d: ", e.StatusCode)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by kind, so callers can write
// errors.Is(err, &api.Error{Kind: api.KindTimeout}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.StatusCode == 0 || t.StatusCode == e.StatusCode)
}

// WithOperation returns a copy of e annotated with the platform and command
// it was produced for. Existing annotations are preserved.
func (e *Error) WithOperation(platform, command string) *Error {
	c := *e
	if c.Platform == "" {
		c.Platform = platform
	}
	if c.Command == "" {
		c.Command = command
	}
	return &c
}

// NotConfigured reports a platform with no resolvable API key.
func NotConfigured(platform string) *Error {
	return &Error{
		Kind:     KindNotConfigured,
		Message:  fmt.Sprintf("no API key configured for %s (set %s or run: cec config:set %s apiKey <key>)", platform, EnvName(platform, "API_KEY"), platform),
		Platform: platform,
	}
}

// NotFound reports an unknown platform or command.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation reports arguments that failed their declared checks.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus reports an upstream error response. 429 and 5xx are retryable.
func HTTPStatus(code int, body any) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Message:    statusMessage(code, body),
		StatusCode: code,
		Body:       body,
		Retryable:  code == 429 || code >= 500,
	}
}

// Network reports a transport failure.
func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: cause.Error(), Retryable: true, cause: cause}
}

// Timeout reports a request that exceeded its deadline.
func Timeout(cause error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timed out", Retryable: true, cause: cause}
}

// Unknown wraps any other failure.
func Unknown(cause error) *Error {
	return &Error{Kind: KindUnknown, Message: cause.Error(), cause: cause}
}

// AsError returns err as an *Error, wrapping foreign errors as KindUnknown.
// A nil err returns nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Unknown(err)
}

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsRetryable reports whether err is an *Error marked retryable.
func IsRetryable(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Retryable
}

// EnvName builds the environment variable name for a platform setting,
// e.g. EnvName("smartlead", "API_KEY") == "SMARTLEAD_API_KEY".
func EnvName(platform, suffix string) string {
	return strings.ToUpper(strings.ReplaceAll(platform, "-", "_")) + "_" + suffix
}

func statusMessage(code int, body any) string {
	switch b := body.(type) {
	case map[string]any:
		for _, key := range []string{"message", "error", "detail", "error_message"} {
			if s, ok := b[key].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if s := strings.TrimSpace(b); s != "" && len(s) <= 200 {
			return s
		}
	}
	return httpStatusText(code)
}
