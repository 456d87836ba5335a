package commands

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"

	"github.com/thoreinstein/cec/internal/api"
	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/logging"
)

// toExitError maps err to the exit code and suggestion shown to the user.
// Operator mistakes exit 1, upstream and transport failures exit 2.
func toExitError(err error) *errors.ExitError {
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		if errors.Is(err, errors.ErrCancelled) {
			return errors.NewUserError(err, "")
		}
		return errors.NewUserError(err, "Run: cec --help")
	}

	switch apiErr.Kind {
	case api.KindNotConfigured:
		return errors.NewUserError(err, fmt.Sprintf("Run: cec config:set %s apiKey <key>", platformOr(apiErr.Platform)))
	case api.KindNotFound:
		if apiErr.Platform != "" {
			return errors.NewUserError(err, "Run: cec commands "+apiErr.Platform)
		}
		return errors.NewUserError(err, "Run: cec platforms")
	case api.KindValidation:
		if apiErr.Platform != "" && apiErr.Command != "" {
			return errors.NewUserError(err, fmt.Sprintf("Run: cec commands %s to see the fields of %s", apiErr.Platform, apiErr.Command))
		}
		return errors.NewUserError(err, "")
	case api.KindNetwork:
		return errors.NewSystemError(err, "Check your network connection and the base URL")
	case api.KindTimeout:
		return errors.NewSystemError(err, "The platform did not answer in time; try again later")
	case api.KindHTTPStatus:
		if apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
			return errors.NewSystemError(err, fmt.Sprintf("Check the API key: cec config:set %s apiKey <key>", platformOr(apiErr.Platform)))
		}
		return errors.NewSystemError(err, "")
	default:
		return errors.NewSystemError(err, "")
	}
}

func platformOr(key string) string {
	if key == "" {
		return "<platform>"
	}
	return key
}

// printError writes the error and its suggestion to w.
func printError(w io.Writer, exitErr *errors.ExitError) {
	label := color.New(color.FgRed, color.Bold)
	hint := color.New(color.FgYellow)
	if !logging.SupportsColor(w) {
		label.DisableColor()
		hint.DisableColor()
	}

	fmt.Fprintf(w, "%s %s\n", label.Sprint("Error:"), exitErr.Error())
	if exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s\n", hint.Sprint(exitErr.Suggestion))
	}
}
