package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/thoreinstein/cec/internal/errors"
)

// Confirmer asks a yes/no question. Declining returns false with a nil
// error; an interrupt or closed input returns ErrSelectionCancelled.
type Confirmer func(message string) (bool, error)

// SurveyConfirm asks on the terminal with a survey Confirm prompt.
// The default answer is no.
func SurveyConfirm(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return false, ErrSelectionCancelled
	}
	if err != nil {
		return false, errors.Wrap(err, "asking for confirmation")
	}
	return ok, nil
}

// LineConfirm returns a Confirmer for non-terminal input: it prints
// "message [y/N]: " to w and reads one line from r.
func LineConfirm(r *bufio.Reader, w io.Writer) Confirmer {
	return func(message string) (bool, error) {
		fmt.Fprintf(w, "%s [y/N]: ", message)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if errors.Is(err, io.EOF) {
				return false, ErrSelectionCancelled
			}
			return false, errors.Wrap(err, "reading confirmation")
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}
