package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/cec/internal/command"
	"github.com/thoreinstein/cec/internal/errors"
)

// ErrPickAborted is returned by a Picker when the user closes it.
var ErrPickAborted = errors.New("pick aborted")

// Progress is shown while a command runs.
type Progress interface {
	Start()
	Stop()
}

// Picker chooses one of cmds.
type Picker func(cmds []*command.Command) (*command.Command, error)

// NewSpinner returns a spinner writing to w.
func NewSpinner(w io.Writer) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " running..."
	return s
}

// FuzzyPick lets the user choose a command with a fuzzy finder that
// previews its description and fields.
func FuzzyPick(cmds []*command.Command) (*command.Command, error) {
	idx, err := fuzzyfinder.Find(
		cmds,
		func(i int) string {
			return fmt.Sprintf("%s: %s", cmds[i].Category, cmds[i].Name)
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return describe(cmds[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrPickAborted
		}
		return nil, errors.Wrap(err, "fuzzy finder failed")
	}
	return cmds[idx], nil
}

// describe renders a command's help text.
func describe(c *command.Command) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s %s)\n", c.Name, c.Method, c.Category)
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n", c.Description)
	}
	if c.Destructive {
		b.WriteString("destructive: asks for confirmation\n")
	}
	if len(c.Fields) == 0 {
		b.WriteString("no arguments\n")
		return b.String()
	}
	b.WriteString("\nArguments:\n")
	for _, f := range c.Fields {
		req := ""
		if f.Required {
			req = " (required)"
		}
		fmt.Fprintf(&b, "  %-20s %-8s%s", f.Name, f.Type, req)
		if f.Description != "" {
			fmt.Fprintf(&b, "  %s", f.Description)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
