// Package editor launches the user's preferred text editor on a file.
package editor

import (
	"io"
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"

	"github.com/thoreinstein/cec/internal/errors"
)

// Streams are the terminal the editor is attached to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Command builds the editor invocation for path. The editor is taken from
// $EDITOR, then $VISUAL, then nano, then vi. The variables may carry
// arguments, e.g. EDITOR="code --wait".
func Command(path string) (*exec.Cmd, error) {
	words, err := shellquote.Split(detectEditor())
	if err != nil {
		return nil, errors.Wrap(err, "parsing editor command")
	}
	if len(words) == 0 {
		return nil, errors.New("editor command is empty")
	}
	return exec.Command(words[0], append(words[1:], path)...), nil
}

// Open runs the editor on path and waits for it to exit.
func Open(path string, s Streams) error {
	cmd, err := Command(path)
	if err != nil {
		return err
	}
	cmd.Stdin = s.In
	cmd.Stdout = s.Out
	cmd.Stderr = s.Err

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Path)
	}
	return nil
}

func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
