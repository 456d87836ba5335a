// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

// Sentinel errors for platform selection.
var (
	ErrNoPlatforms        = errors.New("no platforms to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector prints numbered menus and reads the answer.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer. A
// *bufio.Reader is used as is, so the caller can keep reading the same
// stream afterwards without losing buffered input.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Selector{reader: br, writer: w}
}

// SelectPlatform prompts the user to choose one of descs.
//
// Returns:
//   - ErrNoPlatforms if the list is empty
//   - The first descriptor on empty input
//   - ErrInvalidSelection if the answer is not a number in range
//   - ErrSelectionCancelled on EOF (e.g., Ctrl+D)
func (s *Selector) SelectPlatform(descs []platform.Descriptor) (platform.Descriptor, error) {
	if len(descs) == 0 {
		return platform.Descriptor{}, ErrNoPlatforms
	}

	fmt.Fprintln(s.writer, "Select a platform:")
	for i, d := range descs {
		fmt.Fprintf(s.writer, "  [%d] %-12s %d commands in %d categories\n",
			i+1, d.DisplayName, d.CommandCount, d.CategoryCount)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.writer)
			return platform.Descriptor{}, ErrSelectionCancelled
		}
		return platform.Descriptor{}, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return descs[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		for _, d := range descs {
			if strings.EqualFold(input, d.Key) {
				return d, nil
			}
		}
		return platform.Descriptor{}, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(descs) {
		return platform.Descriptor{}, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(descs))
	}

	return descs[selection-1], nil
}
