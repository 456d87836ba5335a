package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

type fder interface{ Fd() uintptr }

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(fder); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// IsInteractive reports whether both r and w are terminals. The shell uses
// it to decide on spinners, prompts and the fuzzy finder.
func IsInteractive(r io.Reader, w io.Writer) bool {
	f, ok := r.(fder)
	return ok && term.IsTerminal(int(f.Fd())) && IsTTY(w)
}

// SupportsColor reports whether ANSI colors should be written to w.
// NO_COLOR and TERM=dumb disable color; otherwise w must be a terminal.
func SupportsColor(w io.Writer) bool {
	return supportsColor(IsTTY(w))
}

func supportsColor(isTTY bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isTTY
}
