// Package errors provides error handling conventions for the cec CLI.
//
// It re-exports the construction and inspection helpers of
// github.com/cockroachdb/errors, defines the process exit codes, and an
// ExitError type that pairs an error with an exit code and a suggestion.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): Unknown platform/command, invalid arguments, missing credentials
//   - ExitSystem (2): Network, timeout, upstream HTTP failure, I/O
//
// # ExitError
//
//	err := cecerrors.NewUserError(cause, "Run: cec platforms")
//	var exitErr *cecerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
