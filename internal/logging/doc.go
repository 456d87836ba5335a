// Package logging configures log/slog for the cec CLI.
//
// Text output goes through [Handler], which colorizes on a terminal and
// masks values that look like credentials. JSON output uses the standard
// library handler. A second JSON destination (the --log-file flag) is fed
// through [MultiHandler].
//
// Verbosity maps onto levels with [LevelFromVerbosity]: no flag logs
// warnings, -v info, -vv debug and -vvv [LevelTrace]. CEC_DEBUG=1 raises
// the level to at least debug and -q drops everything below errors.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.ResolveLevel(verbosity, quiet, os.LookupEnv),
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//
// For tests, [ForTest] routes records to t.Log.
package logging
