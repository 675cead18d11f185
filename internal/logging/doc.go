// Package logging provides structured logging for the timeto CLI using slog.
//
// Text output goes through a TTY-aware [Handler] that colorizes levels and
// shortens paths under the user's home directory to "~". JSON output uses
// the standard library handler. [MultiHandler] fans records out to several
// handlers, which is how --log-file works.
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//	})
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Info("backup written", "name", name)
//
// Tests use [ForTest] so output lands in t.Log.
package logging
