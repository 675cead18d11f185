// Package errors provides error handling conventions for the timeto CLI.
//
// The package re-exports the wrapping helpers of
// github.com/cockroachdb/errors so every package wraps errors the same way,
// and defines an ExitError type for CLI exit code handling.
//
// # Wrapping
//
//	if err := provider.Delete(ctx, id); err != nil {
//	    return errors.Wrapf(err, "deleting %s", id)
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, cancelled prompt)
//   - ExitSystem (2): System-related error (I/O, storage, permissions)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports [errors.Is] and [errors.As]:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
