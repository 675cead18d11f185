// Package main is the entry point for the timeto CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/thoreinstein/timeto/cmd/timeto/commands"
	"github.com/thoreinstein/timeto/internal/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := commands.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	code := errors.ExitUser
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.Code
		if exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
	}
	os.Exit(code)
}
