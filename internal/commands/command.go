// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsTasks returns true if the command reads or writes the task file.
	// Commands like help and version return false.
	NeedsTasks() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, task file path).
	// svc is nil if NeedsTasks() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Tracker, args []string, out, errOut io.Writer) int
}

// reportError prints err and maps it to an exit code: rejected input is a
// user error, anything else came from saving the task file.
func reportError(errOut io.Writer, err error) int {
	if errors.Is(err, service.ErrValidation) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}
