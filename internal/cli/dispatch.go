// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
	"todo/internal/service"
	"todo/internal/store"
)

// ServiceFactory creates the task service from config.
// Used to inject the store during dispatch.
type ServiceFactory func(cfg *config.Config, logger *log.Logger) (service.Tracker, error)

// FileServiceFactory builds a Service over the JSON task file at cfg.DataFile.
func FileServiceFactory(cfg *config.Config, logger *log.Logger) (service.Tracker, error) {
	st := store.New(cfg.DataFile, store.WithLogger(logger))
	return service.New(st, service.WithLogger(logger)), nil
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
// A nil factory means FileServiceFactory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	if factory == nil {
		factory = FileServiceFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		return d.dispatch(ctx, "list", nil, out, errOut)
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var (
		configDir string
		dataFile  string
		lock      bool
		quiet     bool
		debug     bool
	)
	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&dataFile, "file", "", "")
	fs.BoolVar(&lock, "lock", false, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed
	// as flag), unless "--" ended the flags
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") && !afterTerminator(args, positionalArgs) {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	if dataFile != "" {
		cfg.DataFile = dataFile
	}
	cfg.Lock = cfg.Lock || lock
	cfg.Quiet = quiet
	cfg.Debug = debug

	logger := logging.New(errOut, cfg.Debug)
	logger.Debug("resolved config", "dir", cfg.Dir, "file", cfg.DataFile, "lock", cfg.Lock)

	var svc service.Tracker
	if cmd.NeedsTasks() {
		if cfg.Lock {
			lk, err := store.AcquireLock(cfg.DataFile)
			if err != nil {
				if errors.Is(err, store.ErrLocked) {
					fmt.Fprintf(errOut, "error: %s: %s\n", err, cfg.DataFile)
				} else {
					fmt.Fprintf(errOut, "error: %s\n", err)
				}
				return exitcode.ConfigError
			}
			defer func() {
				if err := lk.Unlock(); err != nil {
					logger.Warn("release lock", "path", lk.Path(), "err", err)
				}
			}()
		}

		svc, err = d.factory(cfg, logger)
		if err != nil {
			fmt.Fprintf(errOut, "error: %s\n", err)
			return exitcode.StorageError
		}
	}

	return cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)
}

// afterTerminator reports whether rest was preceded by a "--" that the flag
// set consumed as its terminator.
func afterTerminator(args, rest []string) bool {
	i := len(args) - len(rest) - 1
	return i >= 0 && args[i] == "--"
}

// flagErrorMessage rewrites flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	// Missing flag value
	if strings.HasPrefix(errStr, "flag needs an argument:") {
		return errStr
	}

	// Unknown flag
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		return "unknown flag: " + strings.TrimPrefix(errStr, "flag provided but not defined: ")
	}

	return errStr
}
