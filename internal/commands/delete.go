package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "todo delete <id>" }
func (c *DeleteCmd) NeedsTasks() bool  { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Tracker, args []string, out, errOut io.Writer) int {
	id, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.Delete(id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.Deleted(out, task)
	}
	return exitcode.Success
}
