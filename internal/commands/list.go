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
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	open bool
}

// SetOpenOnly limits output to open tasks (for testing).
func (c *ListCmd) SetOpenOnly(open bool) {
	c.open = open
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--open]" }
func (c *ListCmd) NeedsTasks() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Tracker, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks := svc.List()
	if c.open {
		tasks = openTasks(tasks)
	}

	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "No tasks found.")
		}
		return exitcode.Success
	}

	output.NewPrinter(out).Tasks(tasks)
	return exitcode.Success
}

func openTasks(tasks []service.Task) []service.Task {
	var open []service.Task
	for _, t := range tasks {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open
}
