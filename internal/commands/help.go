package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help [command]" }
func (c *HelpCmd) NeedsTasks() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Tracker, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		writeOverview(out, DefaultRegistry)
		return exitcode.Success
	}

	cmd, ok := DefaultRegistry.Find(args[0])
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", args[0])
		return exitcode.UserError
	}
	fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
	if aliases := cmd.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))
	}
	return exitcode.Success
}

// writeOverview prints one line per registered command followed by the
// common flags.
func writeOverview(out io.Writer, r *Registry) {
	fmt.Fprint(out, "Usage:\n")
	fmt.Fprintf(out, "  %-28s %s\n", "todo", "List all tasks")
	for _, cmd := range r.All() {
		line := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			line += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-28s %s\n", cmd.Usage(), line)
	}
	fmt.Fprint(out, commonFlags)
}

const commonFlags = `
Common flags:
  --file <path>    Task file (default: ./todos.json, env: TODO_FILE)
  --config <dir>   Override config directory
  --lock           Hold an advisory lock on the task file while running
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
