package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskbridge help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskbridge add [common flags] --project <id> [--block <id>] [--start <datetime>] [--end <datetime>] [--assignee <id>] [--timezone <iana>] <content...>
  taskbridge create            Alias for add
  taskbridge projects [common flags] [--space <id>]
  taskbridge spaces [common flags] [--page <n>]
  taskbridge blocks [common flags] --project <id>
  taskbridge members [common flags] --project <id>
  taskbridge hooks [common flags] subscribe --url <hook-url> [--trigger <type>] [--space <id>] [--project <id>]
  taskbridge hooks [common flags] unsubscribe --hook <id>
  taskbridge hooks [common flags] list [--space <id>] [--project <id>]
  taskbridge login [common flags]
  taskbridge logout [common flags]
  taskbridge help
  taskbridge version

Common flags:
  --config <dir>   Override config directory
  --graphql        Use the older GraphQL API revision
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
