package commands

import (
	"context"
	"flag"
	"io"

	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/output"
	"taskbridge/internal/service"
)

func init() {
	Register(&SpacesCmd{})
}

// SpacesCmd implements the spaces command.
type SpacesCmd struct {
	page int
}

func (c *SpacesCmd) Name() string      { return "spaces" }
func (c *SpacesCmd) Aliases() []string { return nil }
func (c *SpacesCmd) Synopsis() string  { return "List workspaces and folders" }
func (c *SpacesCmd) Usage() string     { return "taskbridge spaces [--page <n>]" }
func (c *SpacesCmd) NeedsAuth() bool   { return true }

func (c *SpacesCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.page, "page", 0, "")
}

func (c *SpacesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	spaces, err := svc.ListSpaces(ctx, c.page)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, space := range spaces {
		output.FormatRow(out, space.ID, space.Name)
	}
	return exitcode.Success
}
