package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/output"
	"taskbridge/internal/service"
)

func init() {
	Register(&BlocksCmd{})
}

// BlocksCmd implements the blocks command.
type BlocksCmd struct {
	projectID string
}

func (c *BlocksCmd) Name() string      { return "blocks" }
func (c *BlocksCmd) Aliases() []string { return nil }
func (c *BlocksCmd) Synopsis() string  { return "List blocks in a project" }
func (c *BlocksCmd) Usage() string     { return "taskbridge blocks --project <id>" }
func (c *BlocksCmd) NeedsAuth() bool   { return true }

func (c *BlocksCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.projectID, "p", "", "")
}

func (c *BlocksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.projectID == "" {
		fmt.Fprintln(errOut, "error: project required")
		return exitcode.UserError
	}

	blocks, err := svc.ListBlocks(ctx, c.projectID)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, block := range blocks {
		output.FormatRow(out, block.ID, block.Title)
	}
	return exitcode.Success
}
