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
	Register(&ProjectsCmd{})
}

// ProjectsCmd implements the projects command.
type ProjectsCmd struct {
	spaceID string
}

func (c *ProjectsCmd) Name() string      { return "projects" }
func (c *ProjectsCmd) Aliases() []string { return nil }
func (c *ProjectsCmd) Synopsis() string  { return "List projects" }
func (c *ProjectsCmd) Usage() string     { return "taskbridge projects [--space <id>]" }
func (c *ProjectsCmd) NeedsAuth() bool   { return true }

func (c *ProjectsCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.spaceID, "space", "", "")
	fs.StringVar(&c.spaceID, "s", "", "")
}

func (c *ProjectsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	projects, err := svc.ListProjects(ctx, c.spaceID)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, project := range projects {
		output.FormatRow(out, project.ID, project.Title)
	}
	return exitcode.Success
}
