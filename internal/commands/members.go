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
	Register(&MembersCmd{})
}

// MembersCmd implements the members command.
type MembersCmd struct {
	projectID string
}

func (c *MembersCmd) Name() string      { return "members" }
func (c *MembersCmd) Aliases() []string { return nil }
func (c *MembersCmd) Synopsis() string  { return "List assignable members in a project" }
func (c *MembersCmd) Usage() string     { return "taskbridge members --project <id>" }
func (c *MembersCmd) NeedsAuth() bool   { return true }

func (c *MembersCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.projectID, "p", "", "")
}

func (c *MembersCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.projectID == "" {
		fmt.Fprintln(errOut, "error: project required")
		return exitcode.UserError
	}

	members, err := svc.ListMembers(ctx, c.projectID)
	if err != nil {
		return reportError(errOut, err)
	}

	for _, member := range members {
		output.FormatRow(out, member.ID, member.DisplayName)
	}
	return exitcode.Success
}
