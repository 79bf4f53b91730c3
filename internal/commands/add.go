package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/output"
	"taskbridge/internal/service"
	"taskbridge/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// instantLayouts are the accepted spellings for --start and --end values,
// tried in order. Values without an offset are read in the --timezone zone.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// AddCmd implements the add command: the create-task workflow.
type AddCmd struct {
	projectID  string
	blockID    string
	startDate  string
	endDate    string
	assigneeID string
	timezone   string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskbridge add --project <id> [--block <id>] [--start <datetime>] [--end <datetime>] [--assignee <id>] [--timezone <iana>] <content...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.projectID, "project", "", "")
	fs.StringVar(&c.projectID, "p", "", "")
	fs.StringVar(&c.blockID, "block", "", "")
	fs.StringVar(&c.startDate, "start", "", "")
	fs.StringVar(&c.endDate, "end", "", "")
	fs.StringVar(&c.assigneeID, "assignee", "", "")
	fs.StringVar(&c.timezone, "timezone", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.projectID == "" {
		fmt.Fprintln(errOut, "error: project required")
		return exitcode.UserError
	}

	content := strings.Join(args, " ")
	if strings.TrimSpace(content) == "" {
		fmt.Fprintln(errOut, "error: content required")
		return exitcode.UserError
	}

	loc, _ := task.Zone(c.timezone)

	start, err := parseInstant(c.startDate, loc)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid start date: %s\n", c.startDate)
		return exitcode.UserError
	}
	end, err := parseInstant(c.endDate, loc)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid end date: %s\n", c.endDate)
		return exitcode.UserError
	}

	creator := task.NewCreator(svc)
	outcome, err := creator.Create(ctx, task.CreateRequest{
		ProjectID:  c.projectID,
		BlockID:    c.blockID,
		Content:    content,
		StartDate:  start,
		EndDate:    end,
		AssigneeID: c.assigneeID,
		Timezone:   c.timezone,
	})
	if err != nil {
		// A follow-up step may have failed after the task was created;
		// surface how far the run got before the error.
		if outcome.TaskID != "" {
			fmt.Fprintf(errOut, "task created: %s\n", outcome.TaskID)
		}
		return reportError(errOut, err)
	}

	if cfg.Quiet {
		fmt.Fprintln(out, outcome.TaskID)
	} else {
		output.FormatOutcome(out, outcome)
	}
	return exitcode.Success
}

// parseInstant parses a datetime flag value in the given zone.
// Empty input yields nil.
func parseInstant(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized datetime: %s", value)
}
