package commands_test

import (
	"bytes"
	"context"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbridge/internal/apperr"
	"taskbridge/internal/commands"
	"taskbridge/internal/config"
	"taskbridge/internal/exitcode"
	"taskbridge/internal/service"
	"taskbridge/internal/testutil"
)

// runCommand parses args through the command's own flag registration and
// runs it against a FakeService, the way dispatch does.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{
		Dir:   t.TempDir(),
		Quiet: quiet,
	}

	code = cmd.Run(context.Background(), cfg, svc, fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "taskbridge "+commands.Version+"\n", stdout)
}

func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "add")
	assert.Contains(t, stdout, "hooks")
}

func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService("task-1")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1", "Buy", "milk"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "taskId: task-1\n")
	assert.Contains(t, stdout, "dateAttached: false\n")
	assert.Contains(t, stdout, "assigneeAttached: false\n")
	assert.Equal(t, []string{"InsertTask"}, svc.Calls())
	assert.Equal(t, "Buy milk", svc.LastContent)
}

func TestAddCommand_Quiet(t *testing.T) {
	svc := testutil.NewFakeService("task-1")

	stdout, _, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1", "Buy milk"}, true)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "task-1\n", stdout)
}

func TestAddCommand_FullWorkflow(t *testing.T) {
	svc := testutil.NewFakeService("task-1")

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{
		"--project", "P1",
		"--block", "B1",
		"--start", "2024-01-01",
		"--end", "2024-01-03T17:00:00",
		"--assignee", "member-42",
		"--timezone", "America/New_York",
		"Quarterly report",
	}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "dateAttached: true\n")
	assert.Contains(t, stdout, "assigneeAttached: true\n")
	assert.Equal(t, []string{"InsertTask", "AttachDate", "AttachAssignees"}, svc.Calls())
	assert.Equal(t, "B1", svc.LastBlockID)
	assert.Equal(t, []string{"member-42"}, svc.LastHandles)
	assert.Equal(t, "2024-01-01", svc.LastDate.Start.Date)
	assert.Equal(t, "America/New_York", svc.LastDate.Start.Timezone)
}

func TestAddCommand_MissingProject(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService("task-1"),
		[]string{"Buy milk"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "project required")
}

func TestAddCommand_MissingContent(t *testing.T) {
	svc := testutil.NewFakeService("task-1")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "content required")
	assert.Empty(t, svc.Calls())
}

func TestAddCommand_BadStartDate(t *testing.T) {
	svc := testutil.NewFakeService("task-1")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1", "--start", "next tuesday", "Buy milk"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "invalid start date: next tuesday")
	assert.Empty(t, svc.Calls())
}

func TestAddCommand_PartialFailureReportsTaskID(t *testing.T) {
	svc := testutil.NewFakeService("task-1")
	svc.AttachDateErr = apperr.Validation("date rejected")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1", "--start", "2024-01-01", "Buy milk"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "task created: task-1\n")
	assert.Contains(t, stderr, "date rejected")
}

func TestAddCommand_InsertFailure(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.InsertTaskErr = apperr.Validation("project is read-only")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc,
		[]string{"--project", "P1", "Buy milk"}, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.NotContains(t, stderr, "task created")
	assert.Contains(t, stderr, "project is read-only")
}

func TestProjectsCommand(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.Projects = []service.Project{
		{ID: "p1", Title: "Inbox"},
		{ID: "p2", Title: ""},
	}

	stdout, stderr, code := runCommand(t, &commands.ProjectsCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Empty(t, stderr)
	assert.Equal(t, "p1  Inbox\np2  (untitled)\n", stdout)
}

func TestProjectsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.ListProjectsErr = &apperr.TransportError{StatusCode: 502}

	_, stderr, code := runCommand(t, &commands.ProjectsCmd{}, svc, nil, false)

	assert.Equal(t, exitcode.BackendError, code)
	assert.Contains(t, stderr, "backend error")
}

func TestSpacesCommand(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.Spaces = []service.Space{
		{ID: "w1", Name: "Acme"},
		{ID: "f1", Name: "Acme > Eng"},
	}

	stdout, _, code := runCommand(t, &commands.SpacesCmd{}, svc, []string{"--page", "0"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "w1  Acme\nf1  Acme > Eng\n", stdout)
}

func TestBlocksCommand(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.Blocks = []service.Block{{ID: "b1", Title: "Backlog"}}

	stdout, _, code := runCommand(t, &commands.BlocksCmd{}, svc, []string{"-p", "P1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "b1  Backlog\n", stdout)
}

func TestBlocksCommand_MissingProject(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.BlocksCmd{}, testutil.NewFakeService(""), nil, false)

	assert.Equal(t, exitcode.UserError, code)
	assert.Contains(t, stderr, "project required")
}

func TestMembersCommand(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.Members = []service.Member{
		{ID: "u1", DisplayName: "Alice"},
		{ID: "u2", DisplayName: "bob"},
	}

	stdout, _, code := runCommand(t, &commands.MembersCmd{}, svc, []string{"--project", "P1"}, false)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "u1  Alice\nu2  bob\n", stdout)
}

func TestMembersCommand_AuthError(t *testing.T) {
	svc := testutil.NewFakeService("")
	svc.ListMembersErr = &apperr.AuthError{Op: "refresh"}

	_, stderr, code := runCommand(t, &commands.MembersCmd{}, svc, []string{"--project", "P1"}, false)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, stderr, "auth error")
}

func TestRegistry_FindByAlias(t *testing.T) {
	cmd, ok := commands.DefaultRegistry.Find("create")
	require.True(t, ok)
	assert.Equal(t, "add", cmd.Name())
}

func TestRegistry_UnknownCommand(t *testing.T) {
	_, ok := commands.DefaultRegistry.Find("frobnicate")
	assert.False(t, ok)
}
