package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbridge/internal/apperr"
	"taskbridge/internal/backend/rest"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *rest.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return rest.New(remote.New(server.URL, nil, nil))
}

func TestInsertTask_BuildsCreateBody(t *testing.T) {
	var gotBody map[string]any
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/projects/P1/tasks", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"item":[{"id":"task-9"}]}`))
	})

	taskID, err := backend.InsertTask(context.Background(), "P1", "", "Buy milk")
	require.NoError(t, err)
	assert.Equal(t, "task-9", taskID)

	tasks := gotBody["tasks"].([]any)
	require.Len(t, tasks, 1)
	first := tasks[0].(map[string]any)
	assert.Equal(t, "Buy milk", first["content"])
	assert.Equal(t, rest.ContentType, first["contentType"])
	assert.Equal(t, rest.Placement, first["placement"])
	assert.NotContains(t, first, "taskId")
}

func TestInsertTask_AnchorsAfterBlock(t *testing.T) {
	var gotBody map[string]any
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"item":[{"id":"task-9"}]}`))
	})

	_, err := backend.InsertTask(context.Background(), "P1", "block-3", "Buy milk")
	require.NoError(t, err)

	first := gotBody["tasks"].([]any)[0].(map[string]any)
	assert.Equal(t, "block-3", first["taskId"])
}

func TestInsertTask_RemoteRejection(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false,"message":"read only"}`))
	})

	_, err := backend.InsertTask(context.Background(), "P1", "", "Buy milk")
	var valErr *apperr.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "read only", valErr.Message)
}

func TestInsertTask_EmptyItemYieldsNoID(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"item":[]}`))
	})

	taskID, err := backend.InsertTask(context.Background(), "P1", "", "Buy milk")
	require.NoError(t, err)
	assert.Empty(t, taskID)
}

func TestAttachDate_PutsDateRange(t *testing.T) {
	var gotBody service.DateRange
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/projects/P1/tasks/task-9/date", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"item":{"id":"task-9"}}`))
	})

	date := service.DateRange{Start: service.DateBound{Date: "2024-01-01", Time: "10:00:00", Timezone: "Etc/UTC"}}
	require.NoError(t, backend.AttachDate(context.Background(), "P1", "task-9", date))
	assert.Equal(t, date, gotBody)
}

func TestAttachAssignees_PutsHandles(t *testing.T) {
	var gotBody map[string][]string
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/v1/projects/P1/tasks/task-9/assignees", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"ok":true,"item":{"id":"task-9"}}`))
	})

	require.NoError(t, backend.AttachAssignees(context.Background(), "P1", "task-9", []string{"member-42"}))
	assert.Equal(t, []string{"member-42"}, gotBody["handles"])
}

func TestListProjects_AccountWide(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/me/projects", r.URL.Path)
		w.Write([]byte(`{"ok":true,"items":[{"id":"p1","name":"Inbox"},{"id":"p2","name":"Plans"}]}`))
	})

	projects, err := backend.ListProjects(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []service.Project{
		{ID: "p1", Title: "Inbox"},
		{ID: "p2", Title: "Plans"},
	}, projects)
}

func TestListProjects_WithinFolder(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/folders/f1/projects", r.URL.Path)
		w.Write([]byte(`{"ok":true,"items":[{"id":"p3","name":"Roadmap"}]}`))
	})

	projects, err := backend.ListProjects(context.Background(), "f1")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p3", projects[0].ID)
}

func TestListSpaces_ExpandsFoldersPerPage(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/workspaces":
			w.Write([]byte(`{"ok":true,"items":[{"id":"w1","name":"Acme"},{"id":"w2","name":"Side"}]}`))
		case "/api/v1/workspaces/w1/folders":
			w.Write([]byte(`{"ok":true,"items":[{"id":"f1","name":"Eng"},{"id":"f2","name":"Ops"}]}`))
		case "/api/v1/workspaces/w2/folders":
			w.Write([]byte(`{"ok":true,"items":[{"id":"f3","name":"Home"}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	spaces, err := backend.ListSpaces(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []service.Space{
		{ID: "f1", Name: "Acme > Eng"},
		{ID: "f2", Name: "Acme > Ops"},
		{ID: "f3", Name: "Side > Home"},
	}, spaces)
}

func TestListSpaces_PageOutOfRange(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"items":[{"id":"w1","name":"Acme"}]}`))
	})

	spaces, err := backend.ListSpaces(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, spaces)
}

func TestListBlocks(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/projects/P1/blocks", r.URL.Path)
		w.Write([]byte(`{"ok":true,"items":[{"id":"b1","text":"Backlog"}]}`))
	})

	blocks, err := backend.ListBlocks(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, []service.Block{{ID: "b1", Title: "Backlog"}}, blocks)
}

func TestListMembers_UsesMentionablesQuery(t *testing.T) {
	backend := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, remote.GraphQLPath, r.URL.Path)
		var body remote.GraphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ProjectMentionablesQuery", body.OperationName)
		w.Write([]byte(`{"data":{"document":{"id":"P1",
			"members":{"edges":[{"node":{"id":"m1","user":{"id":"u2","handle":"bob","display_name":""}}}]},
			"space":{"id":"s1","memberships":[{"id":"ms1","user":{"id":"u1","handle":"alice","display_name":"Alice"}}]}}}}`))
	})

	members, err := backend.ListMembers(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, []service.Member{
		{ID: "u1", DisplayName: "Alice"},
		{ID: "u2", DisplayName: "bob"},
	}, members)
}
