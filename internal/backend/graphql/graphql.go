// Package graphql implements the service.Service interface against the older
// GraphQL revision of the task API (/graphql).
package graphql

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"taskbridge/internal/apperr"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
)

// Placement fixes insertion at the bottom of the target container,
// the GraphQL spelling of end-of-container.
const Placement = "BOTTOM"

// contentType is the node payload type the import mutation expects.
const contentType = "application/vnd.taskade.taskast"

// Client implements service.Service against the GraphQL API revision.
type Client struct {
	api *remote.Client
}

// New creates a GraphQL backend on top of an authenticated remote client.
func New(api *remote.Client) *Client {
	return &Client{api: api}
}

const importMutation = `
mutation ProjectNodesImportMutation($input: ProjectNodesImportInput!) {
  projectNodesImport(input: $input) {
    clientMutationId
    nodeID
    document {
      id
      info
    }
  }
}`

// InsertTask implements service.Service. The task body is wrapped in the
// single-checkbox node fragment the import mutation expects.
func (c *Client) InsertTask(ctx context.Context, projectID, blockID, content string) (string, error) {
	var nodeID any
	if blockID != "" {
		nodeID = blockID
	}

	input := map[string]any{
		"clientMutationId": uuid.NewString(),
		"documentID":       projectID,
		"nodeID":           nodeID,
		"placement":        Placement,
		"type":             contentType,
		"content": map[string]any{
			"type": "fragment",
			"children": []any{
				map[string]any{
					"type": "text",
					"text": map[string]any{
						"ops": []any{
							map[string]any{"insert": content},
							map[string]any{"insert": "\n", "attributes": map[string]any{"paragraph": true}},
						},
					},
					"children": []any{},
					"format":   map[string]any{"node": "checkbox"},
				},
			},
		},
	}

	result, err := c.api.GraphQL(ctx, "ProjectNodesImportMutation", importMutation, map[string]any{"input": input})
	if err != nil {
		return "", err
	}
	if !result.OK {
		return "", apperr.Validation(result.Message)
	}

	var payload struct {
		ProjectNodesImport struct {
			NodeID string `json:"nodeID"`
		} `json:"projectNodesImport"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return "", fmt.Errorf("malformed import response: %w", err)
	}
	return payload.ProjectNodesImport.NodeID, nil
}

const dueDateMutation = `
mutation ProjectNodesDueDateUpdateMutation($input: ProjectNodesDueDateUpdateInput!) {
  projectNodesDueDateUpdate(input: $input) {
    clientMutationId
    ok
  }
}`

// AttachDate implements service.Service.
func (c *Client) AttachDate(ctx context.Context, projectID, taskID string, date service.DateRange) error {
	input := map[string]any{
		"clientMutationId": uuid.NewString(),
		"dateAttachment":   date,
		"nodeIds":          []string{taskID},
		"projectId":        projectID,
	}

	result, err := c.api.GraphQL(ctx, "ProjectNodesDueDateUpdateMutation", dueDateMutation, map[string]any{"input": input})
	if err != nil {
		return err
	}
	if !result.OK {
		return apperr.Validation(result.Message)
	}

	var payload struct {
		ProjectNodesDueDateUpdate struct {
			OK bool `json:"ok"`
		} `json:"projectNodesDueDateUpdate"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return fmt.Errorf("malformed due date response: %w", err)
	}
	if !payload.ProjectNodesDueDateUpdate.OK {
		return apperr.Validation("")
	}
	return nil
}

const assignmentMutation = `
mutation ProjectNodesAssignmentUpdateMutation($input: ProjectNodesAssignmentUpdateInput!) {
  projectNodesAssignmentUpdate(input: $input) {
    clientMutationId
    ok
  }
}`

// AttachAssignees implements service.Service.
func (c *Client) AttachAssignees(ctx context.Context, projectID, taskID string, handles []string) error {
	input := map[string]any{
		"clientMutationId": uuid.NewString(),
		"handles":          handles,
		"nodeIds":          []string{taskID},
		"projectId":        projectID,
	}

	result, err := c.api.GraphQL(ctx, "ProjectNodesAssignmentUpdateMutation", assignmentMutation, map[string]any{"input": input})
	if err != nil {
		return err
	}
	if !result.OK {
		return apperr.Validation(result.Message)
	}

	var payload struct {
		ProjectNodesAssignmentUpdate struct {
			OK bool `json:"ok"`
		} `json:"projectNodesAssignmentUpdate"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return fmt.Errorf("malformed assignment response: %w", err)
	}
	if !payload.ProjectNodesAssignmentUpdate.OK {
		return apperr.Validation("")
	}
	return nil
}
