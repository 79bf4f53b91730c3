// Package rest implements the service.Service interface against the newer
// REST revision of the task API (/api/v1).
package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"taskbridge/internal/apperr"
	"taskbridge/internal/backend/graphql"
	"taskbridge/internal/remote"
	"taskbridge/internal/service"
)

const (
	// ContentType is the markdown content type the task API accepts.
	ContentType = "text/markdown"

	// Placement fixes insertion at the end of the target container.
	Placement = "beforeend"

	// SpacesPerPage is how many workspaces are expanded per spaces page.
	SpacesPerPage = 5
)

// Client implements service.Service against the REST API revision.
type Client struct {
	api *remote.Client
}

// New creates a REST backend on top of an authenticated remote client.
func New(api *remote.Client) *Client {
	return &Client{api: api}
}

type taskInput struct {
	TaskID      string `json:"taskId,omitempty"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	Placement   string `json:"placement"`
}

// InsertTask implements service.Service.
func (c *Client) InsertTask(ctx context.Context, projectID, blockID, content string) (string, error) {
	body := map[string]any{
		"tasks": []taskInput{{
			TaskID:      blockID,
			ContentType: ContentType,
			Content:     content,
			Placement:   Placement,
		}},
	}

	result, err := c.api.REST(ctx, http.MethodPost, projectPath(projectID, "tasks"), body)
	if err != nil {
		return "", err
	}
	if !result.OK {
		return "", apperr.Validation(result.Message)
	}

	var payload struct {
		Item []struct {
			ID string `json:"id"`
		} `json:"item"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return "", fmt.Errorf("malformed create response: %w", err)
	}
	if len(payload.Item) == 0 {
		return "", nil
	}
	return payload.Item[0].ID, nil
}

// AttachDate implements service.Service.
func (c *Client) AttachDate(ctx context.Context, projectID, taskID string, date service.DateRange) error {
	result, err := c.api.REST(ctx, http.MethodPut, projectPath(projectID, "tasks", taskID, "date"), date)
	if err != nil {
		return err
	}
	if !result.OK {
		return apperr.Validation(result.Message)
	}
	return nil
}

// AttachAssignees implements service.Service.
func (c *Client) AttachAssignees(ctx context.Context, projectID, taskID string, handles []string) error {
	body := map[string]any{"handles": handles}
	result, err := c.api.REST(ctx, http.MethodPut, projectPath(projectID, "tasks", taskID, "assignees"), body)
	if err != nil {
		return err
	}
	if !result.OK {
		return apperr.Validation(result.Message)
	}
	return nil
}

// ListProjects implements service.Service.
func (c *Client) ListProjects(ctx context.Context, spaceID string) ([]service.Project, error) {
	path := "/api/v1/me/projects"
	if spaceID != "" {
		path = "/api/v1/folders/" + url.PathEscape(spaceID) + "/projects"
	}

	result, err := c.api.REST(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed projects response: %w", err)
	}

	projects := make([]service.Project, 0, len(payload.Items))
	for _, item := range payload.Items {
		projects = append(projects, service.Project{ID: item.ID, Title: item.Name})
	}
	return projects, nil
}

// ListSpaces implements service.Service. Workspaces are expanded five per
// page; each listed entry is a folder labelled "workspace > folder".
func (c *Client) ListSpaces(ctx context.Context, page int) ([]service.Space, error) {
	result, err := c.api.REST(ctx, http.MethodGet, "/api/v1/workspaces", nil)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed workspaces response: %w", err)
	}

	start := page * SpacesPerPage
	if start >= len(payload.Items) {
		return nil, nil
	}
	end := start + SpacesPerPage
	if end > len(payload.Items) {
		end = len(payload.Items)
	}

	var spaces []service.Space
	for _, workspace := range payload.Items[start:end] {
		folders, err := c.api.REST(ctx, http.MethodGet, "/api/v1/workspaces/"+url.PathEscape(workspace.ID)+"/folders", nil)
		if err != nil {
			return nil, err
		}
		if !folders.OK {
			return nil, apperr.Validation(folders.Message)
		}

		var folderPayload struct {
			Items []struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"items"`
		}
		if err := remote.Decode(folders, &folderPayload); err != nil {
			return nil, fmt.Errorf("malformed folders response: %w", err)
		}

		for _, folder := range folderPayload.Items {
			spaces = append(spaces, service.Space{
				ID:   folder.ID,
				Name: workspace.Name + " > " + folder.Name,
			})
		}
	}
	return spaces, nil
}

// ListBlocks implements service.Service.
func (c *Client) ListBlocks(ctx context.Context, projectID string) ([]service.Block, error) {
	result, err := c.api.REST(ctx, http.MethodGet, projectPath(projectID, "blocks"), nil)
	if err != nil {
		return nil, err
	}
	if !result.OK {
		return nil, apperr.Validation(result.Message)
	}

	var payload struct {
		Items []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"items"`
	}
	if err := remote.Decode(result, &payload); err != nil {
		return nil, fmt.Errorf("malformed blocks response: %w", err)
	}

	blocks := make([]service.Block, 0, len(payload.Items))
	for _, item := range payload.Items {
		blocks = append(blocks, service.Block{ID: item.ID, Title: item.Text})
	}
	return blocks, nil
}

// ListMembers implements service.Service. The REST revision has no members
// endpoint; the service only exposes assignable members through the GraphQL
// mentionables query, so this delegates to the GraphQL backend.
func (c *Client) ListMembers(ctx context.Context, projectID string) ([]service.Member, error) {
	return graphql.New(c.api).ListMembers(ctx, projectID)
}

func projectPath(projectID string, parts ...string) string {
	path := "/api/v1/projects/" + url.PathEscape(projectID)
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}
	return path
}
