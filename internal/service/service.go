// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations. The service
// exists in two revisions speaking different API shapes (REST and GraphQL);
// callers never depend on either shape directly.
//
// Mutating calls report an application-level rejection as an
// apperr.ValidationError carrying the remote-supplied message.
type Service interface {
	// InsertTask creates a task in a project, optionally anchored after
	// blockID, and returns the new task's identifier. Placement is always
	// end-of-container.
	InsertTask(ctx context.Context, projectID, blockID, content string) (string, error)

	// AttachDate sets the date range on an existing task.
	AttachDate(ctx context.Context, projectID, taskID string, date DateRange) error

	// AttachAssignees assigns the given member handles to an existing task.
	AttachAssignees(ctx context.Context, projectID, taskID string, handles []string) error

	// ListProjects returns projects, either across the account (empty
	// spaceID) or within one workspace folder.
	ListProjects(ctx context.Context, spaceID string) ([]Project, error)

	// ListSpaces returns workspace and folder entries. page is 0-based;
	// the page size is a property of the backend revision.
	ListSpaces(ctx context.Context, page int) ([]Space, error)

	// ListBlocks returns the top-level blocks of a project.
	ListBlocks(ctx context.Context, projectID string) ([]Block, error)

	// ListMembers returns the users assignable within a project:
	// space memberships plus project members, de-duplicated by user id.
	ListMembers(ctx context.Context, projectID string) ([]Member, error)
}
