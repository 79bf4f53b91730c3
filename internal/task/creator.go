// Package task sequences the multi-step task-creation workflow:
// create, then conditionally attach a date and an assignee.
package task

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"taskbridge/internal/apperr"
	"taskbridge/internal/service"
)

// CreateRequest is the input of one create-task run. Immutable once built.
type CreateRequest struct {
	// ProjectID is the target project document.
	ProjectID string `validate:"required"`

	// BlockID optionally anchors the task after an existing block.
	BlockID string

	// Content is the task body (markdown).
	Content string `validate:"required"`

	// StartDate and EndDate are optional instants; either alone yields a
	// single-instant range.
	StartDate *time.Time
	EndDate   *time.Time

	// AssigneeID optionally assigns one member handle to the new task.
	AssigneeID string

	// Timezone is the acting user's IANA timezone; empty or unknown names
	// fall back to Etc/UTC.
	Timezone string
}

// CreateOutcome reports how far a create run got. The attached flags are
// true only if their step ran and succeeded.
type CreateOutcome struct {
	TaskID           string
	DateAttached     bool
	AssigneeAttached bool
}

// Creator runs the create workflow against a backend revision. Steps are
// strictly sequenced; the first failure aborts the remaining steps. Nothing
// is rolled back on a follow-up failure: the task already exists remotely,
// and the returned outcome shows which steps landed.
type Creator struct {
	svc      service.Service
	validate *validator.Validate
}

// NewCreator creates a Creator on top of a backend.
func NewCreator(svc service.Service) *Creator {
	return &Creator{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Create runs the workflow: insert the task, then attach the date range and
// the assignee if the request carries them. Any step rejection surfaces as
// an apperr.ValidationError with the remote-supplied message.
func (c *Creator) Create(ctx context.Context, req CreateRequest) (CreateOutcome, error) {
	var outcome CreateOutcome

	if err := c.validate.Struct(req); err != nil {
		return outcome, apperr.Validation("project ID and content are required")
	}

	taskID, err := c.svc.InsertTask(ctx, req.ProjectID, req.BlockID, req.Content)
	if err != nil {
		return outcome, err
	}
	if taskID == "" {
		// HTTP-successful create with no identifier in the body.
		return outcome, apperr.Validation("missing task ID")
	}
	outcome.TaskID = taskID

	if date := NewDateRange(req.StartDate, req.EndDate, req.Timezone); date != nil {
		if err := c.svc.AttachDate(ctx, req.ProjectID, taskID, *date); err != nil {
			return outcome, err
		}
		outcome.DateAttached = true
	}

	if req.AssigneeID != "" {
		if err := c.svc.AttachAssignees(ctx, req.ProjectID, taskID, []string{req.AssigneeID}); err != nil {
			return outcome, err
		}
		outcome.AssigneeAttached = true
	}

	return outcome, nil
}
