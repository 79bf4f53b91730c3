// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskbridge/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It records every call in order and captures the arguments of the mutating
// operations, so tests can assert on call sequencing.
type FakeService struct {
	mu    sync.Mutex
	calls []string

	// NextTaskID is returned by InsertTask. Leave empty to simulate an
	// HTTP-successful create with no identifier in the body.
	NextTaskID string

	// Error injection for testing
	InsertTaskErr      error
	AttachDateErr      error
	AttachAssigneesErr error
	ListProjectsErr    error
	ListSpacesErr      error
	ListBlocksErr      error
	ListMembersErr     error

	// Fixtures returned by the listing methods
	Projects []service.Project
	Spaces   []service.Space
	Blocks   []service.Block
	Members  []service.Member

	// Captured arguments of the last mutating calls
	LastProjectID string
	LastBlockID   string
	LastContent   string
	LastDate      service.DateRange
	LastHandles   []string
}

// NewFakeService creates a FakeService that hands out the given task id.
func NewFakeService(taskID string) *FakeService {
	return &FakeService{NextTaskID: taskID}
}

// Calls returns the method names invoked so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeService) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// InsertTask implements service.Service.
func (f *FakeService) InsertTask(ctx context.Context, projectID, blockID, content string) (string, error) {
	f.record("InsertTask")
	if f.InsertTaskErr != nil {
		return "", f.InsertTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProjectID = projectID
	f.LastBlockID = blockID
	f.LastContent = content
	return f.NextTaskID, nil
}

// AttachDate implements service.Service.
func (f *FakeService) AttachDate(ctx context.Context, projectID, taskID string, date service.DateRange) error {
	f.record("AttachDate")
	if f.AttachDateErr != nil {
		return f.AttachDateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProjectID = projectID
	f.LastDate = date
	return nil
}

// AttachAssignees implements service.Service.
func (f *FakeService) AttachAssignees(ctx context.Context, projectID, taskID string, handles []string) error {
	f.record("AttachAssignees")
	if f.AttachAssigneesErr != nil {
		return f.AttachAssigneesErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProjectID = projectID
	f.LastHandles = handles
	return nil
}

// ListProjects implements service.Service.
func (f *FakeService) ListProjects(ctx context.Context, spaceID string) ([]service.Project, error) {
	f.record("ListProjects")
	if f.ListProjectsErr != nil {
		return nil, f.ListProjectsErr
	}
	return f.Projects, nil
}

// ListSpaces implements service.Service.
func (f *FakeService) ListSpaces(ctx context.Context, page int) ([]service.Space, error) {
	f.record("ListSpaces")
	if f.ListSpacesErr != nil {
		return nil, f.ListSpacesErr
	}
	return f.Spaces, nil
}

// ListBlocks implements service.Service.
func (f *FakeService) ListBlocks(ctx context.Context, projectID string) ([]service.Block, error) {
	f.record("ListBlocks")
	if f.ListBlocksErr != nil {
		return nil, f.ListBlocksErr
	}
	return f.Blocks, nil
}

// ListMembers implements service.Service.
func (f *FakeService) ListMembers(ctx context.Context, projectID string) ([]service.Member, error) {
	f.record("ListMembers")
	if f.ListMembersErr != nil {
		return nil, f.ListMembersErr
	}
	return f.Members, nil
}
