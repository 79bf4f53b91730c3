// Package service defines the backend-agnostic interface for task operations.
package service

// Project is a project document summary.
type Project struct {
	ID    string
	Title string
}

// Space is a workspace folder entry. Name carries the combined
// "workspace > folder" label the selection UI shows.
type Space struct {
	ID   string
	Name string
}

// Block is an addressable content unit within a project document.
type Block struct {
	ID    string
	Title string
}

// Member is a user assignable to tasks in a project.
type Member struct {
	ID          string
	DisplayName string
}

// DateBound is one edge of a date range, split the way the remote API
// expects: calendar date, wall-clock time, IANA timezone.
type DateBound struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Timezone string `json:"timezone"`
}

// DateRange is a task date attachment. A single instant is a range with
// only a start; End is nil unless both bounds were supplied.
type DateRange struct {
	Start DateBound  `json:"start"`
	End   *DateBound `json:"end,omitempty"`
}
