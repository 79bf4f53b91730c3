// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskbridge/internal/remote"
	"taskbridge/internal/task"
)

// FormatRow formats an id/label lookup row.
// Format: "{ID}  {LABEL}\n" (label normalized).
func FormatRow(w io.Writer, id, label string) {
	fmt.Fprintf(w, "%s  %s\n", id, normalizeLabel(label))
}

// FormatOutcome formats a create-task outcome.
func FormatOutcome(w io.Writer, outcome task.CreateOutcome) {
	fmt.Fprintf(w, "taskId: %s\n", outcome.TaskID)
	fmt.Fprintf(w, "dateAttached: %t\n", outcome.DateAttached)
	fmt.Fprintf(w, "assigneeAttached: %t\n", outcome.AssigneeAttached)
}

// FormatFlat formats a flat record with stable key order.
// Format: "{key}: {value}\n" per field.
func FormatFlat(w io.Writer, record map[string]any) {
	for _, key := range remote.FlatKeys(record) {
		fmt.Fprintf(w, "%s: %v\n", key, record[key])
	}
}

// normalizeLabel normalizes a label for display.
// - Empty or whitespace-only labels become "(untitled)"
// - Newlines are replaced with spaces
func normalizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")

	if strings.TrimSpace(label) == "" {
		return "(untitled)"
	}
	return label
}
