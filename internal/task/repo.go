package task

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("task not found")

// Patch represents a partial update.
// nil pointer => "no change"
// empty string for DueDate => clear (set to unset)
type Patch struct {
	Title    *string   `json:"title,omitempty"`
	Priority *Priority `json:"priority,omitempty"`
	DueDate  *string   `json:"dueDate,omitempty"`
}

type ListFilter struct {
	// Status:
	//   "" | "all" | "open" | "done" | "overdue"
	Status string

	// Priority:
	//   "" | "any" | "low" | "medium" | "high"
	Priority string
}

type Repo interface {
	Create(ctx context.Context, title string, priority Priority, dueDate string) (Task, error)
	Get(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, id string, patch Patch) (Task, error)
	List(ctx context.Context, filter ListFilter) ([]Task, error)
	// SetDone flips completion and reports whether the call changed
	// anything; completing an already-done task is a no-op.
	SetDone(ctx context.Context, id string, done bool) (Task, bool, error)
	Delete(ctx context.Context, id string) error
}
