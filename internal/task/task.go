package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	// DueDate is a calendar day in "2006-01-02" form, empty when unset.
	DueDate string `json:"dueDate,omitempty"`
	Done    bool   `json:"done"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewTask(title string, priority Priority) Task {
	now := time.Now()
	if priority == "" {
		priority = PriorityMedium
	}
	return Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now()
}

// Overdue reports whether the task has a due date strictly before today
// and is still open. today is a "2006-01-02" day string.
func (t *Task) Overdue(today string) bool {
	if t.Done || t.DueDate == "" {
		return false
	}
	return t.DueDate < today
}
