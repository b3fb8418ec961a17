package domain

import (
	"strconv"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a Task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the allowed statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// TaskPriority ranks a Task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the allowed priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Task is a row in the tasks table.
type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewTask applies defaults (pending, medium) and validates.
func NewTask(title string, description *string, status TaskStatus, priority TaskPriority) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}
	if priority == "" {
		priority = TaskPriorityMedium
	}
	t := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		Priority:    priority,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the title and enum fields.
func (t *Task) Validate() error {
	if t.Title == "" {
		return NewValidationError("title", "is required", nil)
	}
	if len(t.Title) > 200 {
		return NewValidationError("title", "must be at most 200 characters", nil)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed", ErrInvalidStatus)
	}
	if !t.Priority.Valid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return nil
}

// TaskPatch is a partial task update; nil fields keep their stored value.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
}

// Validate checks the supplied fields only.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "must not be empty", nil)
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("status", "must be one of pending, in_progress, completed", ErrInvalidStatus)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return NewValidationError("priority", "must be one of low, medium, high", ErrInvalidPriority)
	}
	return nil
}

// ParseRowID parses the integer id of a relational row (order, task or todo).
func ParseRowID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, NewValidationError("id", "must be an integer", ErrInvalidID)
	}
	return id, nil
}
