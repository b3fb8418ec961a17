package domain

import (
	"strings"
	"time"
)

// Todo is a row in the todos table.
type Todo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTodo validates and builds a Todo.
func NewTodo(title, description string, completed bool) (*Todo, error) {
	t := &Todo{
		Title:       strings.TrimSpace(title),
		Description: description,
		Completed:   completed,
	}
	if t.Title == "" {
		return nil, NewValidationError("title", "is required", nil)
	}
	if len(t.Title) > 255 {
		return nil, NewValidationError("title", "must be at most 255 characters", nil)
	}
	return t, nil
}

// TodoPatch is a partial todo update.
type TodoPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

// Validate checks the supplied fields only.
func (p TodoPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return NewValidationError("title", "must not be empty", nil)
	}
	return nil
}
