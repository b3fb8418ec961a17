package store

import (
	"context"

	"github.com/phrazzld/shop-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error
	// List returns all tasks, newest first.
	List(ctx context.Context) ([]*domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	// Update merges the patch into the stored row and refreshes updated_at
	// in a single statement. Returns ErrTaskNotFound if no row matched.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
}

// TodoStore defines the interface for todo persistence.
type TodoStore interface {
	Create(ctx context.Context, todo *domain.Todo) error
	// List returns all todos, or only those matching completed when non-nil.
	List(ctx context.Context, completed *bool) ([]*domain.Todo, error)
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}
