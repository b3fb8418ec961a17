package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
)

// TodoService manages todos.
type TodoService interface {
	CreateTodo(ctx context.Context, title, description string, completed bool) (*domain.Todo, error)
	ListTodos(ctx context.Context, completed *bool) ([]*domain.Todo, error)
	GetTodo(ctx context.Context, id int64) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}

type todoServiceImpl struct {
	todos  store.TodoStore
	logger *slog.Logger
}

// NewTodoService creates a TodoService.
func NewTodoService(todos store.TodoStore, logger *slog.Logger) (TodoService, error) {
	if todos == nil {
		return nil, &ServiceError{Service: "todo", Operation: "create_service", Message: "todos store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &todoServiceImpl{todos: todos, logger: logger.With(slog.String("component", "todo_service"))}, nil
}

func (s *todoServiceImpl) CreateTodo(ctx context.Context, title, description string, completed bool) (*domain.Todo, error) {
	t, err := domain.NewTodo(title, description, completed)
	if err != nil {
		return nil, err
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, NewServiceError("todo", "create_todo", "failed to save todo", err)
	}
	return t, nil
}

func (s *todoServiceImpl) ListTodos(ctx context.Context, completed *bool) ([]*domain.Todo, error) {
	todos, err := s.todos.List(ctx, completed)
	if err != nil {
		return nil, NewServiceError("todo", "list_todos", "failed to list todos", err)
	}
	return todos, nil
}

func (s *todoServiceImpl) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("todo", "get_todo", "failed to get todo", err)
	}
	return t, nil
}

func (s *todoServiceImpl) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		patch.Title = &title
	}

	t, err := s.todos.Update(ctx, id, patch)
	if err != nil {
		return nil, NewServiceError("todo", "update_todo", "failed to update todo", err)
	}
	return t, nil
}

func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	if err := s.todos.Delete(ctx, id); err != nil {
		return NewServiceError("todo", "delete_todo", "failed to delete todo", err)
	}
	return nil
}
