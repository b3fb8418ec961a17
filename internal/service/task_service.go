package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// Empty Status and Priority take their defaults.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
}

// TaskService manages tasks.
type TaskService interface {
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &ServiceError{Service: "task", Operation: "create_service", Message: "tasks store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{tasks: tasks, logger: logger.With(slog.String("component", "task_service"))}, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	t, err := domain.NewTask(in.Title, in.Description, in.Status, in.Priority)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, NewServiceError("task", "create_task", "failed to save task", err)
	}
	return t, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewServiceError("task", "list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("task", "get_task", "failed to get task", err)
	}
	return t, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if len(title) > 200 {
			return nil, domain.NewValidationError("title", "must be at most 200 characters", nil)
		}
		patch.Title = &title
	}

	t, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		return nil, NewServiceError("task", "update_task", "failed to update task", err)
	}
	return t, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewServiceError("task", "delete_task", "failed to delete task", err)
	}
	return nil
}
