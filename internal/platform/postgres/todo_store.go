package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
)

const todoColumns = `id, title, description, completed, created_at, updated_at`

// PostgresTodoStore implements the store.TodoStore interface.
type PostgresTodoStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTodoStore creates a new PostgreSQL implementation of the TodoStore interface.
func NewPostgresTodoStore(db store.DBTX, logger *slog.Logger) *PostgresTodoStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTodoStore{
		db:     db,
		logger: logger.With(slog.String("component", "todo_store")),
	}
}

var _ store.TodoStore = (*PostgresTodoStore)(nil)

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements store.TodoStore.Create
func (s *PostgresTodoStore) Create(ctx context.Context, todo *domain.Todo) error {
	query := `
		INSERT INTO todos (title, description, completed)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := s.db.QueryRowContext(ctx, query, todo.Title, todo.Description, todo.Completed).
		Scan(&todo.ID, &todo.CreatedAt, &todo.UpdatedAt)
	return MapError(err, nil)
}

// List implements store.TodoStore.List
func (s *PostgresTodoStore) List(ctx context.Context, completed *bool) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	var args []any
	if completed != nil {
		query += ` WHERE completed = $1`
		args = append(args, *completed)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err, nil)
	}
	defer rows.Close()

	todos := make([]*domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, nil)
	}
	return todos, nil
}

// GetByID implements store.TodoStore.GetByID
func (s *PostgresTodoStore) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := scanTodo(s.db.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id))
	if err != nil {
		return nil, MapError(err, store.ErrTodoNotFound)
	}
	return t, nil
}

// Update implements store.TodoStore.Update
func (s *PostgresTodoStore) Update(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	completed := sql.NullBool{}
	if patch.Completed != nil {
		completed = sql.NullBool{Bool: *patch.Completed, Valid: true}
	}

	query := `
		UPDATE todos SET
			title       = COALESCE($1::varchar, title),
			description = COALESCE($2::text, description),
			completed   = COALESCE($3::boolean, completed),
			updated_at  = NOW()
		WHERE id = $4
		RETURNING ` + todoColumns

	t, err := scanTodo(s.db.QueryRowContext(ctx, query,
		nullableString(patch.Title),
		nullableString(patch.Description),
		completed,
		id,
	))
	if err != nil {
		return nil, MapError(err, store.ErrTodoNotFound)
	}
	return t, nil
}

// Delete implements store.TodoStore.Delete
func (s *PostgresTodoStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return MapError(err, nil)
	}
	return CheckRowsAffected(result, store.ErrTodoNotFound)
}
