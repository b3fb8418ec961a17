package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todoRoutes(ms *MockTodoService) func(chi.Router) {
	h := NewTodoHandler(ms, testLogger())
	return func(r chi.Router) {
		r.Route("/todos", func(r chi.Router) {
			r.Get("/", h.ListTodos)
			r.Post("/", h.CreateTodo)
			r.Get("/{id}", h.GetTodo)
			r.Put("/{id}", h.UpdateTodo)
			r.Delete("/{id}", h.DeleteTodo)
		})
	}
}

func TestTodoHandler_CreateTodo(t *testing.T) {
	tests := []struct {
		name              string
		body              string
		expectedStatus    int
		expectedCompleted bool
	}{
		{name: "bool completed", body: `{"title":"milk","completed":true}`, expectedStatus: http.StatusCreated, expectedCompleted: true},
		{name: "string completed", body: `{"title":"milk","completed":"true"}`, expectedStatus: http.StatusCreated, expectedCompleted: true},
		{name: "string false", body: `{"title":"milk","completed":"false"}`, expectedStatus: http.StatusCreated},
		{name: "omitted completed", body: `{"title":"milk"}`, expectedStatus: http.StatusCreated},
		{name: "garbage completed", body: `{"title":"milk","completed":"maybe"}`, expectedStatus: http.StatusBadRequest},
		{name: "missing title", body: `{"completed":true}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotCompleted bool
			ms := &MockTodoService{
				CreateTodoFn: func(_ context.Context, title, description string, completed bool) (*domain.Todo, error) {
					gotCompleted = completed
					return domain.NewTodo(title, description, completed)
				},
			}

			rec, _ := serve(t, todoRoutes(ms), http.MethodPost, "/todos", tc.body)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedCompleted, gotCompleted)
		})
	}
}

func TestTodoHandler_ListTodosFilter(t *testing.T) {
	tests := []struct {
		query          string
		expectedStatus int
		expectedFilter *bool
	}{
		{query: "", expectedStatus: http.StatusOK},
		{query: "?completed=true", expectedStatus: http.StatusOK, expectedFilter: ptr(true)},
		{query: "?completed=false", expectedStatus: http.StatusOK, expectedFilter: ptr(false)},
		{query: "?completed=yes", expectedStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run("filter"+tc.query, func(t *testing.T) {
			var gotFilter *bool
			ms := &MockTodoService{
				ListTodosFn: func(_ context.Context, completed *bool) ([]*domain.Todo, error) {
					gotFilter = completed
					return []*domain.Todo{}, nil
				},
			}

			rec, env := serve(t, todoRoutes(ms), http.MethodGet, "/todos"+tc.query, nil)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, tc.expectedFilter, gotFilter)
			if tc.expectedStatus == http.StatusBadRequest {
				assert.Equal(t, "completed must be true or false", env.Error)
			}
		})
	}
}

func TestTodoHandler_UpdateTodo(t *testing.T) {
	var gotPatch domain.TodoPatch
	ms := &MockTodoService{
		UpdateTodoFn: func(_ context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
			gotPatch = patch
			return &domain.Todo{ID: id}, nil
		},
	}

	rec, _ := serve(t, todoRoutes(ms), http.MethodPut, "/todos/1", `{"completed":"true"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch.Completed)
	assert.True(t, *gotPatch.Completed)
	assert.Nil(t, gotPatch.Title)
}

func TestTodoHandler_GetAndDelete(t *testing.T) {
	ms := &MockTodoService{
		GetTodoFn: func(_ context.Context, id int64) (*domain.Todo, error) {
			return nil, store.ErrTodoNotFound
		},
	}

	rec, env := serve(t, todoRoutes(ms), http.MethodGet, "/todos/8", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Todo not found", env.Error)

	rec, env = serve(t, todoRoutes(ms), http.MethodDelete, "/todos/8", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Todo deleted successfully", env.Message)
}
