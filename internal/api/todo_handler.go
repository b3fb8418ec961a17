package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// TodoHandler handles todo HTTP requests
type TodoHandler struct {
	todoService service.TodoService
	logger      *slog.Logger
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService service.TodoService, logger *slog.Logger) *TodoHandler {
	if todoService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("todoService cannot be nil for TodoHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TodoHandler")
	}
	return &TodoHandler{
		todoService: todoService,
		logger:      logger.With(slog.String("component", "todo_handler")),
	}
}

// CreateTodo handles POST /todos requests
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.CreateTodo(r.Context(), req.Title, req.Description, bool(req.Completed))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create todo")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, todo)
}

// ListTodos handles GET /todos requests. ?completed=true|false filters;
// any other value is rejected.
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	completed, err := getQueryBool(r, "completed")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todos, err := h.todoService.ListTodos(r.Context(), completed)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch todos")
		return
	}

	shared.RespondWithList(w, r, todos, len(todos))
}

// GetTodo handles GET /todos/{id} requests
func (h *TodoHandler) GetTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathRowID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	todo, err := h.todoService.GetTodo(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch todo")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, todo)
}

// UpdateTodo handles PUT /todos/{id} requests
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathRowID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdateTodoRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	todo, err := h.todoService.UpdateTodo(r.Context(), id, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update todo")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/{id} requests
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathRowID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.todoService.DeleteTodo(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete todo")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Todo deleted successfully")
}
