package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/service"
	"github.com/stretchr/testify/require"
)

// MockProductService is a mock implementation of service.ProductService for testing
type MockProductService struct {
	CreateProductFn func(ctx context.Context, in service.CreateProductInput) (*domain.Product, error)
	ListProductsFn  func(ctx context.Context, category string) ([]*domain.Product, error)
	GetProductFn    func(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	UpdateProductFn func(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProductFn func(ctx context.Context, id domain.ProductID) error
}

func (m *MockProductService) CreateProduct(ctx context.Context, in service.CreateProductInput) (*domain.Product, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, in)
	}
	return nil, nil
}

func (m *MockProductService) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, category)
	}
	return []*domain.Product{}, nil
}

func (m *MockProductService) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, id)
	}
	return nil, nil
}

func (m *MockProductService) UpdateProduct(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error) {
	if m.UpdateProductFn != nil {
		return m.UpdateProductFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockProductService) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	if m.DeleteProductFn != nil {
		return m.DeleteProductFn(ctx, id)
	}
	return nil
}

// MockOrderService is a mock implementation of service.OrderService for testing
type MockOrderService struct {
	CreateOrderFn func(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error)
	ListOrdersFn  func(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error)
	GetOrderFn    func(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrderFn func(ctx context.Context, id int64, patch domain.OrderPatch) (*domain.Order, error)
	DeleteOrderFn func(ctx context.Context, id int64) error
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*domain.Order, error) {
	if m.CreateOrderFn != nil {
		return m.CreateOrderFn(ctx, in)
	}
	return nil, nil
}

func (m *MockOrderService) ListOrders(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error) {
	if m.ListOrdersFn != nil {
		return m.ListOrdersFn(ctx, productID)
	}
	return []*domain.Order{}, nil
}

func (m *MockOrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderService) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (*domain.Order, error) {
	if m.UpdateOrderFn != nil {
		return m.UpdateOrderFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockOrderService) DeleteOrder(ctx context.Context, id int64) error {
	if m.DeleteOrderFn != nil {
		return m.DeleteOrderFn(ctx, id)
	}
	return nil
}

// MockTaskService is a mock implementation of service.TaskService for testing
type MockTaskService struct {
	CreateTaskFn func(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn    func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTaskFn func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn func(ctx context.Context, id int64) error
}

func (m *MockTaskService) CreateTask(ctx context.Context, in service.CreateTaskInput) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, in)
	}
	return nil, nil
}

func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTaskService) UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

// MockTodoService is a mock implementation of service.TodoService for testing
type MockTodoService struct {
	CreateTodoFn func(ctx context.Context, title, description string, completed bool) (*domain.Todo, error)
	ListTodosFn  func(ctx context.Context, completed *bool) ([]*domain.Todo, error)
	GetTodoFn    func(ctx context.Context, id int64) (*domain.Todo, error)
	UpdateTodoFn func(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error)
	DeleteTodoFn func(ctx context.Context, id int64) error
}

func (m *MockTodoService) CreateTodo(ctx context.Context, title, description string, completed bool) (*domain.Todo, error) {
	if m.CreateTodoFn != nil {
		return m.CreateTodoFn(ctx, title, description, completed)
	}
	return nil, nil
}

func (m *MockTodoService) ListTodos(ctx context.Context, completed *bool) ([]*domain.Todo, error) {
	if m.ListTodosFn != nil {
		return m.ListTodosFn(ctx, completed)
	}
	return []*domain.Todo{}, nil
}

func (m *MockTodoService) GetTodo(ctx context.Context, id int64) (*domain.Todo, error) {
	if m.GetTodoFn != nil {
		return m.GetTodoFn(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) (*domain.Todo, error) {
	if m.UpdateTodoFn != nil {
		return m.UpdateTodoFn(ctx, id, patch)
	}
	return nil, nil
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, id int64) error {
	if m.DeleteTodoFn != nil {
		return m.DeleteTodoFn(ctx, id)
	}
	return nil
}

// envelope is the decoded shape of both success and error responses.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	TraceID string          `json:"trace_id"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// serve runs a single request through a chi router so URL params resolve.
func serve(t *testing.T, register func(chi.Router), method, target string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	r := chi.NewRouter()
	register(r)

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func ptr[T any](v T) *T {
	return &v
}

