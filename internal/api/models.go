package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/service"
)

// Common request structures. Presence is checked with validator tags; the
// domain constructors enforce everything else.

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"       validate:"required"`
	Category    string   `json:"category"`
	Stock       *int     `json:"stock"`
}

func (req CreateProductRequest) toInput() service.CreateProductInput {
	in := service.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
	}
	if req.Stock != nil {
		in.Stock = *req.Stock
	}
	return in
}

// UpdateProductRequest is the payload for PUT /api/products/{id}. Every field
// is optional; totalOrdersCount is deliberately absent.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
}

func (req UpdateProductRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
	}
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	ProductID    string `json:"productId"    validate:"required"`
	Quantity     *int   `json:"quantity"     validate:"required"`
	CustomerName string `json:"customerName" validate:"required"`
}

func (req CreateOrderRequest) toInput() (service.CreateOrderInput, error) {
	productID, err := domain.ParseProductID(req.ProductID)
	if err != nil {
		return service.CreateOrderInput{}, err
	}
	return service.CreateOrderInput{
		ProductID:    productID,
		Quantity:     *req.Quantity,
		CustomerName: req.CustomerName,
	}, nil
}

// UpdateOrderRequest is the payload for PUT /api/orders/{id}.
type UpdateOrderRequest struct {
	ProductID    *string `json:"productId"`
	Quantity     *int    `json:"quantity"`
	CustomerName *string `json:"customerName"`
}

func (req UpdateOrderRequest) toPatch() (domain.OrderPatch, error) {
	patch := domain.OrderPatch{
		Quantity:     req.Quantity,
		CustomerName: req.CustomerName,
	}
	if req.ProductID != nil {
		productID, err := domain.ParseProductID(*req.ProductID)
		if err != nil {
			return domain.OrderPatch{}, err
		}
		patch.ProductID = &productID
	}
	return patch, nil
}

// CreateTaskRequest is the payload for POST /api/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description"`
	Status      string  `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

func (req CreateTaskRequest) toInput() service.CreateTaskInput {
	return service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
	}
}

// UpdateTaskRequest is the payload for PUT /api/tasks/{id}.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

func (req UpdateTaskRequest) toPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		patch.Priority = &p
	}
	return patch
}

// FlexBool is a JSON boolean that also accepts the strings "true" and
// "false". null decodes as false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = false
		return nil
	}

	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = FlexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("completed must be a boolean: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		*b = true
	case "false":
		*b = false
	default:
		return fmt.Errorf("completed must be a boolean, got %q", s)
	}
	return nil
}

// CreateTodoRequest is the payload for POST /todos.
type CreateTodoRequest struct {
	Title       string   `json:"title"       validate:"required,max=255"`
	Description string   `json:"description"`
	Completed   FlexBool `json:"completed"`
}

// UpdateTodoRequest is the payload for PUT /todos/{id}.
type UpdateTodoRequest struct {
	Title       *string   `json:"title"       validate:"omitempty,max=255"`
	Description *string   `json:"description"`
	Completed   *FlexBool `json:"completed"`
}

func (req UpdateTodoRequest) toPatch() domain.TodoPatch {
	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Completed != nil {
		c := bool(*req.Completed)
		patch.Completed = &c
	}
	return patch
}
