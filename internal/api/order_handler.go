package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// OrderHandler handles order HTTP requests. Counter bookkeeping on the
// referenced products happens inside the service.
type OrderHandler struct {
	orderService service.OrderService
	logger       *slog.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *slog.Logger) *OrderHandler {
	if orderService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("orderService cannot be nil for OrderHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OrderHandler")
	}
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.With(slog.String("component", "order_handler")),
	}
}

// CreateOrder handles POST /api/orders requests
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	in, err := req.toInput()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), in)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create order")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, order)
}

// ListOrders handles GET /api/orders requests, optionally filtered by
// ?productId=.
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	productID, err := getQueryProductID(r, "productId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), productID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch orders")
		return
	}

	shared.RespondWithList(w, r, orders, len(orders))
}

// GetOrder handles GET /api/orders/{id} requests
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathRowID(w, r, "id", log)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch order")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/{id} requests
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathRowID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update order")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{id} requests
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathRowID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete order")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Order deleted successfully")
}
