package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/events"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/saga"
	"github.com/phrazzld/shop-api/internal/store"
)

// Saga names, used as the "saga" label on drift events and metrics.
const (
	SagaCreateOrder = "order.create"
	SagaUpdateOrder = "order.update"
	SagaDeleteOrder = "order.delete"
)

// CreateOrderInput carries the fields accepted when placing an order.
type CreateOrderInput struct {
	ProductID    domain.ProductID
	Quantity     int
	CustomerName string
}

// OrderService manages orders and keeps each product's totalOrdersCount in
// step with them. Every mutation writes the relational row first and the
// document-store counter second; neither write is compensated.
type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	ListOrders(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (*domain.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type orderServiceImpl struct {
	orders   store.OrderStore
	products store.ProductStore
	emitter  events.EventEmitter
	logger   *slog.Logger
}

// NewOrderService creates an OrderService.
// It returns an error if either store is nil. emitter may be nil.
func NewOrderService(
	orders store.OrderStore,
	products store.ProductStore,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (OrderService, error) {
	if orders == nil {
		return nil, &ServiceError{Service: "order", Operation: "create_service", Message: "orders store cannot be nil"}
	}
	if products == nil {
		return nil, &ServiceError{Service: "order", Operation: "create_service", Message: "products store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &orderServiceImpl{
		orders:   orders,
		products: products,
		emitter:  emitter,
		logger:   logger.With(slog.String("component", "order_service")),
	}, nil
}

// productGone reports a counter write that matched no product. The order
// outlives its product, so the missing decrement is drift, not a failure.
func productGone(err error) bool {
	return errors.Is(err, store.ErrProductNotFound)
}

func (s *orderServiceImpl) adjustCounter(id domain.ProductID, delta int) func(context.Context) error {
	return func(ctx context.Context) error {
		return s.products.AdjustOrderCount(ctx, id, delta)
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, NewServiceError("order", "create_order", "failed to look up product", err)
	}

	order, err := domain.NewOrder(product, in.Quantity, in.CustomerName)
	if err != nil {
		return nil, err
	}

	err = saga.New(SagaCreateOrder, s.emitter, s.logger).
		WithAttr("product_id", product.ID.String()).
		Step(saga.Step{
			Name:   "insert_order",
			Action: func(ctx context.Context) error { return s.orders.Create(ctx, order) },
		}).
		Step(saga.Step{
			Name:   "increment_product_counter",
			Action: s.adjustCounter(product.ID, 1),
		}).
		Run(ctx)
	if err != nil {
		return nil, sagaError("order", "create_order", err)
	}

	created, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return nil, NewServiceError("order", "create_order", "failed to re-read order", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("order created",
		slog.Int64("order_id", created.ID),
		slog.String("product_id", created.ProductID.String()),
		slog.Float64("total_price", created.TotalPrice))
	return created, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error) {
	orders, err := s.orders.List(ctx, productID)
	if err != nil {
		return nil, NewServiceError("order", "list_orders", "failed to list orders", err)
	}
	return orders, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("order", "get_order", "failed to get order", err)
	}
	return o, nil
}

// UpdateOrder applies patch to the stored order. The product is looked up
// only when the total has to be recomputed; moving the order to another
// product decrements the old counter and then increments the new one. A
// decrement against a product that no longer exists is tolerated.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id int64, patch domain.OrderPatch) (*domain.Order, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("order", "update_order", "failed to get order", err)
	}

	updated := *existing
	oldProductID := existing.ProductID
	moves := patch.MovesProduct(existing)

	if patch.Reprices(existing) {
		if patch.ProductID != nil {
			updated.ProductID = *patch.ProductID
		}
		if patch.Quantity != nil {
			updated.Quantity = *patch.Quantity
		}
		product, err := s.products.GetByID(ctx, updated.ProductID)
		if err != nil {
			return nil, NewServiceError("order", "update_order", "failed to look up product", err)
		}
		updated.TotalPrice = domain.TotalPrice(updated.Quantity, product.Price)
	}
	if patch.CustomerName != nil {
		updated.CustomerName = strings.TrimSpace(*patch.CustomerName)
	}

	sg := saga.New(SagaUpdateOrder, s.emitter, s.logger).
		WithAttr("order_id", strconv.FormatInt(existing.ID, 10)).
		Step(saga.Step{
			Name:   "update_order",
			Action: func(ctx context.Context) error { return s.orders.Update(ctx, &updated) },
		})
	if moves {
		sg.WithAttr("old_product_id", oldProductID.String()).
			WithAttr("new_product_id", updated.ProductID.String()).
			Step(saga.Step{
				Name:     "decrement_old_product_counter",
				Action:   s.adjustCounter(oldProductID, -1),
				Tolerate: productGone,
			}).
			Step(saga.Step{Name: "increment_new_product_counter", Action: s.adjustCounter(updated.ProductID, 1)})
	}
	if err := sg.Run(ctx); err != nil {
		return nil, sagaError("order", "update_order", err)
	}

	result, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("order", "update_order", "failed to re-read order", err)
	}
	return result, nil
}

// DeleteOrder removes the row and decrements the product counter. A
// decrement that finds no product (deleted since the order was placed) is
// tolerated and reported as drift; any other counter failure is an error,
// with the row already gone.
func (s *orderServiceImpl) DeleteOrder(ctx context.Context, id int64) error {
	existing, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return NewServiceError("order", "delete_order", "failed to get order", err)
	}

	err = saga.New(SagaDeleteOrder, s.emitter, s.logger).
		WithAttr("order_id", strconv.FormatInt(existing.ID, 10)).
		WithAttr("product_id", existing.ProductID.String()).
		Step(saga.Step{
			Name:   "delete_order",
			Action: func(ctx context.Context) error { return s.orders.Delete(ctx, id) },
		}).
		Step(saga.Step{
			Name:     "decrement_product_counter",
			Action:   s.adjustCounter(existing.ProductID, -1),
			Tolerate: productGone,
		}).
		Run(ctx)
	if err != nil {
		return sagaError("order", "delete_order", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("order deleted",
		slog.Int64("order_id", id),
		slog.String("product_id", existing.ProductID.String()))
	return nil
}
