package store

import (
	"context"

	"github.com/phrazzld/shop-api/internal/domain"
)

// OrderStore defines the interface for order persistence in the relational store.
// The productId column is a plain reference: no operation here consults the
// document store.
type OrderStore interface {
	// Create inserts the order and sets its ID and OrderDate.
	Create(ctx context.Context, order *domain.Order) error

	// List returns all orders, or only those for productID when non-nil.
	List(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error)

	// GetByID returns ErrOrderNotFound if no row matches.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// Update writes productId, quantity, customerName and totalPrice.
	// Returns ErrOrderNotFound if no row matched.
	Update(ctx context.Context, order *domain.Order) error

	// Delete returns ErrOrderNotFound if no row matched.
	Delete(ctx context.Context, id int64) error
}
