package store

import (
	"context"

	"github.com/phrazzld/shop-api/internal/domain"
)

// ProductStore defines the interface for product persistence in the document store.
type ProductStore interface {
	// Create inserts the product and sets its ID.
	// Returns ErrProductNameExists if the name is already taken.
	Create(ctx context.Context, product *domain.Product) error

	// List returns every product, or only those whose category equals
	// category exactly when it is non-empty.
	List(ctx context.Context, category string) ([]*domain.Product, error)

	// GetByID returns ErrProductNotFound if no document matches.
	GetByID(ctx context.Context, id domain.ProductID) (*domain.Product, error)

	// Update applies the patch, refreshes updatedAt and returns the
	// post-update product. Returns ErrProductNotFound or ErrProductNameExists.
	Update(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error)

	// Delete returns ErrProductNotFound if no document matched.
	Delete(ctx context.Context, id domain.ProductID) error

	// AdjustOrderCount adds delta to totalOrdersCount atomically within the
	// document. Returns ErrProductNotFound if no document matched.
	AdjustOrderCount(ctx context.Context, id domain.ProductID, delta int) error
}
