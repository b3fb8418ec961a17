package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int
}

// ProductService provides catalog operations.
type ProductService interface {
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	ListProducts(ctx context.Context, category string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id domain.ProductID) error
}

type productServiceImpl struct {
	products store.ProductStore
	logger   *slog.Logger
}

// NewProductService creates a ProductService.
// It returns an error if the store is nil.
func NewProductService(products store.ProductStore, logger *slog.Logger) (ProductService, error) {
	if products == nil {
		return nil, &ServiceError{Service: "product", Operation: "create_service", Message: "products store cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &productServiceImpl{
		products: products,
		logger:   logger.With(slog.String("component", "product_service")),
	}, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	p, err := domain.NewProduct(in.Name, in.Description, in.Price, in.Category, in.Stock)
	if err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, NewServiceError("product", "create_product", "failed to save product", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("product created",
		slog.String("product_id", p.ID.String()),
		slog.String("name", p.Name))
	return p, nil
}

func (s *productServiceImpl) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.products.List(ctx, category)
	if err != nil {
		return nil, NewServiceError("product", "list_products", "failed to list products", err)
	}
	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("product", "get_product", "failed to get product", err)
	}
	return p, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, id domain.ProductID, patch domain.ProductPatch) (*domain.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}

	p, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, NewServiceError("product", "update_product", "failed to update product", err)
	}
	return p, nil
}

func (s *productServiceImpl) DeleteProduct(ctx context.Context, id domain.ProductID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return NewServiceError("product", "delete_product", "failed to delete product", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("product deleted",
		slog.String("product_id", id.String()))
	return nil
}
