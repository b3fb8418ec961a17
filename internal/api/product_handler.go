package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// ProductHandler handles catalog HTTP requests.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if productService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("productService cannot be nil for ProductHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProductHandler")
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// CreateProduct handles POST /api/products requests
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create product")
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, product)
}

// ListProducts handles GET /api/products requests, optionally filtered by
// ?category=.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch products")
		return
	}

	shared.RespondWithList(w, r, products, len(products))
}

// GetProduct handles GET /api/products/{id} requests
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathProductID(w, r, "id", log)
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to fetch product")
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, product)
}

// UpdateProduct handles PUT /api/products/{id} requests
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathProductID(w, r, "id", log)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update product")
		return
	}

	log.Debug("product updated", slog.String("product_id", id.String()))
	shared.RespondWithData(w, r, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/products/{id} requests
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := handlePathProductID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete product")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, "Product deleted successfully")
}
