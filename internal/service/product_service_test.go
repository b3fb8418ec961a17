package service

import (
	"context"
	"testing"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService(t *testing.T) {
	ctx := context.Background()
	products := newMemProductStore()
	svc, err := NewProductService(products, testLogger())
	require.NoError(t, err)

	widget, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Widget", Price: 9.99, Category: "tools"})
	require.NoError(t, err)
	assert.Equal(t, 0, widget.TotalOrdersCount)
	assert.Equal(t, 0, widget.Stock)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Widget", Price: 9.99})
	assert.ErrorIs(t, err, store.ErrProductNameExists, "duplicate name is a conflict")
	all, err := svc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "  ", Price: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Gadget", Price: 3, Category: "toys"})
	require.NoError(t, err)
	tools, err := svc.ListProducts(ctx, "tools")
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "Widget", tools[0].Name)
	padded, err := svc.ListProducts(ctx, " tools")
	require.NoError(t, err)
	assert.Empty(t, padded, "category filter is an exact match")

	name := "  Widget Pro "
	updated, err := svc.UpdateProduct(ctx, widget.ID, domain.ProductPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.Name)

	taken := " Gadget "
	_, err = svc.UpdateProduct(ctx, widget.ID, domain.ProductPatch{Name: &taken})
	assert.ErrorIs(t, err, store.ErrDuplicate, "rename is trimmed before the uniqueness check")

	negative := -1.0
	_, err = svc.UpdateProduct(ctx, widget.ID, domain.ProductPatch{Price: &negative})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, svc.DeleteProduct(ctx, widget.ID))
	_, err = svc.GetProduct(ctx, widget.ID)
	assert.ErrorIs(t, err, store.ErrProductNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, widget.ID), store.ErrProductNotFound)
}

func TestNewProductServiceRequiresStore(t *testing.T) {
	_, err := NewProductService(nil, nil)
	var se *ServiceError
	assert.ErrorAs(t, err, &se)
}
