package domain

import (
	"math"
	"strings"
	"time"
)

// Order is a purchase row in the relational store. ProductID points at a
// document-store Product; nothing in the relational schema enforces that.
type Order struct {
	ID           int64     `json:"id"`
	ProductID    ProductID `json:"productId"`
	Quantity     int       `json:"quantity"`
	CustomerName string    `json:"customerName"`
	TotalPrice   float64   `json:"totalPrice"`
	OrderDate    time.Time `json:"orderDate"`
}

// TotalPrice computes quantity * unit price rounded to cents, matching the
// NUMERIC(10,2) column it is stored in.
func TotalPrice(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}

// NewOrder prices an order against the product it references.
func NewOrder(product *Product, quantity int, customerName string) (*Order, error) {
	o := &Order{
		ProductID:    product.ID,
		Quantity:     quantity,
		CustomerName: strings.TrimSpace(customerName),
		TotalPrice:   TotalPrice(quantity, product.Price),
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks presence-level invariants.
func (o *Order) Validate() error {
	if o.ProductID == "" {
		return NewValidationError("productId", "is required", nil)
	}
	if o.Quantity < 1 {
		return NewValidationError("quantity", "must be at least 1", nil)
	}
	if o.CustomerName == "" {
		return NewValidationError("customerName", "is required", nil)
	}
	return nil
}

// OrderPatch lists the fields an order update may change.
type OrderPatch struct {
	ProductID    *ProductID
	Quantity     *int
	CustomerName *string
}

// Validate rejects patches that would break Order invariants.
func (p OrderPatch) Validate() error {
	if p.Quantity != nil && *p.Quantity < 1 {
		return NewValidationError("quantity", "must be at least 1", nil)
	}
	if p.CustomerName != nil && strings.TrimSpace(*p.CustomerName) == "" {
		return NewValidationError("customerName", "must not be empty", nil)
	}
	return nil
}

// Reprices reports whether applying the patch to o requires a new total.
func (p OrderPatch) Reprices(o *Order) bool {
	return (p.Quantity != nil && *p.Quantity != o.Quantity) ||
		(p.ProductID != nil && *p.ProductID != o.ProductID)
}

// MovesProduct reports whether the patch points o at a different product.
func (p OrderPatch) MovesProduct(o *Order) bool {
	return p.ProductID != nil && *p.ProductID != o.ProductID
}
