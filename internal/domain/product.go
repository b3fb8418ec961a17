package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductID is a validated reference to a Product document. Orders carry it
// as their productId column, so it is the one value both stores agree on.
// The zero value is not a valid reference.
type ProductID string

// ParseProductID validates s as a document-store identifier (24 hex chars).
func ParseProductID(s string) (ProductID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
	if err != nil {
		return "", NewValidationError("productId", "has invalid format", ErrInvalidID)
	}
	return ProductID(oid.Hex()), nil
}

// ProductIDFromObjectID converts a store-generated ObjectID.
func ProductIDFromObjectID(oid primitive.ObjectID) ProductID {
	return ProductID(oid.Hex())
}

// ObjectID returns the document-store form of the reference.
func (id ProductID) ObjectID() (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, NewValidationError("productId", "has invalid format", ErrInvalidID)
	}
	return oid, nil
}

func (id ProductID) String() string {
	return string(id)
}

// Product is a catalog entry held in the document store.
type Product struct {
	ID               ProductID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	Category         string    `json:"category"`
	Stock            int       `json:"stock"`
	TotalOrdersCount int       `json:"totalOrdersCount"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// NewProduct builds a Product with a zero order counter and fresh timestamps.
func NewProduct(name, description string, price float64, category string, stock int) (*Product, error) {
	now := time.Now().UTC()
	p := &Product{
		Name:        strings.TrimSpace(name),
		Description: description,
		Price:       price,
		Category:    category,
		Stock:       stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the presence-level invariants of a Product.
func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "is required", nil)
	}
	if p.Price < 0 {
		return NewValidationError("price", "must not be negative", nil)
	}
	return nil
}

// ProductPatch lists the fields a partial update may change. Nil fields are
// left untouched. totalOrdersCount is deliberately absent.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Stock       *int
}

// Validate rejects patches that would break Product invariants.
func (p ProductPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return NewValidationError("name", "must not be empty", nil)
	}
	if p.Price != nil && *p.Price < 0 {
		return NewValidationError("price", "must not be negative", nil)
	}
	return nil
}
