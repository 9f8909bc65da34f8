package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the contract for product storage.
// Implementations synchronize internally; callers never lock.
type ProductRepository interface {
	// FindByID returns the stored product and true, or nil and false
	FindByID(ctx context.Context, id uuid.UUID) (*Product, bool)
	FindAll(ctx context.Context) []*Product
	// Save assigns a missing ID and CreatedAt, validates and stores the product.
	// An invalid product is not stored.
	Save(ctx context.Context, product *Product) (*Product, error)
	// Delete removes the product with id, if any
	Delete(ctx context.Context, id uuid.UUID)
}
