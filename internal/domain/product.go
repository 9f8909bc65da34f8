package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents the product entity.
// ID stays uuid.Nil and CreatedAt stays zero until the product is first saved.
type Product struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
	CreatedAt   time.Time
}

// NewProduct creates a transient product without identifier and creation time
func NewProduct(name, description *string, price *decimal.Decimal) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
	}
}

// Clone returns a copy whose pointer fields do not alias p
func (p *Product) Clone() *Product {
	c := &Product{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
	}
	if p.Name != nil {
		name := *p.Name
		c.Name = &name
	}
	if p.Description != nil {
		description := *p.Description
		c.Description = &description
	}
	if p.Price != nil {
		price := *p.Price
		c.Price = &price
	}
	return c
}

// HasID reports whether an identifier has been assigned
func (p *Product) HasID() bool {
	return p.ID != uuid.Nil
}
