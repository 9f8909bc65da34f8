package dto

import (
	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductDto represents the request to create or update a product
type ProductDto struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// InfoProductDto represents the product read model
type InfoProductDto struct {
	ID          uuid.UUID        `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

// CreatedProductResponse is returned after a successful create
type CreatedProductResponse struct {
	ID uuid.UUID `json:"id"`
}

// Mapper converts between transfer objects and the domain entity
type Mapper interface {
	ToProduct(productDto ProductDto) *domain.Product
	ToInfoProductDto(product *domain.Product) InfoProductDto
	Merge(product *domain.Product, productDto ProductDto) *domain.Product
}

// ProductMapper is the default Mapper
type ProductMapper struct{}

var _ Mapper = ProductMapper{}

// ToProduct maps the dto to a transient product without ID and creation time.
// The product owns its values; later changes to the dto do not reach it.
func (ProductMapper) ToProduct(productDto ProductDto) *domain.Product {
	return domain.NewProduct(productDto.Name, productDto.Description, productDto.Price).Clone()
}

// ToInfoProductDto maps the product without its creation time
func (ProductMapper) ToInfoProductDto(product *domain.Product) InfoProductDto {
	return InfoProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
	}
}

// Merge returns a copy of product with the non-nil dto fields applied.
// ID and CreatedAt are kept; neither product nor the dto is aliased by the result.
func (ProductMapper) Merge(product *domain.Product, productDto ProductDto) *domain.Product {
	merged := product.Clone()
	if productDto.Name != nil {
		name := *productDto.Name
		merged.Name = &name
	}
	if productDto.Description != nil {
		description := *productDto.Description
		merged.Description = &description
	}
	if productDto.Price != nil {
		price := *productDto.Price
		merged.Price = &price
	}
	return merged
}

// ToInfoProductDtoList maps every product, preserving order
func ToInfoProductDtoList(mapper Mapper, products []*domain.Product) []InfoProductDto {
	infos := make([]InfoProductDto, len(products))
	for i, p := range products {
		infos[i] = mapper.ToInfoProductDto(p)
	}
	return infos
}
