package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/app/dto"
	"github.com/mrops-br/product-catalog/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	mapper                dto.Mapper
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	mapper dto.Mapper,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		mapper:                mapper,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

func (s *ProductService) recordOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// Get retrieves a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*dto.InfoProductDto, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Get")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	product, ok := s.repo.FindByID(ctx, id)
	if !ok {
		err := domain.NewNotFoundError(id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.String("product_id", id.String()),
		)
		s.recordOperation(ctx, "read", "not_found")
		return nil, err
	}

	s.recordOperation(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	info := s.mapper.ToInfoProductDto(product)
	return &info, nil
}

// GetAll retrieves all products in repository order
func (s *ProductService) GetAll(ctx context.Context) []dto.InfoProductDto {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetAll")
	defer span.End()

	products := s.repo.FindAll(ctx)
	span.SetAttributes(attribute.Int("product.count", len(products)))

	s.recordOperation(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return dto.ToInfoProductDtoList(s.mapper, products)
}

// Create persists a new product and returns its generated ID
func (s *ProductService) Create(ctx context.Context, req *dto.ProductDto) (uuid.UUID, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Create")
	defer span.End()

	if req == nil {
		span.RecordError(domain.ErrNilProductDto)
		span.SetStatus(codes.Error, "Nil request")
		s.recordOperation(ctx, "create", "failure")
		return uuid.Nil, domain.ErrNilProductDto
	}

	product := s.mapper.ToProduct(*req)

	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to create product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "create", "failure")
		return uuid.Nil, err
	}

	span.SetAttributes(attribute.String("product.id", saved.ID.String()))

	s.productCreatedCounter.Add(ctx, 1)
	s.recordOperation(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.String("product_id", saved.ID.String()),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return saved.ID, nil
}

// Update merges req into the product with id and saves it.
// ID and creation time of the stored product are kept.
// Lookup and save take the repository lock separately: a Delete that lands
// between them is overwritten and the product is stored again at the end of
// the listing order.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *dto.ProductDto) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.Update")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	product, ok := s.repo.FindByID(ctx, id)
	if !ok {
		err := domain.NewNotFoundError(id)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product to update not found",
			slog.String("product_id", id.String()),
		)
		s.recordOperation(ctx, "update", "not_found")
		return err
	}

	if req == nil {
		span.RecordError(domain.ErrNilProductDto)
		span.SetStatus(codes.Error, "Nil request")
		s.recordOperation(ctx, "update", "failure")
		return domain.ErrNilProductDto
	}

	if _, err := s.repo.Save(ctx, s.mapper.Merge(product, *req)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to update product",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "update", "failure")
		return err
	}

	s.recordOperation(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.String("product_id", id.String()),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// Delete removes the product with id; unknown ids are not an error
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) {
	ctx, span := s.tracer.Start(ctx, "ProductService.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	s.repo.Delete(ctx, id)
	s.recordOperation(ctx, "delete", "success")

	span.SetStatus(codes.Ok, "Product deleted")
}
