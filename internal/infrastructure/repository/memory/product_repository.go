package memory

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// products holds the entities by id; order keeps their insertion order.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
	order    []uuid.UUID
	tracer   trace.Tracer
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
}

// Option configures a ProductRepository
type Option func(*ProductRepository)

// WithClock overrides the source of creation timestamps
func WithClock(now func() time.Time) Option {
	return func(r *ProductRepository) {
		r.now = now
	}
}

// WithIDGenerator overrides the source of product identifiers
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(r *ProductRepository) {
		r.newID = newID
	}
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger, opts ...Option) *ProductRepository {
	r := &ProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
		tracer:   tracer,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ domain.ProductRepository = (*ProductRepository)(nil)

// FindByID retrieves a product by ID
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, bool) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	r.mu.RLock()
	product, exists := r.products[id]
	r.mu.RUnlock()

	if !exists {
		r.logger.DebugContext(ctx, "Product not found in repository",
			slog.String("product_id", id.String()),
		)
		span.SetStatus(codes.Ok, "Product not found")
		return nil, false
	}

	r.logger.DebugContext(ctx, "Product found in repository",
		slog.String("product_id", id.String()),
	)

	span.SetStatus(codes.Ok, "Product found")
	return product, true
}

// FindAll returns a snapshot of all products in insertion order
func (r *ProductRepository) FindAll(ctx context.Context) []*domain.Product {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		products = append(products, r.products[id])
	}
	r.mu.RUnlock()

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products
}

// Save assigns a missing ID and creation time, validates and stores the product.
// A product whose ID is already stored replaces the stored one in place;
// an ID that is no longer stored is appended again.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Save")
	defer span.End()

	if product == nil {
		span.RecordError(domain.ErrNilProduct)
		span.SetStatus(codes.Error, "Nil product")
		return nil, domain.ErrNilProduct
	}

	if !product.HasID() {
		product.ID = r.newID()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = r.now()
	}

	span.SetAttributes(attribute.String("product.id", product.ID.String()))

	if err := product.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		r.logger.WarnContext(ctx, "Product rejected by validation",
			slog.String("product_id", product.ID.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	r.mu.Lock()
	if _, exists := r.products[product.ID]; !exists {
		r.order = append(r.order, product.ID)
	}
	r.products[product.ID] = product
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Product saved in repository",
		slog.String("product_id", product.ID.String()),
	)

	span.SetStatus(codes.Ok, "Product saved successfully")
	return product, nil
}

// Delete removes the product with id; unknown ids are ignored
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("product.id", id.String()))

	r.mu.Lock()
	_, exists := r.products[id]
	if exists {
		delete(r.products, id)
		r.order = slices.DeleteFunc(r.order, func(stored uuid.UUID) bool {
			return stored == id
		})
	}
	r.mu.Unlock()

	r.logger.InfoContext(ctx, "Product delete processed",
		slog.String("product_id", id.String()),
		slog.Bool("existed", exists),
	)

	span.SetStatus(codes.Ok, "Product deleted")
}

// Len returns the number of stored products
func (r *ProductRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
