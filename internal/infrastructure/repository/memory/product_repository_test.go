package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/trace/noop"
)

func ptr[T any](v T) *T {
	return &v
}

var (
	productID        = uuid.MustParse("76dbb74c-2f08-4bc0-8029-aed02147e737")
	missingProductID = uuid.MustParse("76dbb74c-2f08-4bc0-8029-aed02147e738")
	generatedID      = uuid.MustParse("d3d75177-f087-4c70-ae30-05d947733c4e")
	productCreated   = time.Date(2023, 10, 28, 11, 17, 0, 0, time.UTC)
	clockTime        = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
)

func newProduct() *domain.Product {
	return &domain.Product{
		Name:        ptr("Плюмбус"),
		Description: ptr("домашнее устройство"),
		Price:       ptr(decimal.NewFromInt(10)),
	}
}

type ProductRepositoryTestSuite struct {
	suite.Suite

	ctx  context.Context
	repo *ProductRepository
}

func (s *ProductRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = NewProductRepository(
		noop.NewTracerProvider().Tracer("test"),
		slog.New(slog.DiscardHandler),
	)
}

func TestProductRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProductRepositoryTestSuite))
}

func (s *ProductRepositoryTestSuite) TestFindByID_EmptyStore() {
	product, ok := s.repo.FindByID(s.ctx, missingProductID)

	s.Require().False(ok)
	s.Require().Nil(product)
}

func (s *ProductRepositoryTestSuite) TestFindByID_UnknownID() {
	_, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	product, ok := s.repo.FindByID(s.ctx, missingProductID)
	s.Require().False(ok)
	s.Require().Nil(product)
}

func (s *ProductRepositoryTestSuite) TestFindAll_EmptyStore() {
	products := s.repo.FindAll(s.ctx)

	s.Require().NotNil(products)
	s.Require().Empty(products)
}

func (s *ProductRepositoryTestSuite) TestSave_AssignsIDAndCreated() {
	expected := newProduct()

	saved, err := s.repo.Save(s.ctx, expected)
	s.Require().NoError(err)

	s.Require().NotEqual(uuid.Nil, saved.ID)
	s.Require().False(saved.CreatedAt.IsZero())
	s.Require().Equal("Плюмбус", *saved.Name)
	s.Require().Equal("домашнее устройство", *saved.Description)
	s.Require().True(decimal.NewFromInt(10).Equal(*saved.Price))

	found, ok := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().True(ok)
	s.Require().Same(saved, found)
}

func (s *ProductRepositoryTestSuite) TestSave_UsesInjectedClockAndIDGenerator() {
	repo := NewProductRepository(
		noop.NewTracerProvider().Tracer("test"),
		slog.New(slog.DiscardHandler),
		WithClock(func() time.Time { return clockTime }),
		WithIDGenerator(func() uuid.UUID { return generatedID }),
	)

	saved, err := repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)
	s.Require().Equal(generatedID, saved.ID)
	s.Require().Equal(clockTime, saved.CreatedAt)
}

func (s *ProductRepositoryTestSuite) TestSave_KeepsExistingID() {
	product := newProduct()
	product.ID = productID

	saved, err := s.repo.Save(s.ctx, product)
	s.Require().NoError(err)
	s.Require().Equal(productID, saved.ID)
	s.Require().False(saved.CreatedAt.IsZero())
}

func (s *ProductRepositoryTestSuite) TestSave_KeepsExistingIDAndCreated() {
	product := newProduct()
	product.ID = productID
	product.CreatedAt = productCreated

	saved, err := s.repo.Save(s.ctx, product)
	s.Require().NoError(err)
	s.Require().Equal(productID, saved.ID)
	s.Require().Equal(productCreated, saved.CreatedAt)
}

func (s *ProductRepositoryTestSuite) TestSave_ResaveReplacesInPlace() {
	first, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)
	second, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	updated := first.Clone()
	updated.Name = ptr("Портал ган")
	_, err = s.repo.Save(s.ctx, updated)
	s.Require().NoError(err)

	products := s.repo.FindAll(s.ctx)
	s.Require().Len(products, 2)
	s.Require().Equal(first.ID, products[0].ID)
	s.Require().Equal("Портал ган", *products[0].Name)
	s.Require().Equal(first.CreatedAt, products[0].CreatedAt)
	s.Require().Equal(second.ID, products[1].ID)
}

func (s *ProductRepositoryTestSuite) TestSave_InvalidProductIsNotStored() {
	tests := []struct {
		name   string
		mutate func(p *domain.Product)
	}{
		{name: "nil name", mutate: func(p *domain.Product) { p.Name = nil }},
		{name: "invalid name", mutate: func(p *domain.Product) { p.Name = ptr("Plumbus") }},
		{name: "invalid description", mutate: func(p *domain.Product) { p.Description = ptr("all-purpose home device") }},
		{name: "zero price", mutate: func(p *domain.Product) { p.Price = ptr(decimal.Zero) }},
		{name: "nil price", mutate: func(p *domain.Product) { p.Price = nil }},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			before := s.repo.Len()
			product := newProduct()
			tt.mutate(product)

			saved, err := s.repo.Save(s.ctx, product)
			s.Require().Error(err)
			s.Require().ErrorIs(err, domain.ErrValidation)
			s.Require().Nil(saved)
			s.Require().Equal(before, s.repo.Len())
		})
	}
}

func (s *ProductRepositoryTestSuite) TestSave_NilProduct() {
	saved, err := s.repo.Save(s.ctx, nil)

	s.Require().ErrorIs(err, domain.ErrNilProduct)
	s.Require().Nil(saved)
	s.Require().Zero(s.repo.Len())
}

func (s *ProductRepositoryTestSuite) TestDelete_RemovesProduct() {
	saved, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	s.repo.Delete(s.ctx, saved.ID)

	_, ok := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().False(ok)
	s.Require().Empty(s.repo.FindAll(s.ctx))
}

func (s *ProductRepositoryTestSuite) TestDelete_UnknownIDIsNoOp() {
	_, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	s.Require().NotPanics(func() {
		s.repo.Delete(s.ctx, missingProductID)
	})
	s.Require().Equal(1, s.repo.Len())
}

func (s *ProductRepositoryTestSuite) TestFindAll_ReturnsSnapshot() {
	_, err := s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	snapshot := s.repo.FindAll(s.ctx)
	_, err = s.repo.Save(s.ctx, newProduct())
	s.Require().NoError(err)

	s.Require().Len(snapshot, 1)
	s.Require().Len(s.repo.FindAll(s.ctx), 2)
}

func (s *ProductRepositoryTestSuite) TestSave_TwoConcurrentCallers() {
	var wg sync.WaitGroup
	ids := make([]uuid.UUID, 2)

	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			saved, err := s.repo.Save(s.ctx, newProduct())
			if err == nil {
				ids[i] = saved.ID
			}
		}()
	}
	wg.Wait()

	s.Require().NotEqual(uuid.Nil, ids[0])
	s.Require().NotEqual(uuid.Nil, ids[1])
	s.Require().NotEqual(ids[0], ids[1])

	products := s.repo.FindAll(s.ctx)
	s.Require().Len(products, 2)
	stored := []uuid.UUID{products[0].ID, products[1].ID}
	s.Require().ElementsMatch(ids, stored)
}

func (s *ProductRepositoryTestSuite) TestConcurrentSaveFindDelete() {
	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				saved, err := s.repo.Save(s.ctx, newProduct())
				if err != nil {
					panic(fmt.Sprintf("worker %d: %v", w, err))
				}
				if _, ok := s.repo.FindByID(s.ctx, saved.ID); !ok {
					panic(fmt.Sprintf("worker %d: saved product %s not found", w, saved.ID))
				}
				for _, p := range s.repo.FindAll(s.ctx) {
					_ = p.ID
				}
				if i%2 == 1 {
					s.repo.Delete(s.ctx, saved.ID)
				}
			}
		}(w)
	}
	wg.Wait()

	s.Require().Equal(workers*perWorker/2, s.repo.Len())
	s.Require().Len(s.repo.FindAll(s.ctx), workers*perWorker/2)
}
