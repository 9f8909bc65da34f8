package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/app/dto"
	"github.com/mrops-br/product-catalog/internal/app/service"
	"github.com/mrops-br/product-catalog/internal/domain"
	"github.com/mrops-br/product-catalog/internal/infrastructure/config"
	"github.com/mrops-br/product-catalog/internal/infrastructure/http/handler"
	"github.com/mrops-br/product-catalog/internal/infrastructure/http/response"
	"github.com/mrops-br/product-catalog/internal/infrastructure/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	validProductBody   = `{"name":"Плюмбус","description":"домашнее устройство","price":10}`
	updatedProductBody = `{"name":"Портал ган","description":"гаджет для путешествий","price":"11.50"}`
)

type ServerTestSuite struct {
	suite.Suite

	repo   *memory.ProductRepository
	server *httptest.Server
}

func (s *ServerTestSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	tp := noop.NewTracerProvider()
	mp := metricnoop.NewMeterProvider()
	tracer := tp.Tracer("test")

	s.repo = memory.NewProductRepository(tracer, logger)
	productService := service.NewProductService(s.repo, dto.ProductMapper{}, tracer, mp.Meter("test"), logger)
	productHandler := handler.NewProductHandler(productService, logger)

	srv := NewServer(&config.ServerConfig{Host: "127.0.0.1", Port: "0"}, productHandler, logger, tp, mp)
	s.server = httptest.NewServer(srv.Handler())
}

func (s *ServerTestSuite) TearDownTest() {
	s.server.Close()
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) do(method, path, body string) *http.Response {
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (s *ServerTestSuite) decode(resp *http.Response, v any) {
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(v))
}

func (s *ServerTestSuite) create() uuid.UUID {
	resp := s.do(http.MethodPost, "/products", validProductBody)
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var created dto.CreatedProductResponse
	s.decode(resp, &created)
	s.Require().NotEqual(uuid.Nil, created.ID)
	return created.ID
}

func (s *ServerTestSuite) TestCreateAndGet() {
	id := s.create()

	resp := s.do(http.MethodGet, "/products/"+id.String(), "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var info dto.InfoProductDto
	s.decode(resp, &info)
	s.Require().Equal(id, info.ID)
	s.Require().Equal("Плюмбус", *info.Name)
	s.Require().Equal("домашнее устройство", *info.Description)
	s.Require().True(decimal.NewFromInt(10).Equal(*info.Price))
}

func (s *ServerTestSuite) TestCreate_ValidationErrorListsViolations() {
	resp := s.do(http.MethodPost, "/products", `{"name":"Plumbus","price":0}`)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)

	var body response.ErrorResponse
	s.decode(resp, &body)
	s.Require().Equal("bad_request", body.Error)
	s.Require().Equal([]string{domain.ViolationIncorrectName, domain.ViolationNonPositivePrice}, body.Violations)
	s.Require().Zero(s.repo.Len())
}

func (s *ServerTestSuite) TestCreate_MalformedJSON() {
	resp := s.do(http.MethodPost, "/products", `{"name":`)
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestList() {
	resp := s.do(http.MethodGet, "/products", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var empty []dto.InfoProductDto
	s.decode(resp, &empty)
	s.Require().NotNil(empty)
	s.Require().Empty(empty)

	first := s.create()
	second := s.create()

	resp = s.do(http.MethodGet, "/products", "")
	var all []dto.InfoProductDto
	s.decode(resp, &all)
	s.Require().Len(all, 2)
	s.Require().Equal(first, all[0].ID)
	s.Require().Equal(second, all[1].ID)
}

func (s *ServerTestSuite) TestGet_NotFound() {
	resp := s.do(http.MethodGet, "/products/"+uuid.NewString(), "")
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)

	var body response.ErrorResponse
	s.decode(resp, &body)
	s.Require().Equal("not_found", body.Error)
}

func (s *ServerTestSuite) TestGet_InvalidID() {
	resp := s.do(http.MethodGet, "/products/not-a-uuid", "")
	s.Require().Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *ServerTestSuite) TestUpdate() {
	id := s.create()
	before, _ := s.repo.FindByID(s.T().Context(), id)
	created := before.CreatedAt

	resp := s.do(http.MethodPut, "/products/"+id.String(), updatedProductBody)
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	after, ok := s.repo.FindByID(s.T().Context(), id)
	s.Require().True(ok)
	s.Require().Equal(created, after.CreatedAt)
	s.Require().Equal("Портал ган", *after.Name)
	s.Require().True(decimal.RequireFromString("11.5").Equal(*after.Price))
}

func (s *ServerTestSuite) TestUpdate_NotFound() {
	resp := s.do(http.MethodPut, "/products/"+uuid.NewString(), updatedProductBody)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestDelete() {
	id := s.create()

	resp := s.do(http.MethodDelete, "/products/"+id.String(), "")
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodDelete, "/products/"+id.String(), "")
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.do(http.MethodGet, "/products/"+id.String(), "")
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *ServerTestSuite) TestHealthAndMetrics() {
	resp := s.do(http.MethodGet, "/health", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp = s.do(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
}
