package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mrops-br/product-catalog/internal/app/dto"
	"github.com/mrops-br/product-catalog/internal/app/service"
	"github.com/mrops-br/product-catalog/internal/infrastructure/http/response"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service  *service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// productID reads and validates the {id} path parameter
func (h *ProductHandler) productID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if err := h.validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, fmt.Errorf("invalid product id %q", raw)
	}
	return uuid.Parse(raw)
}

func (h *ProductHandler) decodeProduct(w http.ResponseWriter, r *http.Request) (*dto.ProductDto, bool) {
	var req dto.ProductDto
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Error(w, http.StatusBadRequest, err)
		return nil, false
	}
	return &req, true
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	id, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusCreated, dto.CreatedProductResponse{ID: id})
}

// GetProduct handles GET /products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.productID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// ListProducts handles GET /products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.service.GetAll(r.Context()))
}

// UpdateProduct handles PUT /products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.productID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	req, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}

	if err := h.service.Update(r.Context(), id, req); err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteProduct handles DELETE /products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := h.productID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	h.service.Delete(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
