package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mrops-br/product-catalog/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error      string   `json:"error"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorType(status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusInternalServerError:
		return "internal_server_error"
	}
	return "error"
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, err error) {
	body := ErrorResponse{
		Error:   errorType(status),
		Message: err.Error(),
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		body.Violations = validationErr.Violations
	}

	JSON(w, status, body)
}

// StatusFor maps a service error to its HTTP status
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNilProductDto):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
