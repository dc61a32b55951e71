package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
	"fleet/internal/storage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	var (
		validationErr *domain.ValidationError
		integrityErr  *service.ReferentialIntegrityError
		businessErr   *service.BusinessRuleError
		storageErr    *storage.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest

	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, repository.ErrDuplicateKey),
		errors.As(err, &integrityErr):
		return http.StatusConflict

	case errors.As(err, &businessErr):
		return http.StatusUnprocessableEntity

	case errors.As(err, &storageErr):
		return http.StatusInternalServerError

	default:
		return http.StatusInternalServerError
	}
}
