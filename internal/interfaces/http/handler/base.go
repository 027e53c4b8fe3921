package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gmh-saber/daraz-seller-gateway/internal/domain/marketplace"
	"github.com/gmh-saber/daraz-seller-gateway/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// OK sends a 200 response with the given body
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error sends the uniform error body with the given status
func (h *BaseHandler) Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(message))
}

// Fail maps a domain error onto a status code and sends the uniform error body
func (h *BaseHandler) Fail(c *gin.Context, err error) {
	h.Error(c, statusForError(err), errorMessage(err))
}

// statusForError maps domain errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, marketplace.ErrMissingAuthCode),
		errors.Is(err, marketplace.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, marketplace.ErrAccountNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks the outward-facing message for an error. Provider
// rejections carry their own human-readable message; everything else is
// reported as-is since domain errors never embed credentials.
func errorMessage(err error) string {
	var logicErr *marketplace.LogicError
	if errors.As(err, &logicErr) {
		return logicErr.Message
	}
	return err.Error()
}
