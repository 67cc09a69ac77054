package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/driver-quiz-service/internal/services"
	"github.com/gin-gonic/gin"
)

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "driver-quiz-service",
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	switch {
	case errors.Is(err, services.ErrInvalidDateRange):
		h.RespondWithError(c, http.StatusBadRequest, "end_date must not be before start_date", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Driver not found", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
