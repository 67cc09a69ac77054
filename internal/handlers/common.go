package handlers

import (
	"github.com/SAP-F-2025/driver-quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestFields returns the request context shared by every handler log line
func (h *BaseHandler) requestFields(c *gin.Context, additionalFields ...interface{}) []interface{} {
	fields := []interface{}{
		"request_id", utils.RequestIDFromContext(c.Request.Context()),
		"user_id", h.extractUserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := h.requestFields(c, "remote_addr", c.ClientIP(), "user_agent", c.Request.UserAgent())
	h.logger.Info(message, append(fields, additionalFields...)...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Info(message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.requestFields(c, additionalFields...)...)
}

// Helper method to extract user ID from context
func (h *BaseHandler) extractUserID(c *gin.Context) interface{} {
	if userID, exists := c.Get("user_id"); exists {
		return userID
	}
	return nil
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= 500 {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	successResp := SuccessResponse{
		Message: message,
		Data:    data,
	}

	fields := []interface{}{"status_code", statusCode}
	fields = append(fields, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, successResp)
}
