package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type Meta struct {
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Total      int64           `json:"total,omitempty"`
	Count      int             `json:"count,omitempty"`
}

func writeSuccess(c *gin.Context, statusCode int, message string, data interface{}, meta *Meta) {
	c.JSON(statusCode, APIResponse{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		Meta:      meta,
		Timestamp: time.Now(),
	})
}

func writeError(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	c.JSON(statusCode, APIResponse{
		Status: StatusError,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	})
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	writeSuccess(c, http.StatusOK, message, data, nil)
}

func SuccessResponseWithMeta(c *gin.Context, message string, data interface{}, meta *Meta) {
	writeSuccess(c, http.StatusOK, message, data, meta)
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	writeSuccess(c, http.StatusCreated, message, data, nil)
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	writeError(c, statusCode, code, message, nil)
}

func ErrorResponseWithDetails(c *gin.Context, statusCode int, code, message string, details map[string]string) {
	writeError(c, statusCode, code, message, details)
}

func ValidationErrorResponse(c *gin.Context, errors map[string]string) {
	writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", ErrValidationFailed, errors)
}

func BadRequestResponse(c *gin.Context, message string) {
	writeError(c, http.StatusBadRequest, "BAD_REQUEST", message, nil)
}

func UnauthorizedResponse(c *gin.Context) {
	writeError(c, http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized, nil)
}

func ForbiddenResponse(c *gin.Context) {
	writeError(c, http.StatusForbidden, "FORBIDDEN", ErrForbidden, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	writeError(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func ConflictResponse(c *gin.Context, message string) {
	writeError(c, http.StatusConflict, "CONFLICT", message, nil)
}

func InternalServerErrorResponse(c *gin.Context) {
	writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternalServer, nil)
}
