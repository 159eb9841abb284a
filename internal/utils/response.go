// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/printbazaar/marketplace-backend/internal/catalog"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", resource+" not found", nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

// CatalogErrorResponse maps the catalog error taxonomy onto protocol
// statuses. Internal causes never reach the response body.
func CatalogErrorResponse(c *gin.Context, err error) {
	var cerr *catalog.Error
	message := "request failed"
	var details interface{}
	if errors.As(err, &cerr) {
		message = cerr.Message
		if cerr.Field != "" {
			details = gin.H{"field": cerr.Field}
		}
	}

	switch catalog.KindOf(err) {
	case catalog.ErrKindValidation:
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
	case catalog.ErrKindNotFound:
		ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
	case catalog.ErrKindTimeout:
		ErrorResponse(c, http.StatusGatewayTimeout, "TIMEOUT", "request timed out", nil)
	case catalog.ErrKindDataIntegrity:
		ErrorResponse(c, http.StatusInternalServerError, "DATA_INTEGRITY", "catalog item unavailable", nil)
	default:
		ErrorResponse(c, http.StatusBadGateway, "UPSTREAM_ERROR", "upstream dependency failed", nil)
	}
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}
