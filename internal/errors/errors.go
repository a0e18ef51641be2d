package errors

import (
	"net/http"
	"os"
	"strings"
	"time"

	"codeberg.org/animagen/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for terminal errors
//     These functions handle both logging and HTTP response
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// represents a standardized error response
type ErrorResponse struct {
	Error         string `json:"error"`                    // error code (e.g., "validation_error")
	Message       string `json:"message"`                  // user-friendly message
	TimeRemaining *int64 `json:"time_remaining,omitempty"` // seconds until a rate-limited caller may retry
}

// standard error codes
const (
	CodeBadRequest      = "bad_request"
	CodeValidationError = "validation_error"
	CodePayloadTooLarge = "payload_too_large"
	CodeRequestTimeout  = "request_timeout"
	CodeTooManyRequests = "too_many_requests"
	CodeServerError     = "server_error"
)

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	})
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, message string) {
	if message == "" {
		message = "validation failed"
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
	})
}

// returns a 413 payload too large error
func PayloadTooLarge(c *gin.Context, message string) {
	if message == "" {
		message = "request body too large"
	}

	c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
		Error:   CodePayloadTooLarge,
		Message: message,
	})
}

// returns a 408 request timeout error
func RequestTimeout(c *gin.Context, message string) {
	if message == "" {
		message = "request timed out"
	}

	c.JSON(http.StatusRequestTimeout, ErrorResponse{
		Error:   CodeRequestTimeout,
		Message: message,
	})
}

// returns a 429 too many requests error with the remaining cooldown
func TooManyRequests(c *gin.Context, message string, retryAfter time.Duration) {
	if message == "" {
		message = "too many requests"
	}

	remaining := int64(retryAfter / time.Second)
	if remaining < 1 {
		remaining = 1
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:         CodeTooManyRequests,
		Message:       message,
		TimeRemaining: &remaining,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	// log full error server-side with context
	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	// return sanitized error to client
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: sanitizeError(message, err),
	})
}

// sanitizes error messages for production
func sanitizeError(message string, err error) string {
	if err == nil {
		return message
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		return message + ": " + err.Error()
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return "upstream request timed out"
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "network") {
		return "connection error occurred"
	}

	return message
}
