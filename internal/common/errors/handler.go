// internal/common/errors/handler.go
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorHandler writes StandardErrors as JSON responses for the sink.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Respond logs err and aborts the request with {"error": message}, the body
// shape the wizard's submission coordinator reads.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := AsStandardError(err)
	status := HTTPStatus(stdErr.Code)

	if h.logger != nil {
		h.logger.Error("Request failed", map[string]interface{}{
			"path":          c.FullPath(),
			"method":        c.Request.Method,
			"status":        status,
			"errorCode":     string(stdErr.Code),
			"message":       stdErr.Message,
			"details":       stdErr.Details,
			"errorCategory": GetErrorCategory(stdErr.Code),
		})
	}

	c.AbortWithStatusJSON(status, gin.H{"error": stdErr.Message})
}

// HTTPStatus maps an error code to the sink's response status. Unparsable
// bodies answer 500, matching the reference endpoint.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeValidationFailed, ErrCodeInvalidFieldValue, ErrCodeUnknownPath:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
