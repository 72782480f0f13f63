// Package errors provides standardized error handling for the registration wizard and its sink.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Wizard / validation
	ErrCodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeSubmissionInProgress ErrorCode = "SUBMISSION_IN_PROGRESS"
	ErrCodeUnknownPath          ErrorCode = "UNKNOWN_FIELD_PATH"
	ErrCodeInvalidFieldValue    ErrorCode = "INVALID_FIELD_VALUE"

	// Submission
	ErrCodeSubmissionFailed    ErrorCode = "SUBMISSION_FAILED"
	ErrCodeSinkUnreachable     ErrorCode = "SINK_UNREACHABLE"
	ErrCodeSerializationFailed ErrorCode = "SERIALIZATION_FAILED"

	// Sink
	ErrCodeMalformedPayload ErrorCode = "MALFORMED_PAYLOAD"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// User-facing messages shown as the global wizard notice.
const (
	MsgBusinessDetailsInvalid = "Please fill in all required business details correctly."
	MsgFormInvalid            = "Please correct the highlighted fields before submitting."
	MsgSubmissionFailed       = "Failed to submit business details"
	MsgSubmissionUnexpected   = "Failed to submit business details. Please try again."
	MsgSubmissionInProgress   = "A submission is already in progress."
	MsgPayloadUnprocessable   = "Failed to process business data"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError reports a blocked tab transition or submit.
func NewValidationFailedError(message string, failedFields []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   message,
		Details:   fmt.Sprintf("failed fields: %s", strings.Join(failedFields, ", ")),
		Retryable: false,
		Metadata:  map[string]interface{}{"fields": failedFields},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError reports an action not allowed on the current tab.
func NewInvalidTransitionError(action, tab string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidTransition,
		Message:   fmt.Sprintf("Cannot %s from the %s tab", action, tab),
		Details:   fmt.Sprintf("action: %s, tab: %s", action, tab),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionInProgressError rejects a second concurrent submit.
func NewSubmissionInProgressError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSubmissionInProgress,
		Message:   MsgSubmissionInProgress,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownPathError reports a path the document does not have.
func NewUnknownPathError(path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownPath,
		Message:   fmt.Sprintf("Unknown field path %q", path),
		Details:   fmt.Sprintf("path: %s", path),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFieldValueError reports a value the path cannot hold.
func NewInvalidFieldValueError(path, reason string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFieldValue,
		Message:   fmt.Sprintf("Invalid value for %q", path),
		Details:   reason,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSubmissionFailedError carries the message the sink returned, or the
// generic failure message when the sink gave none.
func NewSubmissionFailedError(statusCode int, sinkMessage string) *StandardError {
	message := sinkMessage
	if strings.TrimSpace(message) == "" {
		message = MsgSubmissionFailed
	}
	return &StandardError{
		Code:      ErrCodeSubmissionFailed,
		Message:   message,
		Details:   fmt.Sprintf("status: %d", statusCode),
		Retryable: false,
		Metadata:  map[string]interface{}{"statusCode": statusCode},
		Timestamp: time.Now().UTC(),
	}
}

// NewSinkUnreachableError wraps a transport failure.
func NewSinkUnreachableError(endpoint string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSinkUnreachable,
		Message:   MsgSubmissionUnexpected,
		Details:   fmt.Sprintf("endpoint: %s, error: %s", endpoint, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewSerializationFailedError wraps a payload build or schema failure.
func NewSerializationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSerializationFailed,
		Message:   MsgSubmissionUnexpected,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewMalformedPayloadError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedPayload,
		Message:   MsgPayloadUnprocessable,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewRateLimitedError(clientIP string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many requests",
		Details:   fmt.Sprintf("client: %s", clientIP),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   MsgSubmissionUnexpected,
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// AsStandardError normalizes any error into a StandardError.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// UserMessage returns the text to show the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return AsStandardError(err).Message
}

// IsRetryableErrorCode reports whether the user may simply try again.
func IsRetryableErrorCode(code ErrorCode) bool {
	switch code {
	case ErrCodeSinkUnreachable, ErrCodeSubmissionInProgress, ErrCodeRateLimited:
		return true
	default:
		return false
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "FIELD") || strings.Contains(codeStr, "PATH"):
		return "VALIDATION"
	case strings.Contains(codeStr, "TRANSITION") || strings.Contains(codeStr, "IN_PROGRESS"):
		return "WIZARD"
	case strings.Contains(codeStr, "SUBMISSION") || strings.Contains(codeStr, "SINK") || strings.Contains(codeStr, "SERIALIZATION"):
		return "SUBMISSION"
	case strings.Contains(codeStr, "PAYLOAD") || strings.Contains(codeStr, "RATE"):
		return "SINK"
	default:
		return "OTHER"
	}
}
