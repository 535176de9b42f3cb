// Package errors provides the standardized error taxonomy for the
// suggestion pipeline: user input errors recover locally in the dialog,
// backend errors degrade to fallbacks at the boundary where they occur, and
// malformed queue payloads are abandoned per message.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeSlotValidationFailed ErrorCode = "SLOT_VALIDATION_FAILED"

	ErrCodeQueueUnavailable ErrorCode = "QUEUE_UNAVAILABLE"
	ErrCodeEnqueueFailed    ErrorCode = "ENQUEUE_FAILED"
	ErrCodeAckFailed        ErrorCode = "ACK_FAILED"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeRecordLookupFailed ErrorCode = "RECORD_LOOKUP_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeMalformedMessage ErrorCode = "MALFORMED_MESSAGE"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewSlotValidationError marks a user input error; the dialog engine turns
// it into a corrective re-prompt, never an exception to the caller.
func NewSlotValidationError(slot, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSlotValidationFailed,
		Message:   fmt.Sprintf("Slot %s failed validation", slot),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEnqueueFailedError creates a retryable queue write error.
func NewEnqueueFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnqueueFailed,
		Message:   "Request queue write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueueUnavailableError creates a retryable queue connectivity error.
func NewQueueUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueueUnavailable,
		Message:   "Request queue unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search error.
func NewSearchQueryFailedError(cuisine string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Restaurant search query failed",
		Details:   fmt.Sprintf("cuisine: %s, error: %s", cuisine, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a search timeout error. The resolver treats
// it as an empty result, not a fatal condition.
func NewSearchTimeoutError(cuisine string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Restaurant search timed out",
		Details:   fmt.Sprintf("cuisine: %s", cuisine),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordLookupFailedError creates a store lookup error; the worker falls
// back to the shadow record instead of failing the message.
func NewRecordLookupFailedError(businessID string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordLookupFailed,
		Message:   "Record store lookup failed",
		Details:   fmt.Sprintf("businessId: %s, error: %s", businessID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a notification transport error.
// Not retryable at this layer: retry belongs to queue redelivery.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedMessageError marks a queue payload that failed schema
// validation or decoding. The message is abandoned, not retried.
func NewMalformedMessageError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedMessage,
		Message:   "Unparseable queue payload",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns how many redeliveries are worth attempting for a
// given code before a message should be abandoned.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeQueueUnavailable,
		ErrCodeEnqueueFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeRecordLookupFailed:
		return 3

	case ErrCodeSearchTimeout:
		return 2

	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SLOT"):
		return "DIALOG"
	case strings.Contains(codeStr, "QUEUE") || strings.Contains(codeStr, "ENQUEUE") || strings.Contains(codeStr, "ACK"):
		return "QUEUE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "RECORD"):
		return "STORE"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "MALFORMED"):
		return "PAYLOAD"
	default:
		return "OTHER"
	}
}
