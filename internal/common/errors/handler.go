// internal/common/errors/handler.go
package errors

import (
	"time"
)

// Disposition tells the worker loop what to do with a delivery whose
// processing failed.
type Disposition int

const (
	// Redeliver leaves the delivery unacknowledged so the queue's
	// visibility timeout returns it.
	Redeliver Disposition = iota
	// Abandon acknowledges the delivery away; the failure is terminal for
	// this message (poison payload, non-retryable error).
	Abandon
)

// ErrorHandler normalizes processing errors at the worker boundary and
// decides between redelivery and abandonment.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleMessageError logs a per-message failure with context and returns the
// disposition for the delivery. It never panics and never propagates.
func (h *ErrorHandler) HandleMessageError(token, sessionID string, err error) Disposition {
	stdErr := h.normalizeError(err)

	h.logger.Error("message processing failed", map[string]interface{}{
		"deliveryToken": token,
		"sessionId":     sessionID,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"retries":       GetRetryCount(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
	})

	if stdErr.Retryable && GetRetryCount(stdErr.Code) > 0 {
		return Redeliver
	}
	return Abandon
}

// normalizeError ensures we always have a StandardError.
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
