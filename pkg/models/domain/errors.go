package domain

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	ErrCodeInvalidEmail      ErrorCode = "INVALID_EMAIL"
	ErrCodeExportFailed      ErrorCode = "EXPORT_FAILED"
	ErrCodeDeliveryNotFound  ErrorCode = "DELIVERY_NOT_FOUND"
	ErrCodeUnknownProvider   ErrorCode = "UNKNOWN_PROVIDER"
	ErrCodeScenarioNotFound  ErrorCode = "SCENARIO_NOT_FOUND"
	ErrCodeInvalidRequest    ErrorCode = "INVALID_REQUEST"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
)

// StandardError is a user facing failure. None of them are retried.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func NewStandardError(code ErrorCode, message, details string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
