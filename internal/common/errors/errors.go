// Package errors provides standardized error handling for the advice pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"

	ErrCodeInputValidationFailed ErrorCode = "INPUT_VALIDATION_FAILED"
	ErrCodeInvalidScore          ErrorCode = "INVALID_SCORE"
	ErrCodeUnknownAxis           ErrorCode = "UNKNOWN_AXIS"
	ErrCodeUnknownRankTier       ErrorCode = "UNKNOWN_RANK_TIER"

	ErrCodeUpstreamRetriesExhausted ErrorCode = "UPSTREAM_RETRIES_EXHAUSTED"
	ErrCodeUpstreamFatalStatus      ErrorCode = "UPSTREAM_FATAL_STATUS"
	ErrCodeMalformedUpstream        ErrorCode = "MALFORMED_UPSTREAM_RESPONSE"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
// Message is safe to show to callers; Details is for operator logs only.
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

// WithMetadata returns e with key set in its metadata.
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

// NewConfigurationError reports a missing or invalid process-wide setting.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "API key not configured.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInputValidationError reports an unparsable or schema-violating request body.
func NewInputValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputValidationFailed,
		Message:   "Invalid assessment input.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidScoreError reports a score outside [0,10].
func NewInvalidScoreError(axis string, score int) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidScore,
		Message:   "Score must be an integer between 0 and 10.",
		Details:   fmt.Sprintf("axis: %s, score: %d", axis, score),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownAxisError reports an unrecognized skill axis.
func NewUnknownAxisError(axis string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownAxis,
		Message:   "Unknown skill axis.",
		Details:   fmt.Sprintf("axis: %s", axis),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownRankTierError reports a rank tier outside the fixed set.
func NewUnknownRankTierError(rank string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownRankTier,
		Message:   "Unknown player rank.",
		Details:   fmt.Sprintf("rank: %s", rank),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRetriesExhaustedError is returned once the invoker has used its whole attempt budget.
func NewRetriesExhaustedError(attempts int, err error) *StandardError {
	details := fmt.Sprintf("attempts: %d", attempts)
	if err != nil {
		details = fmt.Sprintf("attempts: %d, last error: %s", attempts, err.Error())
	}
	return &StandardError{
		Code:      ErrCodeUpstreamRetriesExhausted,
		Message:   "Failed to generate AI advice after multiple retries.",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamFatalStatusError reports a non-2xx, non-429 upstream status. Never retried.
func NewUpstreamFatalStatusError(status int, body string) *StandardError {
	stdErr := &StandardError{
		Code:      ErrCodeUpstreamFatalStatus,
		Message:   "Failed to get advice from AI.",
		Details:   fmt.Sprintf("status: %d, body: %s", status, body),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
	return stdErr.WithMetadata("upstreamStatus", status)
}

// NewMalformedUpstreamError reports a 2xx response without usable text.
func NewMalformedUpstreamError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedUpstream,
		Message:   "Failed to get advice from AI (unexpected response).",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything that escaped classification.
func NewInternalError(err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Error Conversion to HTTP
// ==========================

// HTTPStatusMapping maps error codes to the status the boundary answers with.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeConfiguration:            http.StatusInternalServerError,
	ErrCodeInputValidationFailed:    http.StatusBadRequest,
	ErrCodeInvalidScore:             http.StatusBadRequest,
	ErrCodeUnknownAxis:              http.StatusBadRequest,
	ErrCodeUnknownRankTier:          http.StatusBadRequest,
	ErrCodeUpstreamRetriesExhausted: http.StatusServiceUnavailable,
	ErrCodeUpstreamFatalStatus:      http.StatusBadGateway,
	ErrCodeMalformedUpstream:        http.StatusBadGateway,
	ErrCodeInternal:                 http.StatusInternalServerError,
}

// HTTPStatus returns the transport status for code, 500 when unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AsStandardError normalizes err, wrapping foreign errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsCode reports whether err is a StandardError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

// ==========================
// 4. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable by a caller.
func IsRetryableErrorCode(code ErrorCode) bool {
	return code == ErrCodeUpstreamRetriesExhausted
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.HasPrefix(codeStr, "UPSTREAM") || strings.Contains(codeStr, "MALFORMED"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "UNKNOWN") || strings.Contains(codeStr, "VALIDATION"):
		return "INPUT"
	default:
		return "INTERNAL"
	}
}
