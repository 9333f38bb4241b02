// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorHandler turns pipeline failures into sanitized HTTP responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// RetryAfterSeconds is advertised on failures a caller may retry later.
const RetryAfterSeconds = "30"

// ErrorResponse is the only failure shape callers ever see.
type ErrorResponse struct {
	Message   string `json:"message"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleRequestError logs err with full detail and writes the public part of it.
func (h *ErrorHandler) HandleRequestError(w http.ResponseWriter, requestID string, err error) *StandardError {
	stdErr := AsStandardError(err)
	status := HTTPStatus(stdErr.Code)

	h.logError(requestID, status, stdErr)

	if IsRetryableErrorCode(stdErr.Code) {
		w.Header().Set("Retry-After", RetryAfterSeconds)
	}

	WriteJSON(w, status, ErrorResponse{
		Message:   stdErr.Message,
		Code:      string(stdErr.Code),
		RequestID: requestID,
	})
	return stdErr
}

// WriteJSON encodes body with status. Encoding failures are dropped; headers are already sent.
func WriteJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *ErrorHandler) logError(requestID string, status int, stdErr *StandardError) {
	if h.logger == nil {
		return
	}
	h.logger.Error("Request failed", map[string]interface{}{
		"requestId":     requestID,
		"status":        status,
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"metadata":      stdErr.Metadata,
	})
}
