package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"eventradar/internal/domain"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes the status for
// code, and encodes an APIResponse with data nil and the given error.
func WriteJSONError(w http.ResponseWriter, code domain.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// WriteError writes err as an error envelope. Typed domain errors keep their
// code and message; anything else is logged and reported as internal.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Code == domain.CodeInternal {
			logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		WriteJSONError(w, de.Code, de.Message)
		return
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	WriteJSONError(w, domain.CodeInternal, "internal error")
}

// StatusFor maps an error code to its HTTP status.
func StatusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	case domain.CodeUnauthenticated:
		return http.StatusUnauthorized
	case domain.CodePermissionDenied:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
