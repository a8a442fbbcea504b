package dto

import (
	"net/http"

	"github.com/shopdesk/backoffice/internal/domain/shared"
)

// Transport-level error codes. Domain rule codes pass through unchanged.
const (
	// ErrCodeValidation is used when request binding or validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed path parameters or bodies
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeNotFound is used for unmatched routes
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeMethodNotAllowed is used when a route exists for another method
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	// ErrCodeDuplicateRequest is used when an Idempotency-Key was already seen
	ErrCodeDuplicateRequest = "DUPLICATE_REQUEST"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeForbidden is used when the client address may not reach an endpoint
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInternal is used for unexpected failures
	ErrCodeInternal = "INTERNAL_ERROR"
)

// kindHTTPStatus maps the closed domain error taxonomy to HTTP status codes
var kindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation: http.StatusBadRequest,
	shared.KindNotFound:   http.StatusNotFound,
	shared.KindConflict:   http.StatusConflict,
	shared.KindInternal:   http.StatusInternalServerError,
}

// HTTPStatusForKind returns the status for a domain error kind, 500 when unknown
func HTTPStatusForKind(kind shared.ErrorKind) int {
	if status, ok := kindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
