package dto

import (
	"errors"
	"net/http"

	"github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"
)

// Transport-level error codes. Domain failures keep their own code.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// StatusForKind maps a domain error kind onto an HTTP status
func StatusForKind(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError builds the status and envelope for err. Errors that are not
// domain errors are reported as a generic internal error.
func FromError(err error, requestID string) (int, Response) {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Kind != shared.KindInternal {
		resp := NewErrorResponse(de.Code, de.Message, requestID)
		resp.Error.Details = de.Details
		return StatusForKind(de.Kind), resp
	}
	return http.StatusInternalServerError, NewErrorResponse(ErrCodeInternal, "An unexpected error occurred", requestID)
}
