package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folioreads/folio-admin/internal/httputil"
	"github.com/folioreads/folio-admin/internal/metrics"
	"github.com/folioreads/folio-admin/internal/models"
)

// Error code constants for standardized API responses.
const (
	ErrCodeInvalidRequest  = "invalid_request"
	ErrCodeNotFound        = "not_found"
	ErrCodeInternalError   = "internal_error"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeForbidden       = "forbidden"
	ErrCodeConflict        = "conflict"
	ErrCodeNotEditable     = "not_editable"
	ErrCodeRateLimited     = "rate_limited"
	ErrCodeValidationError = "validation_error"
	ErrCodeUnavailable     = "unavailable"
)

// versionConflictMessage tells the caller how to recover from a lost
// optimistic-concurrency race.
const versionConflictMessage = "setting changed since you loaded it — reload and retry"

// respondError writes a standardized JSON error response, pulling the request
// ID from the Gin context (set by the request ID middleware).
func respondError(c *gin.Context, status int, code, message string) {
	metrics.ErrorsTotal.WithLabelValues(code).Inc()
	httputil.RespondError(c, status, code, message)
}

// respondDomainError maps a service-layer error onto the HTTP surface.
// Returns false when the error is not a known domain error, in which case
// the handler logs it and responds 500 itself.
func respondDomainError(c *gin.Context, err error) bool {
	switch {
	case models.IsValidation(err):
		respondError(c, http.StatusBadRequest, ErrCodeValidationError, err.Error())
	case errors.Is(err, models.ErrForbidden):
		respondError(c, http.StatusForbidden, ErrCodeForbidden, "not authorized for this action")
	case errors.Is(err, models.ErrSettingNotEditable):
		respondError(c, http.StatusForbidden, ErrCodeNotEditable, "setting is not editable")
	case errors.Is(err, models.ErrSettingNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "setting not found")
	case errors.Is(err, models.ErrChangeNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "setting change not found")
	case errors.Is(err, models.ErrUserNotFound):
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
	case errors.Is(err, models.ErrVersionConflict):
		respondError(c, http.StatusConflict, ErrCodeConflict, versionConflictMessage)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "storage temporarily unavailable")
	default:
		return false
	}

	return true
}
