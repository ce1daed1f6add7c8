package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/pkg/logger"
	"github.com/gin-gonic/gin"
)

var statusTable = []struct {
	err    error
	status int
	kind   string
	msg    string
}{
	{apperr.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated", "UnAuthorized"},
	{apperr.ErrInvalidCredential, http.StatusForbidden, "invalid_credential", "Forbidden access"},
	{apperr.ErrForbidden, http.StatusForbidden, "forbidden", "Forbidden access"},
	{apperr.ErrInvalidState, http.StatusConflict, "invalid_state", "No profile for this account"},
	{apperr.ErrNotFound, http.StatusNotFound, "not_found", "Not found"},
	{apperr.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "Invalid request"},
	{apperr.ErrUnavailable, http.StatusServiceUnavailable, "unavailable", "Service temporarily unavailable"},
}

// Status maps an error to the HTTP status and client message for its kind.
// Unknown errors are 500.
func Status(err error) (int, string) {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status, e.msg
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Kind names the failure kind of err for metrics.
func Kind(err error) string {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.kind
		}
	}
	return "internal"
}

// AbortWithError writes the mapped error response. Input errors carry
// their detail; internal errors are logged and not echoed.
func AbortWithError(c *gin.Context, err error) {
	status, msg := Status(err)
	body := gin.H{"message": msg}
	switch {
	case status == http.StatusBadRequest:
		body["details"] = err.Error()
	case status >= http.StatusInternalServerError:
		logger.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, body)
}

// WithTimeout derives the per-request persistence deadline. A context that
// runs out surfaces from the store as apperr.ErrUnavailable.
func WithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}
