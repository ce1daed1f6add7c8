package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("x: %w", apperr.ErrInvalidCredential), http.StatusForbidden},
		{apperr.ErrForbidden, http.StatusForbidden},
		{apperr.ErrInvalidState, http.StatusConflict},
		{apperr.ErrNotFound, http.StatusNotFound},
		{apperr.ErrInvalidInput, http.StatusBadRequest},
		{fmt.Errorf("find: %w", apperr.ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := Status(tc.err)
		assert.Equal(t, tc.want, got, "status for %v", tc.err)
	}
	assert.Equal(t, "unavailable", Kind(apperr.ErrUnavailable))
	assert.Equal(t, "internal", Kind(errors.New("boom")))
}

func TestAbortWithError_InputDetails(t *testing.T) {
	g := gin.New()
	g.GET("/", func(c *gin.Context) {
		AbortWithError(c, fmt.Errorf("%w: missing slot", apperr.ErrInvalidInput))
	})
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusBadRequest, rw.Code)
	require.Contains(t, rw.Body.String(), "missing slot")
}
