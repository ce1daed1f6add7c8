package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpsEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("down") }

	t.Run("banner and health", func(t *testing.T) {
		r := gin.New()
		RegisterOps(r, time.Now(), nil)
		for _, path := range []string{"/", "/health"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusOK, w.Code, path)
		}
	})

	t.Run("ready", func(t *testing.T) {
		r := gin.New()
		RegisterOps(r, time.Now(), map[string]Probe{"mongo": healthy})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		r := gin.New()
		RegisterOps(r, time.Now(), map[string]Probe{"mongo": healthy, "redis": broken})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		require.Equal(t, http.StatusServiceUnavailable, w.Code)

		var body struct {
			Status string          `json:"status"`
			Deps   map[string]bool `json:"deps"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.True(t, body.Deps["mongo"])
		assert.False(t, body.Deps["redis"])
	})
}
