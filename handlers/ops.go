package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

// RegisterOps mounts the banner, liveness and readiness endpoints. /ready
// answers 503 when any probe fails.
func RegisterOps(r gin.IRouter, started time.Time, probes map[string]Probe) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Doctors portal is running")
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := make(map[string]bool, len(probes))
		for name, probe := range probes {
			deps[name] = probe(ctx) == nil
			if !deps[name] {
				ready = false
			}
		}
		uptime := time.Since(started).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}
