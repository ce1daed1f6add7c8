package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/doctorsportal/portal/internal/tokens"
	"github.com/doctorsportal/portal/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// EmailKey is the gin context key holding the verified caller's email.
const EmailKey = "email"

// Verifier turns a raw bearer token into the email it was issued for.
type Verifier interface {
	Verify(raw string) (string, error)
}

// AdminChecker is the role gate run after verification.
type AdminChecker interface {
	CheckAdmin(ctx context.Context, email string) error
}

// AuthMiddleware verifies the bearer token and stores the caller's email
// under EmailKey. A missing or malformed header is 401; a token that fails
// verification is 403, so clients can tell "not logged in" from "session
// invalid".
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := tokens.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortAuth(c, err)
			return
		}
		email, err := ver.Verify(raw)
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(EmailKey, email)
		c.Next()
	}
}

// RequireAdmin lets the request through only when the verified caller is an
// administrator. It must be chained after AuthMiddleware; without a verified
// email it rejects the request without touching the store.
func RequireAdmin(gate AdminChecker, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(EmailKey)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "UnAuthorized"})
			return
		}
		ctx, cancel := WithTimeout(c, timeout)
		defer cancel()
		if err := gate.CheckAdmin(ctx, email); err != nil {
			abortAuth(c, err)
			return
		}
		c.Next()
	}
}

// VerifiedEmail returns the email stored by AuthMiddleware.
func VerifiedEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// abortAuth counts the failure and answers like AbortWithError, so store
// failures behind the gate are logged too.
func abortAuth(c *gin.Context, err error) {
	metrics.AuthFailures.WithLabelValues(Kind(err)).Inc()
	AbortWithError(c, err)
}
