package tokens

import (
	"fmt"
	"strings"
	"time"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the credential lifetime used when none is configured.
const DefaultTTL = time.Hour

// Claims is the payload of a portal access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 access tokens with a shared secret.
// It holds no state besides its configuration, so one instance may be used
// from any number of goroutines.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager refuses an empty secret: HS256 accepts a zero-length key, and
// tokens signed with it can be forged by anyone.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty signing secret", apperr.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue signs a token bound to email that expires ttl from now.
func (m *Manager) Issue(email string) (string, time.Time, error) {
	if email == "" {
		return "", time.Time{}, fmt.Errorf("issue token: %w: empty email", apperr.ErrInvalidInput)
	}
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature and expiry and returns the email the token was
// issued for. An empty token is ErrUnauthenticated; every other failure is
// ErrInvalidCredential.
func (m *Manager) Verify(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperr.ErrUnauthenticated
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrInvalidCredential, err)
	}
	if claims.Email == "" {
		return "", fmt.Errorf("%w: token carries no email", apperr.ErrInvalidCredential)
	}
	return claims.Email, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: missing Authorization header", apperr.ErrUnauthenticated)
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", fmt.Errorf("%w: malformed Authorization header", apperr.ErrUnauthenticated)
	}
	return strings.TrimSpace(token), nil
}
