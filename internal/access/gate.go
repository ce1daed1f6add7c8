// Package access holds the authorization rules that run after a caller's
// credential has been verified: the admin role gate and the rule that a
// patient may only read their own bookings.
package access

import (
	"context"
	"fmt"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
)

// ProfileLookup finds a user profile by email, returning nil, nil when
// none exists.
type ProfileLookup interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Gate decides whether a verified identity holds the admin role.
type Gate struct {
	users ProfileLookup
}

func NewGate(users ProfileLookup) *Gate {
	return &Gate{users: users}
}

// IsAdmin reports whether email's profile has the admin role. The email
// must come from a verified credential. A verified identity without a
// profile is ErrInvalidState, not a plain "no".
func (g *Gate) IsAdmin(ctx context.Context, email string) (bool, error) {
	u, err := g.users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, fmt.Errorf("%w: %s", apperr.ErrInvalidState, email)
	}
	return u.Role == models.RoleAdmin, nil
}

// CheckAdmin returns nil for administrators and ErrForbidden for everyone
// else with a profile.
func (g *Gate) CheckAdmin(ctx context.Context, email string) error {
	ok, err := g.IsAdmin(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not an admin", apperr.ErrForbidden, email)
	}
	return nil
}

// Owns allows a caller to act on a patient's records only when the
// requested email is the verified one.
func Owns(requested, verified string) error {
	if requested == "" || requested != verified {
		return fmt.Errorf("%w: bookings of %q are not visible to %q", apperr.ErrForbidden, requested, verified)
	}
	return nil
}
