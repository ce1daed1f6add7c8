package access

import (
	"context"
	"testing"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeProfiles map[string]*models.User

func (f fakeProfiles) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "down@x.com" {
		return nil, apperr.ErrUnavailable
	}
	return f[email], nil
}

func TestGate(t *testing.T) {
	g := NewGate(fakeProfiles{
		"boss@x.com": {Email: "boss@x.com", Role: models.RoleAdmin},
		"pat@x.com":  {Email: "pat@x.com"},
		"odd@x.com":  {Email: "odd@x.com", Role: models.ParseRole("superuser")},
	})
	ctx := context.Background()

	require.NoError(t, g.CheckAdmin(ctx, "boss@x.com"))
	require.ErrorIs(t, g.CheckAdmin(ctx, "pat@x.com"), apperr.ErrForbidden)
	require.ErrorIs(t, g.CheckAdmin(ctx, "odd@x.com"), apperr.ErrForbidden)
	require.ErrorIs(t, g.CheckAdmin(ctx, "nobody@x.com"), apperr.ErrInvalidState)
	require.ErrorIs(t, g.CheckAdmin(ctx, "down@x.com"), apperr.ErrUnavailable)

	ok, err := g.IsAdmin(ctx, "boss@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = g.IsAdmin(ctx, "pat@x.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOwns(t *testing.T) {
	require.NoError(t, Owns("a@x.com", "a@x.com"))
	require.ErrorIs(t, Owns("b@x.com", "a@x.com"), apperr.ErrForbidden)
	require.ErrorIs(t, Owns("", ""), apperr.ErrForbidden)
}
