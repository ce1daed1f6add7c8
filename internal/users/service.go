package users

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/logger"
)

// Issuer mints a credential for an email.
type Issuer interface {
	Issue(email string) (string, time.Time, error)
}

// reservedFields cannot be written through a profile upsert. "role" in
// particular only changes through PromoteToAdmin.
var reservedFields = map[string]bool{
	"_id": true, "email": true, "role": true, "createdAt": true, "updatedAt": true,
}

// Login is the result of a profile upsert: the stored profile plus a fresh
// credential for it.
type Login struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// Service encapsulates user-related business logic
type Service struct {
	repo   UserRepository
	issuer Issuer
	log    *logger.Logger
}

func NewService(r UserRepository, issuer Issuer) *Service {
	return &Service{repo: r, issuer: issuer, log: logger.Named("users")}
}

// Upsert creates or updates the profile for email and issues a new
// credential for it. Writing the profile is what logs a client in, so
// every call refreshes the session, including the first one.
func (s *Service) Upsert(ctx context.Context, email string, fields map[string]interface{}) (*Login, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrInvalidInput)
	}
	u := &models.User{Email: email}
	for k, v := range fields {
		if reservedFields[k] || strings.HasPrefix(k, "$") {
			continue
		}
		if k == "name" {
			if v == nil {
				continue
			}
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: name must be a string", apperr.ErrInvalidInput)
			}
			u.Name = name
			continue
		}
		if u.Profile == nil {
			u.Profile = make(map[string]interface{})
		}
		u.Profile[k] = v
	}
	stored, err := s.repo.UpsertByEmail(ctx, u)
	if err != nil {
		return nil, err
	}
	token, exp, err := s.issuer.Issue(email)
	if err != nil {
		return nil, fmt.Errorf("issue credential for %q: %w", email, err)
	}
	s.log.Debugf("profile upserted and credential issued for %s", email)
	return &Login{User: stored, Token: token, ExpiresAt: exp}, nil
}

// Get returns the profile for email or nil when there is none.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

// PromoteToAdmin grants the admin role to an existing profile. Callers must
// have passed the role gate first.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) error {
	if err := s.repo.SetRole(ctx, email, models.RoleAdmin); err != nil {
		return err
	}
	s.log.Infof("%s promoted to admin", email)
	return nil
}
