package doctors

import (
	"context"
	"fmt"
	"strings"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/logger"
	"github.com/google/uuid"
)

// Service manages the provider roster. Every operation is admin-only; the
// HTTP layer runs the role gate before calling in.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(r Repository) *Service {
	return &Service{repo: r, log: logger.Named("doctors")}
}

func (s *Service) List(ctx context.Context) ([]models.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Add(ctx context.Context, d models.Doctor) (*models.Doctor, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	if d.Name == "" || d.Email == "" {
		return nil, fmt.Errorf("%w: doctor name and email are required", apperr.ErrInvalidInput)
	}
	d.ID = uuid.NewString()
	if err := s.repo.Insert(ctx, &d); err != nil {
		return nil, err
	}
	s.log.Infof("doctor %s (%s) added", d.Name, d.Email)
	return &d, nil
}

func (s *Service) Remove(ctx context.Context, email string) error {
	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	s.log.Infof("doctor %s removed", email)
	return nil
}
