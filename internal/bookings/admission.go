package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/logger"
	"github.com/doctorsportal/portal/pkg/metrics"
	"github.com/google/uuid"
)

// Outcome tells the caller what Admit did with a candidate.
type Outcome int

const (
	// Created means the candidate was stored as a new booking.
	Created Outcome = iota + 1
	// Duplicate means the patient already holds a booking for the same
	// treatment on the same date; nothing was written.
	Duplicate
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Duplicate:
		return "duplicate"
	}
	return "unknown"
}

// Result of an admission. Booking is the new record for Created and the
// existing one for Duplicate.
type Result struct {
	Outcome Outcome
	Booking *models.Booking
}

// Service admits and lists bookings.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(r Repository) *Service {
	return &Service{repo: r, log: logger.Named("bookings")}
}

// Admit stores candidate unless the patient already booked the same
// treatment on the same date, whatever slot either booking names.
//
// The lookup is an early exit. The store's unique key is what actually
// prevents double booking: when two identical requests race past the
// lookup, the loser's insert fails with ErrDuplicate and is reported as a
// Duplicate of the winner.
func (s *Service) Admit(ctx context.Context, candidate models.Booking) (*Result, error) {
	if err := validate(&candidate); err != nil {
		return nil, err
	}
	key := candidate.Key()

	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.duplicate(existing), nil
	}

	candidate.ID = uuid.NewString()
	if err := s.repo.Insert(ctx, &candidate); err != nil {
		if !errors.Is(err, ErrDuplicate) {
			return nil, err
		}
		winner, ferr := s.repo.FindByKey(ctx, key)
		if ferr != nil {
			return nil, ferr
		}
		if winner == nil {
			return nil, fmt.Errorf("booking %v reported duplicate but not found: %w", key, err)
		}
		s.log.Debugf("concurrent admission for %s/%s/%s lost the insert race", key.TreatmentName, key.Date, key.PatientEmail)
		return s.duplicate(winner), nil
	}

	metrics.BookingAdmissions.WithLabelValues(Created.String()).Inc()
	s.log.Infof("booking %s created for %s on %s (%s)", candidate.ID, candidate.TreatmentName, candidate.Date, candidate.Slot)
	return &Result{Outcome: Created, Booking: &candidate}, nil
}

func (s *Service) duplicate(b *models.Booking) *Result {
	metrics.BookingAdmissions.WithLabelValues(Duplicate.String()).Inc()
	return &Result{Outcome: Duplicate, Booking: b}
}

// ListForPatient returns every booking held by email. Callers must have
// checked that the requester owns email (see access.Owns).
func (s *Service) ListForPatient(ctx context.Context, email string) ([]models.Booking, error) {
	return s.repo.ListByPatient(ctx, email)
}

func validate(b *models.Booking) error {
	var missing []string
	if b.TreatmentName == "" {
		missing = append(missing, "treatmentName")
	}
	if b.Date == "" {
		missing = append(missing, "date")
	}
	if b.PatientEmail == "" {
		missing = append(missing, "patientEmail")
	}
	if b.Slot == "" {
		missing = append(missing, "slot")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", apperr.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if key, ok := unsafeKey(b.Extra); ok {
		return fmt.Errorf("%w: field name %q is not allowed", apperr.ErrInvalidInput, key)
	}
	return nil
}

// unsafeKey finds a field name, at any depth, that the document store
// treats as an operator or a path: a leading "$" or any ".".
func unsafeKey(v interface{}) (string, bool) {
	switch x := v.(type) {
	case map[string]interface{}:
		for k, inner := range x {
			if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
				return k, true
			}
			if bad, ok := unsafeKey(inner); ok {
				return bad, true
			}
		}
	case []interface{}:
		for _, inner := range x {
			if bad, ok := unsafeKey(inner); ok {
				return bad, true
			}
		}
	}
	return "", false
}
