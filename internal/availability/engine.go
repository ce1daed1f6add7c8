// Package availability computes which slots of each treatment are still
// open on a given date.
package availability

import (
	"context"
	"fmt"

	"github.com/doctorsportal/portal/internal/models"
	"github.com/doctorsportal/portal/pkg/metrics"
)

// TreatmentSource is the read side of the treatment catalogue.
type TreatmentSource interface {
	List(ctx context.Context) ([]models.Treatment, error)
	ListNames(ctx context.Context) ([]models.TreatmentName, error)
}

// BookingSource returns the bookings made for one date.
type BookingSource interface {
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
}

type Engine struct {
	treatments TreatmentSource
	bookings   BookingSource
}

func NewEngine(t TreatmentSource, b BookingSource) *Engine {
	return &Engine{treatments: t, bookings: b}
}

// Compute returns every treatment with its slots narrowed to those not
// booked on date. Bookings are matched to treatments by name, and date is
// used as a literal key, so an unknown date simply matches no bookings.
// The returned treatments are fresh values; the catalogue is not touched.
func (e *Engine) Compute(ctx context.Context, date string) ([]models.Treatment, error) {
	metrics.AvailabilityQueries.Inc()
	catalogue, err := e.treatments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load treatments: %w", err)
	}
	booked, err := e.bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load bookings for %q: %w", date, err)
	}
	return Remaining(catalogue, booked), nil
}

// Remaining applies the slot filter to already loaded data.
func Remaining(catalogue []models.Treatment, booked []models.Booking) []models.Treatment {
	used := make(map[string]map[string]struct{}, len(catalogue))
	for _, b := range booked {
		slots, ok := used[b.TreatmentName]
		if !ok {
			slots = make(map[string]struct{})
			used[b.TreatmentName] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	out := make([]models.Treatment, 0, len(catalogue))
	for _, t := range catalogue {
		taken := used[t.Name]
		open := make([]string, 0, len(t.Slots))
		for _, s := range t.Slots {
			if _, ok := taken[s]; !ok {
				open = append(open, s)
			}
		}
		out = append(out, models.Treatment{ID: t.ID, Name: t.Name, Slots: open})
	}
	return out
}

// Names lists the catalogue as id/name pairs.
func (e *Engine) Names(ctx context.Context) ([]models.TreatmentName, error) {
	names, err := e.treatments.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load treatment names: %w", err)
	}
	return names, nil
}
