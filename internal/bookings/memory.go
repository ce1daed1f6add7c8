package bookings

import (
	"context"
	"sync"

	"github.com/doctorsportal/portal/internal/models"
)

// MemoryRepository is an in-process Repository. Like the Mongo unique
// index, it refuses a second booking for the same key.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Booking
	byKey map[models.BookingKey]int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byKey: make(map[models.BookingKey]int)}
}

func cloneBooking(b models.Booking) models.Booking {
	if b.Extra != nil {
		extra := make(map[string]interface{}, len(b.Extra))
		for k, v := range b.Extra {
			extra[k] = v
		}
		b.Extra = extra
	}
	return b
}

func (r *MemoryRepository) FindByKey(ctx context.Context, key models.BookingKey) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byKey[key]
	if !ok {
		return nil, nil
	}
	b := cloneBooking(r.items[i])
	return &b, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := b.Key()
	if _, exists := r.byKey[key]; exists {
		return ErrDuplicate
	}
	r.items = append(r.items, cloneBooking(*b))
	r.byKey[key] = len(r.items) - 1
	return nil
}

func (r *MemoryRepository) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.filter(func(b *models.Booking) bool { return b.Date == date }), nil
}

func (r *MemoryRepository) ListByPatient(ctx context.Context, email string) ([]models.Booking, error) {
	return r.filter(func(b *models.Booking) bool { return b.PatientEmail == email }), nil
}

func (r *MemoryRepository) filter(keep func(*models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Booking{}
	for i := range r.items {
		if keep(&r.items[i]) {
			out = append(out, cloneBooking(r.items[i]))
		}
	}
	return out
}
