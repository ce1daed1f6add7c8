package treatments

import (
	"context"
	"sync"

	"github.com/doctorsportal/portal/internal/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps the catalogue in process, in insertion order.
// Used by tests and by the server when no MongoDB URI is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Treatment
}

func NewMemoryRepository(seed ...models.Treatment) *MemoryRepository {
	r := &MemoryRepository{}
	for i := range seed {
		_ = r.Upsert(context.Background(), &seed[i])
	}
	return r
}

// List returns deep copies so callers cannot reach the stored slot slices.
func (r *MemoryRepository) List(ctx context.Context) ([]models.Treatment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Treatment, 0, len(r.items))
	for _, t := range r.items {
		t.Slots = append([]string(nil), t.Slots...)
		out = append(out, t)
	}
	return out, nil
}

func (r *MemoryRepository) ListNames(ctx context.Context) ([]models.TreatmentName, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TreatmentName, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, models.TreatmentName{ID: t.ID, Name: t.Name})
	}
	return out, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, t *models.Treatment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := models.Treatment{ID: t.ID, Name: t.Name, Slots: append([]string(nil), t.Slots...)}
	for i := range r.items {
		if r.items[i].Name == t.Name {
			cp.ID = r.items[i].ID
			r.items[i] = cp
			return nil
		}
	}
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	r.items = append(r.items, cp)
	return nil
}
