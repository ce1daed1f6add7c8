package doctors

import (
	"context"
	"fmt"
	"sync"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Doctor
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) List(ctx context.Context) ([]models.Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Doctor{}, r.items...), nil
}

func (r *MemoryRepository) Insert(ctx context.Context, d *models.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, *d)
	return nil
}

func (r *MemoryRepository) DeleteByEmail(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].Email == email {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("doctor %q: %w", email, apperr.ErrNotFound)
}
