package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/doctorsportal/portal/internal/apperr"
	"github.com/doctorsportal/portal/internal/models"
	"github.com/google/uuid"
)

// MemoryUserRepository is an in-process UserRepository keyed by email.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	order []string
	users map[string]*models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	if u.Profile != nil {
		cp.Profile = make(map[string]interface{}, len(u.Profile))
		for k, v := range u.Profile {
			cp.Profile[k] = v
		}
	}
	return &cp
}

func (r *MemoryUserRepository) UpsertByEmail(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	cur, ok := r.users[u.Email]
	if !ok {
		cur = &models.User{ID: uuid.NewString(), Email: u.Email, CreatedAt: now}
		r.users[u.Email] = cur
		r.order = append(r.order, u.Email)
	}
	if u.Name != "" {
		cur.Name = u.Name
	}
	for k, v := range u.Profile {
		if cur.Profile == nil {
			cur.Profile = make(map[string]interface{})
		}
		cur.Profile[k] = v
	}
	cur.UpdatedAt = now
	return cloneUser(cur), nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, *cloneUser(r.users[email]))
	}
	return out, nil
}

func (r *MemoryUserRepository) SetRole(ctx context.Context, email string, role models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return fmt.Errorf("user %q: %w", email, apperr.ErrNotFound)
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}
