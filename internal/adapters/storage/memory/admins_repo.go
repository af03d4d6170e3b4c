package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/admins"
)

type adminRepo struct {
	mu   sync.RWMutex
	byID map[string]admins.Admin
}

func NewAdminRepo() admins.Repository {
	return &adminRepo{
		byID: make(map[string]admins.Admin),
	}
}

func (r *adminRepo) Create(ctx context.Context, a admins.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("admin id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("admin already exists")
	}
	for _, other := range r.byID {
		if other.TenantID == a.TenantID && other.Email == a.Email {
			return errors.New("email already exists for tenant")
		}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adminRepo) Update(ctx context.Context, a admins.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *adminRepo) GetByID(ctx context.Context, tenantID, id string) (admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.TenantID != tenantID {
		return admins.Admin{}, ErrNotFound
	}
	return a, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, tenantID, email string) (admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.byID {
		if a.TenantID == tenantID && a.Email == email {
			return a, nil
		}
	}
	return admins.Admin{}, ErrNotFound
}

func (r *adminRepo) ListByTenant(ctx context.Context, tenantID string) ([]admins.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]admins.Admin, 0)
	for _, a := range r.byID {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
