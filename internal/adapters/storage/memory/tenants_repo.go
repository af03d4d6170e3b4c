package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/tenants"
)

var (
	ErrNotFound = errors.New("not found")
)

type tenantRepo struct {
	mu   sync.RWMutex
	byID map[string]tenants.Tenant
}

func NewTenantRepo() tenants.Repository {
	return &tenantRepo{
		byID: make(map[string]tenants.Tenant),
	}
}

func (r *tenantRepo) Create(ctx context.Context, t tenants.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("tenant id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("tenant already exists")
	}
	for _, other := range r.byID {
		if other.Subdomain == t.Subdomain {
			return errors.New("subdomain already exists")
		}
	}
	r.byID[t.ID] = t
	return nil
}

func (r *tenantRepo) Update(ctx context.Context, t tenants.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *tenantRepo) GetByID(ctx context.Context, id string) (tenants.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return tenants.Tenant{}, ErrNotFound
	}
	return t, nil
}

func (r *tenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (tenants.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byID {
		if t.Subdomain == subdomain {
			return t, nil
		}
	}
	return tenants.Tenant{}, ErrNotFound
}

func (r *tenantRepo) List(ctx context.Context) ([]tenants.Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tenants.Tenant, 0, len(r.byID))
	for _, t := range r.byID {
		out = append(out, t)
	}

	// Orden estable por created_at asc (solo para consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
