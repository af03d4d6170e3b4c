package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/tables"
)

type tableRepo struct {
	mu   sync.RWMutex
	byID map[string]tables.Table
}

func NewTableRepo() tables.Repository {
	return &tableRepo{
		byID: make(map[string]tables.Table),
	}
}

func (r *tableRepo) Create(ctx context.Context, t tables.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return errors.New("table id required")
	}
	if _, exists := r.byID[t.ID]; exists {
		return errors.New("table already exists")
	}
	for _, other := range r.byID {
		if other.TenantID == t.TenantID && other.Number == t.Number {
			return errors.New("table number already exists for tenant")
		}
	}
	r.byID[t.ID] = t
	return nil
}

func (r *tableRepo) Update(ctx context.Context, t tables.Table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[t.ID]; !exists {
		return ErrNotFound
	}
	r.byID[t.ID] = t
	return nil
}

func (r *tableRepo) GetByID(ctx context.Context, tenantID, id string) (tables.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok || t.TenantID != tenantID {
		return tables.Table{}, ErrNotFound
	}
	return t, nil
}

func (r *tableRepo) GetByNumber(ctx context.Context, tenantID string, number int) (tables.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.byID {
		if t.TenantID == tenantID && t.Number == number {
			return t, nil
		}
	}
	return tables.Table{}, ErrNotFound
}

func (r *tableRepo) ListByTenant(ctx context.Context, tenantID string) ([]tables.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]tables.Table, 0)
	for _, t := range r.byID {
		if t.TenantID == tenantID {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out, nil
}
