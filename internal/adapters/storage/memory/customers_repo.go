package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/customers"
)

type customerRepo struct {
	mu   sync.RWMutex
	byID map[string]customers.Customer
}

func NewCustomerRepo() customers.Repository {
	return &customerRepo{
		byID: make(map[string]customers.Customer),
	}
}

func (r *customerRepo) Create(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("customer id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("customer already exists")
	}
	for _, other := range r.byID {
		if other.TenantID == c.TenantID && other.Email == c.Email {
			return errors.New("email already exists for tenant")
		}
	}
	r.byID[c.ID] = c
	return nil
}

func (r *customerRepo) Update(ctx context.Context, c customers.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[c.ID]; !exists {
		return ErrNotFound
	}
	r.byID[c.ID] = c
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, tenantID, id string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok || c.TenantID != tenantID {
		return customers.Customer{}, ErrNotFound
	}
	return c, nil
}

func (r *customerRepo) GetByEmail(ctx context.Context, tenantID, email string) (customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.byID {
		if c.TenantID == tenantID && c.Email == email {
			return c, nil
		}
	}
	return customers.Customer{}, ErrNotFound
}

func (r *customerRepo) ListByTenant(ctx context.Context, tenantID string) ([]customers.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customers.Customer, 0)
	for _, c := range r.byID {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
