package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/orders"
)

type orderRepo struct {
	mu   sync.RWMutex
	byID map[string]orders.Order
}

func NewOrderRepo() orders.Repository {
	return &orderRepo{
		byID: make(map[string]orders.Order),
	}
}

func (r *orderRepo) Create(ctx context.Context, o orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(o.ID) == "" {
		return errors.New("order id required")
	}
	if _, exists := r.byID[o.ID]; exists {
		return errors.New("order already exists")
	}
	r.byID[o.ID] = o
	return nil
}

func (r *orderRepo) Update(ctx context.Context, o orders.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, tenantID, id string) (orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok || o.TenantID != tenantID {
		return orders.Order{}, ErrNotFound
	}
	return o, nil
}

func (r *orderRepo) ListByTenant(ctx context.Context, tenantID string, status orders.Status) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, o := range r.byID {
		if o.TenantID != tenantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}

	// Más recientes primero: la vista de cocina mira lo último.
	sort.Slice(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out, nil
}

func (r *orderRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]orders.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]orders.Order, 0)
	for _, o := range r.byID {
		if o.TenantID == tenantID && o.CustomerID == customerID {
			out = append(out, o)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].PlacedAt.After(out[j].PlacedAt)
	})
	return out, nil
}
