package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/menus"
)

type menuRepo struct {
	mu         sync.RWMutex
	categories map[string]menus.Category
	items      map[string]menus.Item
}

func NewMenuRepo() menus.Repository {
	return &menuRepo{
		categories: make(map[string]menus.Category),
		items:      make(map[string]menus.Item),
	}
}

func (r *menuRepo) CreateCategory(ctx context.Context, c menus.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("category id required")
	}
	if _, exists := r.categories[c.ID]; exists {
		return errors.New("category already exists")
	}
	r.categories[c.ID] = c
	return nil
}

func (r *menuRepo) UpdateCategory(ctx context.Context, c menus.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.categories[c.ID]; !exists {
		return ErrNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *menuRepo) GetCategory(ctx context.Context, tenantID, id string) (menus.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok || c.TenantID != tenantID {
		return menus.Category{}, ErrNotFound
	}
	return c, nil
}

func (r *menuRepo) ListCategories(ctx context.Context, tenantID string) ([]menus.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]menus.Category, 0)
	for _, c := range r.categories {
		if c.TenantID == tenantID {
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *menuRepo) CreateItem(ctx context.Context, it menus.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(it.ID) == "" {
		return errors.New("item id required")
	}
	if _, exists := r.items[it.ID]; exists {
		return errors.New("item already exists")
	}
	r.items[it.ID] = it
	return nil
}

func (r *menuRepo) UpdateItem(ctx context.Context, it menus.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[it.ID]; !exists {
		return ErrNotFound
	}
	r.items[it.ID] = it
	return nil
}

func (r *menuRepo) GetItem(ctx context.Context, tenantID, id string) (menus.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok || it.TenantID != tenantID {
		return menus.Item{}, ErrNotFound
	}
	return it, nil
}

func (r *menuRepo) ListItemsByCategory(ctx context.Context, tenantID, categoryID string) ([]menus.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]menus.Item, 0)
	for _, it := range r.items {
		if it.TenantID == tenantID && it.CategoryID == categoryID {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *menuRepo) ListItems(ctx context.Context, tenantID string) ([]menus.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]menus.Item, 0)
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
