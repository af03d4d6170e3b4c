package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"restaurant-ordering/internal/domain/superadmins"
)

type superAdminRepo struct {
	mu   sync.RWMutex
	byID map[string]superadmins.SuperAdmin
}

func NewSuperAdminRepo() superadmins.Repository {
	return &superAdminRepo{
		byID: make(map[string]superadmins.SuperAdmin),
	}
}

func (r *superAdminRepo) Create(ctx context.Context, sa superadmins.SuperAdmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sa.ID) == "" {
		return errors.New("super admin id required")
	}
	if _, exists := r.byID[sa.ID]; exists {
		return errors.New("super admin already exists")
	}
	for _, other := range r.byID {
		if other.Email == sa.Email {
			return errors.New("email already exists")
		}
	}
	r.byID[sa.ID] = sa
	return nil
}

func (r *superAdminRepo) Update(ctx context.Context, sa superadmins.SuperAdmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[sa.ID]; !exists {
		return ErrNotFound
	}
	r.byID[sa.ID] = sa
	return nil
}

func (r *superAdminRepo) GetByID(ctx context.Context, id string) (superadmins.SuperAdmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sa, ok := r.byID[id]
	if !ok {
		return superadmins.SuperAdmin{}, ErrNotFound
	}
	return sa, nil
}

func (r *superAdminRepo) GetByEmail(ctx context.Context, email string) (superadmins.SuperAdmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, sa := range r.byID {
		if sa.Email == email {
			return sa, nil
		}
	}
	return superadmins.SuperAdmin{}, ErrNotFound
}
