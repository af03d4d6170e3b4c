package admins

import "context"

type Repository interface {
	Create(ctx context.Context, a Admin) error
	Update(ctx context.Context, a Admin) error

	// GetByID es tenant-scoped: un id de otro tenant es not found.
	GetByID(ctx context.Context, tenantID, id string) (Admin, error)
	GetByEmail(ctx context.Context, tenantID, email string) (Admin, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Admin, error)
}
