package customers

import "context"

type Repository interface {
	Create(ctx context.Context, c Customer) error
	Update(ctx context.Context, c Customer) error

	GetByID(ctx context.Context, tenantID, id string) (Customer, error)
	GetByEmail(ctx context.Context, tenantID, email string) (Customer, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Customer, error)
}
