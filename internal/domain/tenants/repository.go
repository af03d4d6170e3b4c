package tenants

import "context"

type Repository interface {
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	GetByID(ctx context.Context, id string) (Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
}
