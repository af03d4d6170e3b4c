package orders

import "context"

type Repository interface {
	Create(ctx context.Context, o Order) error
	Update(ctx context.Context, o Order) error

	GetByID(ctx context.Context, tenantID, id string) (Order, error)
	ListByTenant(ctx context.Context, tenantID string, status Status) ([]Order, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]Order, error)
}
