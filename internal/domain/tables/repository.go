package tables

import "context"

type Repository interface {
	Create(ctx context.Context, t Table) error
	Update(ctx context.Context, t Table) error
	GetByID(ctx context.Context, tenantID, id string) (Table, error)
	GetByNumber(ctx context.Context, tenantID string, number int) (Table, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Table, error)
}
