package superadmins

import "context"

type Repository interface {
	Create(ctx context.Context, sa SuperAdmin) error
	Update(ctx context.Context, sa SuperAdmin) error
	GetByID(ctx context.Context, id string) (SuperAdmin, error)
	GetByEmail(ctx context.Context, email string) (SuperAdmin, error)
}
