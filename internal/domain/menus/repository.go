package menus

import "context"

type Repository interface {
	CreateCategory(ctx context.Context, c Category) error
	UpdateCategory(ctx context.Context, c Category) error
	GetCategory(ctx context.Context, tenantID, id string) (Category, error)
	ListCategories(ctx context.Context, tenantID string) ([]Category, error)

	CreateItem(ctx context.Context, it Item) error
	UpdateItem(ctx context.Context, it Item) error
	GetItem(ctx context.Context, tenantID, id string) (Item, error)
	ListItemsByCategory(ctx context.Context, tenantID, categoryID string) ([]Item, error)
	ListItems(ctx context.Context, tenantID string) ([]Item, error)
}
