package postgres

import (
	"context"
	"database/sql"
	"strings"

	"restaurant-ordering/internal/domain/menus"
)

type MenusRepo struct {
	db *sql.DB
}

func NewMenusRepo(db *sql.DB) *MenusRepo {
	return &MenusRepo{db: db}
}

func (r *MenusRepo) CreateCategory(ctx context.Context, c menus.Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_categories (
			id, tenant_id, name, sort_order, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		c.ID,
		c.TenantID,
		c.Name,
		c.SortOrder,
		c.Active,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *MenusRepo) UpdateCategory(ctx context.Context, c menus.Category) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_categories
		SET
			name = $3,
			sort_order = $4,
			active = $5,
			updated_at = $6
		WHERE id = $1 AND tenant_id = $2
	`,
		c.ID,
		c.TenantID,
		c.Name,
		c.SortOrder,
		c.Active,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MenusRepo) GetCategory(ctx context.Context, tenantID, id string) (menus.Category, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return menus.Category{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectCategory+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	var c menus.Category
	if err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.SortOrder,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return menus.Category{}, ErrNotFound
		}
		return menus.Category{}, err
	}
	return c, nil
}

func (r *MenusRepo) ListCategories(ctx context.Context, tenantID string) ([]menus.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectCategory+` WHERE tenant_id = $1 ORDER BY sort_order ASC, name ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]menus.Category, 0)
	for rows.Next() {
		var c menus.Category
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.Name,
			&c.SortOrder,
			&c.Active,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *MenusRepo) CreateItem(ctx context.Context, it menus.Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (
			id, tenant_id, category_id,
			name, description, price_cents, image_url, available,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		it.ID,
		it.TenantID,
		it.CategoryID,
		it.Name,
		it.Description,
		it.PriceCents,
		it.ImageURL,
		it.Available,
		it.CreatedAt,
		it.UpdatedAt,
	)
	return err
}

func (r *MenusRepo) UpdateItem(ctx context.Context, it menus.Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE menu_items
		SET
			category_id = $3,
			name = $4,
			description = $5,
			price_cents = $6,
			image_url = $7,
			available = $8,
			updated_at = $9
		WHERE id = $1 AND tenant_id = $2
	`,
		it.ID,
		it.TenantID,
		it.CategoryID,
		it.Name,
		it.Description,
		it.PriceCents,
		it.ImageURL,
		it.Available,
		it.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MenusRepo) GetItem(ctx context.Context, tenantID, id string) (menus.Item, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return menus.Item{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectItem+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)

	it, err := scanItem(row)
	if err == sql.ErrNoRows {
		return menus.Item{}, ErrNotFound
	}
	return it, err
}

func (r *MenusRepo) ListItemsByCategory(ctx context.Context, tenantID, categoryID string) ([]menus.Item, error) {
	return r.listItems(ctx, selectItem+` WHERE tenant_id = $1 AND category_id = $2 ORDER BY created_at ASC`, tenantID, categoryID)
}

func (r *MenusRepo) ListItems(ctx context.Context, tenantID string) ([]menus.Item, error) {
	return r.listItems(ctx, selectItem+` WHERE tenant_id = $1 ORDER BY created_at ASC`, tenantID)
}

func (r *MenusRepo) listItems(ctx context.Context, query string, args ...any) ([]menus.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]menus.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

const selectCategory = `
	SELECT
		id, tenant_id, name, sort_order, active,
		created_at, updated_at
	FROM menu_categories`

const selectItem = `
	SELECT
		id, tenant_id, category_id,
		name, description, price_cents, image_url, available,
		created_at, updated_at
	FROM menu_items`

func scanItem(s rowScanner) (menus.Item, error) {
	var it menus.Item
	err := s.Scan(
		&it.ID,
		&it.TenantID,
		&it.CategoryID,
		&it.Name,
		&it.Description,
		&it.PriceCents,
		&it.ImageURL,
		&it.Available,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	return it, err
}
