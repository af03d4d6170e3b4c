package postgres

import (
	"context"
	"database/sql"
	"strings"

	"restaurant-ordering/internal/domain/tenants"
)

type TenantsRepo struct {
	db *sql.DB
}

func NewTenantsRepo(db *sql.DB) *TenantsRepo {
	return &TenantsRepo{db: db}
}

func (r *TenantsRepo) Create(ctx context.Context, t tenants.Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (
			id, name, subdomain,
			active, subscription_status,
			address, phone,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		t.ID,
		t.Name,
		t.Subdomain,
		t.Active,
		string(t.SubscriptionStatus),
		t.Address,
		t.Phone,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TenantsRepo) Update(ctx context.Context, t tenants.Tenant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants
		SET
			name = $2,
			active = $3,
			subscription_status = $4,
			address = $5,
			phone = $6,
			updated_at = $7
		WHERE id = $1
	`,
		t.ID,
		t.Name,
		t.Active,
		string(t.SubscriptionStatus),
		t.Address,
		t.Phone,
		t.UpdatedAt,
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

func (r *TenantsRepo) GetByID(ctx context.Context, id string) (tenants.Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tenants.Tenant{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectTenant+` WHERE id = $1`, id))
}

func (r *TenantsRepo) GetBySubdomain(ctx context.Context, subdomain string) (tenants.Tenant, error) {
	subdomain = strings.TrimSpace(subdomain)
	if subdomain == "" {
		return tenants.Tenant{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectTenant+` WHERE subdomain = $1`, subdomain))
}

func (r *TenantsRepo) List(ctx context.Context) ([]tenants.Tenant, error) {
	rows, err := r.db.QueryContext(ctx, selectTenant+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tenants.Tenant, 0)
	for rows.Next() {
		var t tenants.Tenant
		var status string
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Subdomain,
			&t.Active,
			&status,
			&t.Address,
			&t.Phone,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		t.SubscriptionStatus = tenants.SubscriptionStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

const selectTenant = `
	SELECT
		id, name, subdomain,
		active, subscription_status,
		address, phone,
		created_at, updated_at
	FROM tenants`

func (r *TenantsRepo) scanOne(row *sql.Row) (tenants.Tenant, error) {
	var t tenants.Tenant
	var status string
	if err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Subdomain,
		&t.Active,
		&status,
		&t.Address,
		&t.Phone,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return tenants.Tenant{}, ErrNotFound
		}
		return tenants.Tenant{}, err
	}
	t.SubscriptionStatus = tenants.SubscriptionStatus(status)
	return t, nil
}
