package postgres

import (
	"context"
	"database/sql"
	"strings"

	"restaurant-ordering/internal/domain/customers"
)

type CustomersRepo struct {
	db *sql.DB
}

func NewCustomersRepo(db *sql.DB) *CustomersRepo {
	return &CustomersRepo{db: db}
}

func (r *CustomersRepo) Create(ctx context.Context, c customers.Customer) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (
			id, tenant_id,
			email, name, phone, password_hash, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		c.ID,
		c.TenantID,
		c.Email,
		c.Name,
		c.Phone,
		c.PasswordHash,
		c.Active,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CustomersRepo) Update(ctx context.Context, c customers.Customer) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE customers
		SET
			name = $3,
			phone = $4,
			active = $5,
			updated_at = $6
		WHERE id = $1 AND tenant_id = $2
	`,
		c.ID,
		c.TenantID,
		c.Name,
		c.Phone,
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

func (r *CustomersRepo) GetByID(ctx context.Context, tenantID, id string) (customers.Customer, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return customers.Customer{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectCustomer+` WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (r *CustomersRepo) GetByEmail(ctx context.Context, tenantID, email string) (customers.Customer, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(email) == "" {
		return customers.Customer{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectCustomer+` WHERE tenant_id = $1 AND email = $2`, tenantID, email))
}

func (r *CustomersRepo) ListByTenant(ctx context.Context, tenantID string) ([]customers.Customer, error) {
	rows, err := r.db.QueryContext(ctx, selectCustomer+` WHERE tenant_id = $1 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]customers.Customer, 0)
	for rows.Next() {
		var c customers.Customer
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.Email,
			&c.Name,
			&c.Phone,
			&c.PasswordHash,
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

const selectCustomer = `
	SELECT
		id, tenant_id,
		email, name, phone, password_hash, active,
		created_at, updated_at
	FROM customers`

func (r *CustomersRepo) scanOne(row *sql.Row) (customers.Customer, error) {
	var c customers.Customer
	if err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Email,
		&c.Name,
		&c.Phone,
		&c.PasswordHash,
		&c.Active,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return customers.Customer{}, ErrNotFound
		}
		return customers.Customer{}, err
	}
	return c, nil
}
