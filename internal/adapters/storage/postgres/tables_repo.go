package postgres

import (
	"context"
	"database/sql"
	"strings"

	"restaurant-ordering/internal/domain/tables"
)

type TablesRepo struct {
	db *sql.DB
}

func NewTablesRepo(db *sql.DB) *TablesRepo {
	return &TablesRepo{db: db}
}

func (r *TablesRepo) Create(ctx context.Context, t tables.Table) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO restaurant_tables (
			id, tenant_id, number, seats, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		t.ID,
		t.TenantID,
		t.Number,
		t.Seats,
		t.Active,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return err
}

func (r *TablesRepo) Update(ctx context.Context, t tables.Table) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE restaurant_tables
		SET
			seats = $3,
			active = $4,
			updated_at = $5
		WHERE id = $1 AND tenant_id = $2
	`,
		t.ID,
		t.TenantID,
		t.Seats,
		t.Active,
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

func (r *TablesRepo) GetByID(ctx context.Context, tenantID, id string) (tables.Table, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return tables.Table{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectTable+` WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (r *TablesRepo) GetByNumber(ctx context.Context, tenantID string, number int) (tables.Table, error) {
	if strings.TrimSpace(tenantID) == "" {
		return tables.Table{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectTable+` WHERE tenant_id = $1 AND number = $2`, tenantID, number))
}

func (r *TablesRepo) ListByTenant(ctx context.Context, tenantID string) ([]tables.Table, error) {
	rows, err := r.db.QueryContext(ctx, selectTable+` WHERE tenant_id = $1 ORDER BY number ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]tables.Table, 0)
	for rows.Next() {
		var t tables.Table
		if err := rows.Scan(
			&t.ID,
			&t.TenantID,
			&t.Number,
			&t.Seats,
			&t.Active,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

const selectTable = `
	SELECT
		id, tenant_id, number, seats, active,
		created_at, updated_at
	FROM restaurant_tables`

func (r *TablesRepo) scanOne(row *sql.Row) (tables.Table, error) {
	var t tables.Table
	if err := row.Scan(
		&t.ID,
		&t.TenantID,
		&t.Number,
		&t.Seats,
		&t.Active,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return tables.Table{}, ErrNotFound
		}
		return tables.Table{}, err
	}
	return t, nil
}
