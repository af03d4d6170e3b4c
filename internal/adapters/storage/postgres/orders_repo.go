package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"restaurant-ordering/internal/domain/orders"
)

type OrdersRepo struct {
	db *sql.DB
}

func NewOrdersRepo(db *sql.DB) *OrdersRepo {
	return &OrdersRepo{db: db}
}

// Los renglones van como JSONB: son snapshot inmutable, nunca se
// consultan por separado.
func (r *OrdersRepo) Create(ctx context.Context, o orders.Order) error {
	lines, err := json.Marshal(o.Lines)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, tenant_id, customer_id, table_id,
			lines, status, total_cents, notes,
			placed_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		o.ID,
		o.TenantID,
		nullString(o.CustomerID),
		nullString(o.TableID),
		lines,
		string(o.Status),
		o.TotalCents,
		o.Notes,
		o.PlacedAt,
		o.UpdatedAt,
	)
	return err
}

func (r *OrdersRepo) Update(ctx context.Context, o orders.Order) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET
			status = $3,
			updated_at = $4
		WHERE id = $1 AND tenant_id = $2
	`,
		o.ID,
		o.TenantID,
		string(o.Status),
		o.UpdatedAt,
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

func (r *OrdersRepo) GetByID(ctx context.Context, tenantID, id string) (orders.Order, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return orders.Order{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, selectOrder+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return orders.Order{}, ErrNotFound
	}
	return o, err
}

func (r *OrdersRepo) ListByTenant(ctx context.Context, tenantID string, status orders.Status) ([]orders.Order, error) {
	if status != "" {
		return r.list(ctx, selectOrder+` WHERE tenant_id = $1 AND status = $2 ORDER BY placed_at DESC`, tenantID, string(status))
	}
	return r.list(ctx, selectOrder+` WHERE tenant_id = $1 ORDER BY placed_at DESC`, tenantID)
}

func (r *OrdersRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]orders.Order, error) {
	return r.list(ctx, selectOrder+` WHERE tenant_id = $1 AND customer_id = $2 ORDER BY placed_at DESC`, tenantID, customerID)
}

func (r *OrdersRepo) list(ctx context.Context, query string, args ...any) ([]orders.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]orders.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

const selectOrder = `
	SELECT
		id, tenant_id, customer_id, table_id,
		lines, status, total_cents, notes,
		placed_at, updated_at
	FROM orders`

func scanOrder(s rowScanner) (orders.Order, error) {
	var o orders.Order
	var customerID, tableID sql.NullString
	var lines []byte
	var status string

	if err := s.Scan(
		&o.ID,
		&o.TenantID,
		&customerID,
		&tableID,
		&lines,
		&status,
		&o.TotalCents,
		&o.Notes,
		&o.PlacedAt,
		&o.UpdatedAt,
	); err != nil {
		return orders.Order{}, err
	}

	o.CustomerID = customerID.String
	o.TableID = tableID.String
	o.Status = orders.Status(status)
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return orders.Order{}, err
		}
	}
	return o, nil
}

func nullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
