package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"restaurant-ordering/internal/domain/admins"
)

type AdminsRepo struct {
	db *sql.DB
}

func NewAdminsRepo(db *sql.DB) *AdminsRepo {
	return &AdminsRepo{db: db}
}

func (r *AdminsRepo) Create(ctx context.Context, a admins.Admin) error {
	perms, err := json.Marshal(a.Permissions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO admins (
			id, tenant_id,
			email, name, password_hash,
			role, permissions, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		a.ID,
		a.TenantID,
		a.Email,
		a.Name,
		a.PasswordHash,
		string(a.Role),
		perms,
		a.Active,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AdminsRepo) Update(ctx context.Context, a admins.Admin) error {
	perms, err := json.Marshal(a.Permissions)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE admins
		SET
			name = $3,
			role = $4,
			permissions = $5,
			active = $6,
			updated_at = $7
		WHERE id = $1 AND tenant_id = $2
	`,
		a.ID,
		a.TenantID,
		a.Name,
		string(a.Role),
		perms,
		a.Active,
		a.UpdatedAt,
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

func (r *AdminsRepo) GetByID(ctx context.Context, tenantID, id string) (admins.Admin, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(id) == "" {
		return admins.Admin{}, ErrNotFound
	}
	return scanAdmin(r.db.QueryRowContext(ctx, selectAdmin+` WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (r *AdminsRepo) GetByEmail(ctx context.Context, tenantID, email string) (admins.Admin, error) {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(email) == "" {
		return admins.Admin{}, ErrNotFound
	}
	return scanAdmin(r.db.QueryRowContext(ctx, selectAdmin+` WHERE tenant_id = $1 AND email = $2`, tenantID, email))
}

func (r *AdminsRepo) ListByTenant(ctx context.Context, tenantID string) ([]admins.Admin, error) {
	rows, err := r.db.QueryContext(ctx, selectAdmin+` WHERE tenant_id = $1 ORDER BY created_at ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]admins.Admin, 0)
	for rows.Next() {
		a, err := scanAdminRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const selectAdmin = `
	SELECT
		id, tenant_id,
		email, name, password_hash,
		role, permissions, active,
		created_at, updated_at
	FROM admins`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row *sql.Row) (admins.Admin, error) {
	a, err := scanAdminRow(row)
	if err == sql.ErrNoRows {
		return admins.Admin{}, ErrNotFound
	}
	return a, err
}

func scanAdminRow(s rowScanner) (admins.Admin, error) {
	var a admins.Admin
	var role string
	var perms []byte
	if err := s.Scan(
		&a.ID,
		&a.TenantID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&role,
		&perms,
		&a.Active,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return admins.Admin{}, err
	}

	a.Role = admins.Role(role)
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &a.Permissions); err != nil {
			return admins.Admin{}, err
		}
	}
	return a, nil
}
