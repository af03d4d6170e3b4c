package postgres

import (
	"context"
	"database/sql"
	"strings"

	"restaurant-ordering/internal/domain/superadmins"
)

type SuperAdminsRepo struct {
	db *sql.DB
}

func NewSuperAdminsRepo(db *sql.DB) *SuperAdminsRepo {
	return &SuperAdminsRepo{db: db}
}

func (r *SuperAdminsRepo) Create(ctx context.Context, sa superadmins.SuperAdmin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO super_admins (
			id, email, name, password_hash, active,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		sa.ID,
		sa.Email,
		sa.Name,
		sa.PasswordHash,
		sa.Active,
		sa.CreatedAt,
		sa.UpdatedAt,
	)
	return err
}

func (r *SuperAdminsRepo) Update(ctx context.Context, sa superadmins.SuperAdmin) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE super_admins
		SET
			name = $2,
			active = $3,
			updated_at = $4
		WHERE id = $1
	`,
		sa.ID,
		sa.Name,
		sa.Active,
		sa.UpdatedAt,
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

func (r *SuperAdminsRepo) GetByID(ctx context.Context, id string) (superadmins.SuperAdmin, error) {
	if strings.TrimSpace(id) == "" {
		return superadmins.SuperAdmin{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectSuperAdmin+` WHERE id = $1`, id))
}

func (r *SuperAdminsRepo) GetByEmail(ctx context.Context, email string) (superadmins.SuperAdmin, error) {
	if strings.TrimSpace(email) == "" {
		return superadmins.SuperAdmin{}, ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectSuperAdmin+` WHERE email = $1`, email))
}

const selectSuperAdmin = `
	SELECT
		id, email, name, password_hash, active,
		created_at, updated_at
	FROM super_admins`

func (r *SuperAdminsRepo) scanOne(row *sql.Row) (superadmins.SuperAdmin, error) {
	var sa superadmins.SuperAdmin
	if err := row.Scan(
		&sa.ID,
		&sa.Email,
		&sa.Name,
		&sa.PasswordHash,
		&sa.Active,
		&sa.CreatedAt,
		&sa.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return superadmins.SuperAdmin{}, ErrNotFound
		}
		return superadmins.SuperAdmin{}, err
	}
	return sa, nil
}
