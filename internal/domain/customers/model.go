package customers

import "time"

// Customer es el comensal registrado de un restaurante.
// Unicidad compuesta: (tenant_id, email).
type Customer struct {
	ID       string
	TenantID string

	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
