package tables

import "time"

// Table es una mesa física del restaurante.
// Unicidad compuesta: (tenant_id, number).
type Table struct {
	ID       string
	TenantID string

	Number int
	Seats  int
	Active bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
