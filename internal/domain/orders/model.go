package orders

import "time"

// Line es un renglón de la orden. Nombre y precio son snapshot al momento
// de ordenar: cambios posteriores del menú no reescriben órdenes viejas.
type Line struct {
	MenuItemID     string
	Name           string
	Quantity       int
	UnitPriceCents int64
}

func (l Line) SubtotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}

// Order es un pedido scoped por tenant. CustomerID y TableID son
// opcionales (orden de mostrador / orden en mesa sin cuenta).
type Order struct {
	ID       string
	TenantID string

	CustomerID string
	TableID    string

	Lines      []Line
	Status     Status
	TotalCents int64
	Notes      string

	PlacedAt  time.Time
	UpdatedAt time.Time
}
