package menus

import "time"

// Category agrupa items del menú de un tenant.
type Category struct {
	ID       string
	TenantID string

	Name      string
	SortOrder int
	Active    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item es un plato/bebida del menú. Precio en centavos para evitar
// flotantes en dinero.
type Item struct {
	ID         string
	TenantID   string
	CategoryID string

	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	Available   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MenuSection es la vista pública: categoría + sus items disponibles.
type MenuSection struct {
	Category Category
	Items    []Item
}
