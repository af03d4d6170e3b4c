package admins

import "time"

// Role define los roles de admin por tenant.
// @Enum owner, manager, staff
type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Permisos chequeados por el authorization gate. Membresía exacta,
// sin jerarquía implícita.
const (
	PermMenuWrite     = "menu:write"
	PermTablesWrite   = "tables:write"
	PermOrdersRead    = "orders:read"
	PermOrdersWrite   = "orders:write"
	PermAdminsManage  = "admins:manage"
	PermCustomersRead = "customers:read"
)

// DefaultPermissions devuelve el set inicial por rol. Editable después
// vía admins:manage; es solo el punto de partida.
func DefaultPermissions(r Role) []string {
	switch r {
	case RoleOwner:
		return []string{PermMenuWrite, PermTablesWrite, PermOrdersRead, PermOrdersWrite, PermAdminsManage, PermCustomersRead}
	case RoleManager:
		return []string{PermMenuWrite, PermTablesWrite, PermOrdersRead, PermOrdersWrite, PermCustomersRead}
	case RoleStaff:
		return []string{PermOrdersRead, PermOrdersWrite}
	default:
		return nil
	}
}

func ValidRole(r Role) bool {
	switch r {
	case RoleOwner, RoleManager, RoleStaff:
		return true
	}
	return false
}

// Admin representa una cuenta de staff scoped por tenant.
// Unicidad compuesta: (tenant_id, email).
type Admin struct {
	ID       string
	TenantID string

	Email        string
	Name         string
	PasswordHash string

	Role        Role
	Permissions []string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
