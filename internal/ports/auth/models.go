package auth

import "time"

// PrincipalType distingue el tipo de actor que porta el token.
type PrincipalType string

const (
	TypeAdmin      PrincipalType = "admin"
	TypeSuperAdmin PrincipalType = "superadmin"
	TypeCustomer   PrincipalType = "customer"
)

// Claims representa el payload decodificado de un token.
// TenantID viene vacío solo para super-admins (credencial global de plataforma).
type Claims struct {
	SubjectID string
	TenantID  string
	Type      PrincipalType
	ExpiresAt time.Time
}

// Principal es la unión etiquetada del actor autenticado.
// Exactamente uno de Admin/SuperAdmin/Customer está seteado según Type.
type Principal struct {
	Type PrincipalType

	Admin      *AdminPrincipal
	SuperAdmin *SuperAdminPrincipal
	Customer   *CustomerPrincipal
}

type AdminPrincipal struct {
	ID          string
	TenantID    string
	Name        string
	Role        string
	Permissions []string
	Active      bool
}

type SuperAdminPrincipal struct {
	ID     string
	Name   string
	Active bool
}

type CustomerPrincipal struct {
	ID       string
	TenantID string
	Name     string
	Active   bool
}

// SubjectID devuelve el id del actor sin importar la variante.
func (p Principal) SubjectID() string {
	switch p.Type {
	case TypeAdmin:
		if p.Admin != nil {
			return p.Admin.ID
		}
	case TypeSuperAdmin:
		if p.SuperAdmin != nil {
			return p.SuperAdmin.ID
		}
	case TypeCustomer:
		if p.Customer != nil {
			return p.Customer.ID
		}
	}
	return ""
}

// HasPermission: super-admin pasa todo; admin requiere membresía exacta.
// No hay jerarquía implícita de roles.
func (p Principal) HasPermission(perm string) bool {
	if p.Type == TypeSuperAdmin {
		return true
	}
	if p.Type != TypeAdmin || p.Admin == nil {
		return false
	}
	for _, have := range p.Admin.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}

// HasRole valida membresía del rol del admin en la lista permitida.
func (p Principal) HasRole(roles ...string) bool {
	if p.Type == TypeSuperAdmin {
		return true
	}
	if p.Type != TypeAdmin || p.Admin == nil {
		return false
	}
	for _, r := range roles {
		if p.Admin.Role == r {
			return true
		}
	}
	return false
}
