package superadmins

import "time"

// SuperAdmin es el operador de plataforma. Global, sin tenant:
// pasa todo chequeo de permisos (wildcard implícito en el gate).
type SuperAdmin struct {
	ID string

	Email        string
	Name         string
	PasswordHash string
	Active       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
