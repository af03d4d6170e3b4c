package auth

import (
	"context"
	"errors"
)

var (
	ErrPrincipalNotFound = errors.New("principal not found")
	ErrPrincipalInactive = errors.New("principal inactive")
)

// PrincipalLoader carga el registro vivo del actor, scoped por tenant.
// tenantID va vacío para super-admins.
type PrincipalLoader interface {
	Load(ctx context.Context, typ PrincipalType, subjectID, tenantID string) (Principal, error)
}
