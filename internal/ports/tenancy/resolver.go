package tenancy

import (
	"context"
	"errors"
)

// Errores terminales de resolución (sin retry). Cada uno mapea a un
// código estable en la capa HTTP.
var (
	ErrNotFound             = errors.New("tenant not found")
	ErrInactive             = errors.New("tenant inactive")
	ErrSubscriptionInactive = errors.New("subscription inactive")
)

// Tenant es el snapshot que viaja en el contexto del request.
type Tenant struct {
	ID                 string
	Name               string
	Subdomain          string
	Active             bool
	SubscriptionStatus string
}

// Resolver resuelve el tenant de un request (subdominio u override).
type Resolver interface {
	ResolveSubdomain(ctx context.Context, subdomain string) (Tenant, error)
	ResolveByID(ctx context.Context, id string) (Tenant, error)
}
