package middleware

import (
	"context"

	"restaurant-ordering/internal/ports/auth"
	"restaurant-ordering/internal/ports/tenancy"
)

type ctxKey string

const (
	tenantKey    ctxKey = "tenant"
	principalKey ctxKey = "principal"
)

func WithTenant(ctx context.Context, t tenancy.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

// TenantFrom devuelve el tenant resuelto para el request, si hay.
func TenantFrom(ctx context.Context) (tenancy.Tenant, bool) {
	v := ctx.Value(tenantKey)
	if v == nil {
		return tenancy.Tenant{}, false
	}
	t, ok := v.(tenancy.Tenant)
	return t, ok
}

func WithPrincipal(ctx context.Context, p auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFrom devuelve el principal autenticado, si hay.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	v := ctx.Value(principalKey)
	if v == nil {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}
