package principal

import (
	"context"
	"strings"
	"time"

	"restaurant-ordering/internal/domain/admins"
	"restaurant-ordering/internal/domain/customers"
	"restaurant-ordering/internal/domain/superadmins"
	"restaurant-ordering/internal/platform/cache"
	"restaurant-ordering/internal/ports/auth"
)

// TTL corto a propósito: isActive tiene que reflejar cambios casi en
// tiempo real (un admin desactivado pierde acceso en <= loadTTL).
// La ventana de staleness está acotada y documentada.
const (
	loadTTL      = 60 * time.Second
	loadCacheMax = 2000
)

// Loader resuelve el registro vivo del principal scoped por tenant,
// con cache por (type, subject, tenant).
//
// Dos requests concurrentes por la misma key no cacheada pueden duplicar
// la lectura a storage: aceptado, no hay lock de coalescing.
type Loader struct {
	admins      *admins.Service
	superadmins *superadmins.Service
	customers   *customers.Service

	cache *cache.Cache[auth.Principal]
}

func NewLoader(a *admins.Service, sa *superadmins.Service, c *customers.Service) *Loader {
	return &Loader{
		admins:      a,
		superadmins: sa,
		customers:   c,
		cache: cache.New[auth.Principal](cache.Options{
			TTL:        loadTTL,
			MaxEntries: loadCacheMax,
		}),
	}
}

func (l *Loader) Load(ctx context.Context, typ auth.PrincipalType, subjectID, tenantID string) (auth.Principal, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return auth.Principal{}, auth.ErrPrincipalNotFound
	}

	key := cacheKey(typ, subjectID, tenantID)
	if p, ok := l.cache.Get(key); ok {
		return p, nil
	}

	p, err := l.load(ctx, typ, subjectID, tenantID)
	if err != nil {
		return auth.Principal{}, err
	}

	// Solo cacheamos cargas exitosas (principal activo).
	l.cache.Set(key, p)
	return p, nil
}

func (l *Loader) load(ctx context.Context, typ auth.PrincipalType, subjectID, tenantID string) (auth.Principal, error) {
	switch typ {
	case auth.TypeAdmin:
		a, err := l.admins.GetByID(ctx, tenantID, subjectID)
		if err != nil {
			return auth.Principal{}, auth.ErrPrincipalNotFound
		}
		if !a.Active {
			return auth.Principal{}, auth.ErrPrincipalInactive
		}
		return auth.Principal{
			Type: auth.TypeAdmin,
			Admin: &auth.AdminPrincipal{
				ID:          a.ID,
				TenantID:    a.TenantID,
				Name:        a.Name,
				Role:        string(a.Role),
				Permissions: a.Permissions,
				Active:      a.Active,
			},
		}, nil

	case auth.TypeSuperAdmin:
		sa, err := l.superadmins.GetByID(ctx, subjectID)
		if err != nil {
			return auth.Principal{}, auth.ErrPrincipalNotFound
		}
		if !sa.Active {
			return auth.Principal{}, auth.ErrPrincipalInactive
		}
		return auth.Principal{
			Type: auth.TypeSuperAdmin,
			SuperAdmin: &auth.SuperAdminPrincipal{
				ID:     sa.ID,
				Name:   sa.Name,
				Active: sa.Active,
			},
		}, nil

	case auth.TypeCustomer:
		c, err := l.customers.GetByID(ctx, tenantID, subjectID)
		if err != nil {
			return auth.Principal{}, auth.ErrPrincipalNotFound
		}
		if !c.Active {
			return auth.Principal{}, auth.ErrPrincipalInactive
		}
		return auth.Principal{
			Type: auth.TypeCustomer,
			Customer: &auth.CustomerPrincipal{
				ID:       c.ID,
				TenantID: c.TenantID,
				Name:     c.Name,
				Active:   c.Active,
			},
		}, nil
	}

	return auth.Principal{}, auth.ErrPrincipalNotFound
}

func cacheKey(typ auth.PrincipalType, subjectID, tenantID string) string {
	return string(typ) + ":" + subjectID + ":" + tenantID
}

var _ auth.PrincipalLoader = (*Loader)(nil)
