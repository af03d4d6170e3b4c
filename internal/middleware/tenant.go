package middleware

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"restaurant-ordering/internal/ports/tenancy"
)

// OverrideHeader permite fijar el tenant por id en dev/tests scripteados.
// En producción el tenant sale del subdominio.
const OverrideHeader = "x-restaurant-id"

// ResolveTenant resuelve el tenant del request y lo deja en el contexto.
// Falla cerrado: sin tenant válido/activo no se sigue (error terminal,
// sin retry).
func ResolveTenant(resolver tenancy.Resolver, baseDomain string) func(http.Handler) http.Handler {
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				t   tenancy.Tenant
				err error
			)

			if id := strings.TrimSpace(r.Header.Get(OverrideHeader)); id != "" {
				t, err = resolver.ResolveByID(r.Context(), id)
			} else {
				sub := subdomainOf(r.Host, baseDomain)
				if sub == "" {
					WriteError(w, http.StatusNotFound, CodeTenantNotFound, "restaurant not found")
					return
				}
				t, err = resolver.ResolveSubdomain(r.Context(), sub)
			}

			if err != nil {
				writeTenantError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
		})
	}
}

func writeTenantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tenancy.ErrInactive):
		WriteError(w, http.StatusForbidden, CodeTenantInactive, "restaurant is deactivated")
	case errors.Is(err, tenancy.ErrSubscriptionInactive):
		WriteError(w, http.StatusPaymentRequired, CodeSubscriptionInactive, "subscription is not active")
	default:
		WriteError(w, http.StatusNotFound, CodeTenantNotFound, "restaurant not found")
	}
}

// subdomainOf saca el label de subdominio de host relativo a baseDomain.
// "milo.example.com" + "example.com" => "milo". Sin match => "".
func subdomainOf(host, baseDomain string) string {
	if baseDomain == "" {
		return ""
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	if !strings.HasSuffix(host, "."+baseDomain) {
		return ""
	}
	sub := strings.TrimSuffix(host, "."+baseDomain)

	// Un solo label: "a.b.example.com" no resuelve tenant.
	if sub == "" || strings.Contains(sub, ".") {
		return ""
	}
	return sub
}
