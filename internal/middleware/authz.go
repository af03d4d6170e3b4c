package middleware

import (
	"net/http"

	"restaurant-ordering/internal/ports/auth"
)

// RequireAuth corta los requests anónimos antes de llegar al handler.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFrom(r.Context()); !ok {
			WriteError(w, http.StatusUnauthorized, CodeNoToken, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission exige un permiso puntual. 401 si no hay principal,
// 403 nombrando el permiso que faltó (le ahorra un ida y vuelta al
// que integra contra la API).
func RequirePermission(perm string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, CodeNotAuthenticated, "authentication required")
				return
			}
			if !p.HasPermission(perm) {
				WriteError(w, http.StatusForbidden, CodeInsufficientPerms, "missing permission: "+perm)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole exige que el principal sea un admin con alguno de los
// roles dados.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				WriteError(w, http.StatusUnauthorized, CodeNotAuthenticated, "authentication required")
				return
			}
			if !p.HasRole(roles...) {
				WriteError(w, http.StatusForbidden, CodeRoleNotAuthorized, "role not authorized for this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSuperAdmin protege las rutas de plataforma.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, CodeNotAuthenticated, "authentication required")
			return
		}
		if p.Type != auth.TypeSuperAdmin {
			WriteError(w, http.StatusForbidden, CodeInsufficientPerms, "platform access only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCustomer limita la ruta a clientes finales (pedidos propios).
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFrom(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, CodeNotAuthenticated, "authentication required")
			return
		}
		if p.Type != auth.TypeCustomer {
			WriteError(w, http.StatusForbidden, CodeInsufficientPerms, "customer account required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
