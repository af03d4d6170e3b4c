package middleware

import (
	"errors"
	"net/http"
	"strings"

	"restaurant-ordering/internal/ports/auth"
)

// Authenticate decodifica el bearer token (si viene), chequea el binding
// de tenant y carga el principal al contexto.
//
// Sin header Authorization el request sigue sin principal: el gate de
// cada ruta decide si exige auth (mismo criterio que los handlers
// públicos de menú). Con header presente, cualquier fallo es terminal.
//
// Tenant binding: un token emitido para el tenant A no sirve contra el
// subdominio del tenant B (TENANT_MISMATCH, nunca un error genérico).
func Authenticate(verifier auth.TokenVerifier, loader auth.PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				if strings.TrimSpace(r.Header.Get("Authorization")) != "" {
					// Header presente pero malformado.
					WriteError(w, http.StatusUnauthorized, CodeNoToken, "authorization header malformed")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeTokenError(w, err)
				return
			}

			tenant, hasTenant := TenantFrom(r.Context())
			if claims.TenantID != "" {
				if !hasTenant || claims.TenantID != tenant.ID {
					WriteError(w, http.StatusForbidden, CodeTenantMismatch, "token was issued for another restaurant")
					return
				}
			}

			p, err := loader.Load(r.Context(), claims.Type, claims.SubjectID, claims.TenantID)
			if err != nil {
				writePrincipalError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		WriteError(w, http.StatusUnauthorized, CodeTokenExpired, "token expired, log in again")
	case errors.Is(err, auth.ErrTokenMissing):
		WriteError(w, http.StatusUnauthorized, CodeNoToken, "token required")
	default:
		WriteError(w, http.StatusUnauthorized, CodeTokenInvalid, "token invalid")
	}
}

func writePrincipalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrPrincipalInactive):
		// Distinto de not-found: acá el front muestra "contactá al admin",
		// no "logueate de nuevo".
		WriteError(w, http.StatusForbidden, CodeAccountInactive, "account is deactivated")
	default:
		WriteError(w, http.StatusUnauthorized, CodePrincipalNotFound, "account not found")
	}
}

func bearerToken(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
