package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"restaurant-ordering/internal/platform/logger"
)

// Audit loguea una línea por request con tenant y principal resueltos,
// después de pasar por ResolveTenant y Authenticate.
func Audit(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			fields := map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			}
			if t, ok := TenantFrom(r.Context()); ok {
				fields["tenant"] = t.ID
			}
			if p, ok := PrincipalFrom(r.Context()); ok {
				fields["principal_type"] = string(p.Type)
				fields["principal"] = p.SubjectID()
			}

			log.Info("request", fields)
		})
	}
}
