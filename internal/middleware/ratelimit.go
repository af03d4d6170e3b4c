package middleware

import (
	"net"
	"net/http"
	"strconv"

	"restaurant-ordering/internal/platform/ratelimit"
)

// KeyFunc deriva la clave de rate limit de un request.
type KeyFunc func(r *http.Request) string

// KeyByIP agrupa por IP de origen. Para login y register, donde todavía
// no hay principal.
func KeyByIP(r *http.Request) string {
	return clientIP(r)
}

// KeyByIPAndPrincipal separa el cupo por principal autenticado, cayendo
// a IP sola para anónimos. Así un cliente ruidoso detrás de un NAT no
// agota el cupo del resto.
func KeyByIPAndPrincipal(r *http.Request) string {
	ip := clientIP(r)
	if p, ok := PrincipalFrom(r.Context()); ok {
		return ip + ":" + string(p.Type) + ":" + p.SubjectID()
	}
	return ip
}

// RateLimit aplica el limitador y expone los headers X-RateLimit-* en
// toda respuesta, permitida o no. En deny responde 429 con Retry-After
// en segundos.
func RateLimit(l *ratelimit.Limiter, key KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := l.Allow(key(r))

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))

			if !d.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfter(l.Now())))
				WriteError(w, http.StatusTooManyRequests, CodeRateLimitExceeded, "too many requests, slow down")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	// RealIP de chi ya reescribió RemoteAddr si vino X-Forwarded-For.
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
