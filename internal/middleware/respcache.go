package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"restaurant-ordering/internal/platform/cache"
)

type cachedResponse struct {
	Status      int
	ContentType string
	Body        []byte
	ETag        string
}

// ResponseCache cachea respuestas GET públicas (menú, perfil del
// restaurante) por tenant. Cada entrada lleva un ETag fuerte para que
// los clientes revaliden con If-None-Match y se lleven un 304.
//
// Las escrituras del dominio purgan por prefijo, así el menú nunca
// queda servido más viejo que el último cambio confirmado.
type ResponseCache struct {
	store *cache.Cache[cachedResponse]
}

func NewResponseCache(maxEntries int) *ResponseCache {
	return &ResponseCache{
		store: cache.New[cachedResponse](cache.Options{
			// TTL por entrada lo fija cada Wrap; acá solo el tope.
			TTL:        time.Minute,
			MaxEntries: maxEntries,
		}),
	}
}

// Wrap devuelve el middleware para un tipo de recurso (kind) con su TTL.
// Solo cachea GET con status 200; todo lo demás pasa directo.
func (c *ResponseCache) Wrap(kind string, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			tenant, ok := TenantFrom(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(kind, tenant.ID, r.URL.Query())

			if entry, hit := c.store.Get(key); hit {
				serveCached(w, r, entry, "HIT")
				return
			}

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK, capture: true}
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				// Errores no se cachean; ya salieron por el writer real.
				return
			}

			entry := cachedResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.buf.Bytes(),
				ETag:        etagFor(rec.buf.Bytes()),
			}
			c.store.SetTTL(key, entry, ttl)
			serveCached(w, r, entry, "MISS")
		})
	}
}

// Purge invalida todas las entradas de un kind para un tenant.
// Devuelve cuántas entradas se fueron.
func (c *ResponseCache) Purge(kind, tenantID string) int {
	return c.store.DeletePrefix(kind + ":" + tenantID + ":")
}

// PurgePattern invalida por prefijo arbitrario ("menu:", "" = todo).
// La usa el endpoint de operador de plataforma.
func (c *ResponseCache) PurgePattern(prefix string) int {
	return c.store.DeletePrefix(prefix)
}

func cacheKey(kind, tenantID string, q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte(':')
	b.WriteString(tenantID)
	b.WriteByte(':')
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(q[k], ","))
	}
	return b.String()
}

func etagFor(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func serveCached(w http.ResponseWriter, r *http.Request, entry cachedResponse, verdict string) {
	w.Header().Set("X-Cache", verdict)
	w.Header().Set("ETag", entry.ETag)
	if entry.ContentType != "" {
		w.Header().Set("Content-Type", entry.ContentType)
	}

	if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(entry.Status)
	w.Write(entry.Body)
}

// responseRecorder captura status y body sin escribir al writer real
// cuando capture está activo; el caller decide qué sale al cliente.
type responseRecorder struct {
	http.ResponseWriter
	status  int
	buf     bytes.Buffer
	capture bool
	wrote   bool
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	if r.capture && status == http.StatusOK {
		// El 200 lo emite serveCached con los headers de cache puestos.
		r.wrote = true
		return
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.capture && (r.status == http.StatusOK) {
		return r.buf.Write(p)
	}
	return r.ResponseWriter.Write(p)
}
