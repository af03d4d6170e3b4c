package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache es un cache TTL en memoria, process-local.
// Es una optimización pura: perder una entrada solo causa recomputar.
// Limitación conocida: no hay consistencia entre procesos; un deploy
// horizontal tendrá caches independientes por instancia.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	maxEntries int
	now        func() time.Time
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type Options struct {
	// TTL por defecto para Set. Obligatorio > 0.
	TTL time.Duration

	// Cota blanda de tamaño. Al superarla, un insert dispara un sweep
	// de entradas vencidas (oportunista, sin timer de fondo).
	MaxEntries int

	// Inyectable para tests.
	Now func() time.Time
}

const defaultMaxEntries = 1000

func New[V any](opts Options) *Cache[V] {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = defaultMaxEntries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: opts.TTL,
		maxEntries: opts.MaxEntries,
		now:        opts.Now,
	}
}

// Get devuelve el valor si existe y no venció. Una entrada vencida
// se borra en el acto y cuenta como miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return e.value, true
}

// Set inserta con el TTL por defecto del cache.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL inserta con TTL explícito (para acotar, p.ej., al exp de un token).
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if c == nil || ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.sweepLocked()
	}
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Delete evicta una entrada puntual (p.ej. token inválido: que un retry
// con el mismo token no sirva basura cacheada).
func (c *Cache[V]) Delete(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeletePrefix purga todas las entradas cuya key empieza con prefix.
// Es el mecanismo de invalidación explícita del response cache.
func (c *Cache[V]) DeletePrefix(prefix string) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

// Len devuelve la cantidad de entradas (incluye vencidas aún no barridas).
func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[V]) sweepLocked() {
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
