package ratelimit

import (
	"sync"
	"time"
)

// Limiter es un rate limiter de ventana fija por key, process-local.
// Cada key vive en estado {count, resetAt}; count arranca en 1 cuando
// now > resetAt y crece monótono dentro de la ventana.
// Limitación conocida: no coordina entre instancias (cada proceso
// cuenta por su lado); alcanza para un deploy single-process.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	maxRequests int
	window      time.Duration

	now  func() time.Time
	stop chan struct{}
	done chan struct{}
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Decision es el resultado de Allow, con lo necesario para armar
// los headers X-RateLimit-* y Retry-After.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Config struct {
	// MaxRequests por ventana. <= 0 deshabilita el limiter (todo pasa).
	MaxRequests int
	Window      time.Duration

	// Intervalo del sweep de fondo. Default 60s.
	SweepEvery time.Duration

	// Inyectable para tests.
	Now func() time.Time
}

func New(cfg Config) *Limiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.SweepEvery <= 0 {
		cfg.SweepEvery = time.Minute
	}

	l := &Limiter{
		buckets:     make(map[string]*bucket),
		maxRequests: cfg.MaxRequests,
		window:      cfg.Window,
		now:         cfg.Now,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}

	go l.sweepLoop(cfg.SweepEvery)
	return l
}

// Allow consume un slot para key y decide.
func (l *Limiter) Allow(key string) Decision {
	if l.maxRequests <= 0 {
		return Decision{Allowed: true, Limit: l.maxRequests, Remaining: l.maxRequests}
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		// Ventana nueva: count resetea a 1.
		b = &bucket{count: 1, resetAt: now.Add(l.window)}
		l.buckets[key] = b
		return Decision{
			Allowed:   true,
			Limit:     l.maxRequests,
			Remaining: l.maxRequests - 1,
			ResetAt:   b.resetAt,
		}
	}

	b.count++
	if b.count > l.maxRequests {
		return Decision{
			Allowed:   false,
			Limit:     l.maxRequests,
			Remaining: 0,
			ResetAt:   b.resetAt,
		}
	}

	return Decision{
		Allowed:   true,
		Limit:     l.maxRequests,
		Remaining: l.maxRequests - b.count,
		ResetAt:   b.resetAt,
	}
}

// Now expone el reloj del limiter (el mismo que usa Allow), para que
// quien compute Retry-After sea consistente con la decisión.
func (l *Limiter) Now() time.Time {
	return l.now()
}

// RetryAfter devuelve los segundos hasta el reset (para el header).
func (d Decision) RetryAfter(now time.Time) int {
	secs := int(d.ResetAt.Sub(now).Seconds())
	if secs < 0 {
		return 0
	}
	return secs
}

// Stop corta el sweep de fondo. Idempotente no: llamar una sola vez
// (se usa desde el shutdown del proceso).
func (l *Limiter) Stop() {
	close(l.stop)
	<-l.done
}

func (l *Limiter) sweepLoop(every time.Duration) {
	defer close(l.done)

	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep borra buckets cuya ventana ya pasó, acotando memoria.
func (l *Limiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, b := range l.buckets {
		if now.After(b.resetAt) {
			delete(l.buckets, k)
		}
	}
}
