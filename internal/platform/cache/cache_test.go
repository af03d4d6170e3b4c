package cache

import (
	"testing"
	"time"
)

func TestCache_GetMissAfterTTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New[string](Options{
		TTL: time.Minute,
		Now: func() time.Time { return now },
	})

	c.Set("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("expected hit with v, got ok=%v v=%q", ok, v)
	}

	// Dentro del TTL sigue sirviendo.
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected hit at 59s")
	}

	// Pasado el TTL nunca devuelve la entrada.
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected miss after TTL")
	}
}

func TestCache_SetTTLOverridesDefault(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New[int](Options{
		TTL: time.Hour,
		Now: func() time.Time { return now },
	})

	c.SetTTL("short", 1, time.Second)

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("short"); ok {
		t.Fatalf("expected miss: explicit TTL was 1s")
	}
}

func TestCache_DeletePrefix(t *testing.T) {
	c := New[string](Options{TTL: time.Minute})

	c.Set("menu:t1:a", "x")
	c.Set("menu:t1:b", "y")
	c.Set("menu:t2:a", "z")

	if n := c.DeletePrefix("menu:t1:"); n != 2 {
		t.Fatalf("expected 2 purged, got %d", n)
	}
	if _, ok := c.Get("menu:t2:a"); !ok {
		t.Fatalf("t2 entry should survive")
	}
}

func TestCache_SweepOnInsertPastBound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := New[int](Options{
		TTL:        time.Minute,
		MaxEntries: 3,
		Now:        func() time.Time { return now },
	})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Vencen todas; el próximo insert debe barrerlas.
	now = now.Add(2 * time.Minute)
	c.Set("d", 4)

	if got := c.Len(); got != 1 {
		t.Fatalf("expected sweep to leave 1 entry, got %d", got)
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatalf("fresh entry must survive sweep")
	}
}
