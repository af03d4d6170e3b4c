package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/ports/auth"
)

var testSecret = []byte("test-secret-0123456789")

func mustSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(testSecret)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func mustVerifier(t *testing.T) *Verifier {
	t.Helper()
	v, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	return v
}

func TestVerify_RoundTrip_CachedEqualsFresh(t *testing.T) {
	s := mustSigner(t)
	v := mustVerifier(t)

	token, err := s.Sign(context.Background(), auth.Claims{
		SubjectID: "admin-1",
		TenantID:  "tenant-x",
		Type:      auth.TypeAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Primera pasada: verificación criptográfica.
	fresh, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify (fresh): %v", err)
	}

	// Segunda pasada: servida del cache. Mismo payload.
	cached, err := v.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify (cached): %v", err)
	}

	if fresh.SubjectID != cached.SubjectID ||
		fresh.TenantID != cached.TenantID ||
		fresh.Type != cached.Type ||
		!fresh.ExpiresAt.Equal(cached.ExpiresAt) {
		t.Fatalf("cached payload differs from fresh: %+v vs %+v", cached, fresh)
	}
	if fresh.SubjectID != "admin-1" || fresh.TenantID != "tenant-x" || fresh.Type != auth.TypeAdmin {
		t.Fatalf("unexpected claims: %+v", fresh)
	}
}

func TestVerify_MissingToken(t *testing.T) {
	v := mustVerifier(t)

	if _, err := v.Verify(context.Background(), "  "); !errors.Is(err, auth.ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerify_GarbageToken(t *testing.T) {
	v := mustVerifier(t)

	if _, err := v.Verify(context.Background(), "not.a.jwt"); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	s := mustSigner(t)
	token, _ := s.Sign(context.Background(), auth.Claims{
		SubjectID: "admin-1",
		Type:      auth.TypeAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	})

	other, err := NewVerifier([]byte("a-different-secret"))
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if _, err := other.Verify(context.Background(), token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestVerify_ExpiredToken_NotServableFromCache(t *testing.T) {
	s := mustSigner(t)
	v := mustVerifier(t)

	token, err := s.Sign(context.Background(), auth.Claims{
		SubjectID: "admin-1",
		TenantID:  "tenant-x",
		Type:      auth.TypeAdmin,
		ExpiresAt: time.Now().Add(50 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Válido ahora: queda cacheado.
	if _, err := v.Verify(context.Background(), token); err != nil {
		t.Fatalf("Verify before expiry: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	// Vencido: el cache no puede rescatarlo.
	if _, err := v.Verify(context.Background(), token); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	// Y el retry con el mismo string tampoco (entrada evictada).
	if _, err := v.Verify(context.Background(), token); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired on retry, got %v", err)
	}
}

func TestVerify_RejectsUnknownPrincipalType(t *testing.T) {
	s := mustSigner(t)
	v := mustVerifier(t)

	token, err := s.Sign(context.Background(), auth.Claims{
		SubjectID: "x",
		Type:      auth.PrincipalType("robot"),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := v.Verify(context.Background(), token); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for unknown principal type, got %v", err)
	}
}
