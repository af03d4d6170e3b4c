package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"restaurant-ordering/internal/platform/cache"
	"restaurant-ordering/internal/ports/auth"
)

// TTL del cache de verificación: evita repetir la verificación de firma
// (el paso caro) para el mismo token. Acotado además por el exp del token.
const (
	verifyTTL      = 5 * time.Minute
	verifyCacheMax = 1000
)

// Verifier valida tokens HMAC y cachea payloads decodificados por el
// string crudo del token.
type Verifier struct {
	secret []byte
	cache  *cache.Cache[auth.Claims]
	now    func() time.Time
}

func NewVerifier(secret []byte) (*Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Verifier{
		secret: secret,
		cache: cache.New[auth.Claims](cache.Options{
			TTL:        verifyTTL,
			MaxEntries: verifyCacheMax,
		}),
		now: time.Now,
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrTokenMissing
	}

	if c, ok := v.cache.Get(token); ok {
		// El TTL de inserción ya está acotado al exp, pero igual no
		// confiamos en una entrada con el exp vencido.
		if v.now().After(c.ExpiresAt) {
			v.cache.Delete(token)
			return auth.Claims{}, auth.ErrTokenExpired
		}
		return c, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		// Evicción proactiva: un retry con el mismo token vencido/roto
		// no debe servir basura cacheada.
		v.cache.Delete(token)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, auth.ErrTokenExpired
		}
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	typ := auth.PrincipalType(tc.PrincipalType)
	switch typ {
	case auth.TypeAdmin, auth.TypeSuperAdmin, auth.TypeCustomer:
	default:
		return auth.Claims{}, auth.ErrTokenInvalid
	}
	if tc.Subject == "" || tc.ExpiresAt == nil {
		return auth.Claims{}, auth.ErrTokenInvalid
	}

	c := auth.Claims{
		SubjectID: tc.Subject,
		TenantID:  tc.TenantID,
		Type:      typ,
		ExpiresAt: tc.ExpiresAt.Time,
	}

	// TTL = min(verifyTTL, lo que le queda de vida al token).
	ttl := verifyTTL
	if remaining := c.ExpiresAt.Sub(v.now()); remaining < ttl {
		ttl = remaining
	}
	if ttl > 0 {
		v.cache.SetTTL(token, c, ttl)
	}

	return c, nil
}

var _ auth.TokenVerifier = (*Verifier)(nil)
