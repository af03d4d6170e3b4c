package auth

import (
	"context"
	"errors"
)

// Errores estables del verificador. El middleware los traduce a códigos HTTP.
var (
	ErrTokenMissing = errors.New("token missing")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// TokenVerifier verifica un token firmado y devuelve claims o error.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenSigner emite un token firmado para los claims dados.
type TokenSigner interface {
	Sign(ctx context.Context, claims Claims) (string, error)
}
