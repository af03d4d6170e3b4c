package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"restaurant-ordering/internal/ports/auth"
)

var ErrNoSecret = errors.New("jwtauth: secret required")

// tokenClaims es el payload firmado. tenant_id viaja vacío solo en
// credenciales de plataforma (super-admin).
type tokenClaims struct {
	jwt.RegisteredClaims
	TenantID      string `json:"tenant_id,omitempty"`
	PrincipalType string `json:"principal_type"`
}

// Signer emite tokens HMAC-SHA256 con el secreto compartido del deploy.
type Signer struct {
	secret []byte
	now    func() time.Time
}

func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &Signer{
		secret: secret,
		now:    time.Now,
	}, nil
}

func (s *Signer) Sign(_ context.Context, c auth.Claims) (string, error) {
	subject := strings.TrimSpace(c.SubjectID)
	if subject == "" || c.ExpiresAt.IsZero() {
		return "", errors.New("jwtauth: subject and expiry required")
	}

	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(c.ExpiresAt),
		},
		TenantID:      strings.TrimSpace(c.TenantID),
		PrincipalType: string(c.Type),
	})

	return tok.SignedString(s.secret)
}

var _ auth.TokenSigner = (*Signer)(nil)
