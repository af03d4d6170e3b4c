package superadmins

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"restaurant-ordering/internal/ports/auth"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("super admin inactive")
)

// Token de plataforma más corto que el de admins de tenant.
const tokenTTL = 4 * time.Hour

type Service struct {
	repo   Repository
	signer auth.TokenSigner
	now    func() time.Time
}

func NewService(repo Repository, signer auth.TokenSigner) *Service {
	return &Service{
		repo:   repo,
		signer: signer,
		now:    time.Now,
	}
}

type CreateInput struct {
	Email    string
	Name     string
	Password string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (SuperAdmin, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)

	if email == "" || name == "" || len(in.Password) < 8 {
		return SuperAdmin{}, ErrInvalidInput
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return SuperAdmin{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return SuperAdmin{}, err
	}

	now := s.now()
	sa := SuperAdmin{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, sa); err != nil {
		return SuperAdmin{}, err
	}
	return sa, nil
}

// Login: la credencial de plataforma no lleva tenant (TenantID vacío).
func (s *Service) Login(ctx context.Context, email, password string) (SuperAdmin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return SuperAdmin{}, "", ErrInvalidCredentials
	}

	sa, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return SuperAdmin{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(sa.PasswordHash), []byte(password)); err != nil {
		return SuperAdmin{}, "", ErrInvalidCredentials
	}
	if !sa.Active {
		return SuperAdmin{}, "", ErrInactive
	}

	token, err := s.signer.Sign(ctx, auth.Claims{
		SubjectID: sa.ID,
		Type:      auth.TypeSuperAdmin,
		ExpiresAt: s.now().Add(tokenTTL),
	})
	if err != nil {
		return SuperAdmin{}, "", err
	}
	return sa, token, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (SuperAdmin, error) {
	sa, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return SuperAdmin{}, ErrNotFound
	}
	return sa, nil
}
