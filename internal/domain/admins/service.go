package admins

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
	ErrEmailTaken         = errors.New("email already registered for tenant")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactive           = errors.New("admin inactive")
)

const tokenTTL = 12 * time.Hour

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
	Role     Role

	// Si viene vacío, se aplican los defaults del rol.
	Permissions []string
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (Admin, error) {
	tenantID = strings.TrimSpace(tenantID)
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)

	if tenantID == "" || email == "" || name == "" {
		return Admin{}, ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return Admin{}, ErrInvalidInput
	}
	if !ValidRole(in.Role) {
		return Admin{}, ErrInvalidInput
	}

	// Unicidad compuesta (tenant, email). El repo postgres además tiene UNIQUE.
	if _, err := s.repo.GetByEmail(ctx, tenantID, email); err == nil {
		return Admin{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Admin{}, err
	}

	perms := in.Permissions
	if len(perms) == 0 {
		perms = DefaultPermissions(in.Role)
	}

	now := s.now()
	a := Admin{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         in.Role,
		Permissions:  perms,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// Login valida credenciales y emite un token atado al tenant.
func (s *Service) Login(ctx context.Context, tenantID, email, password string) (Admin, string, error) {
	tenantID = strings.TrimSpace(tenantID)
	email = normalizeEmail(email)
	if tenantID == "" || email == "" || password == "" {
		return Admin{}, "", ErrInvalidCredentials
	}

	a, err := s.repo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return Admin{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return Admin{}, "", ErrInvalidCredentials
	}
	if !a.Active {
		return Admin{}, "", ErrInactive
	}

	token, err := s.signer.Sign(ctx, auth.Claims{
		SubjectID: a.ID,
		TenantID:  a.TenantID,
		Type:      auth.TypeAdmin,
		ExpiresAt: s.now().Add(tokenTTL),
	})
	if err != nil {
		return Admin{}, "", err
	}
	return a, token, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id string) (Admin, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Admin{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]Admin, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByTenant(ctx, tenantID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	Role        *Role
	Permissions *[]string
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in UpdateInput) (Admin, error) {
	a, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Admin{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Admin{}, ErrInvalidInput
		}
		a.Name = name
	}
	if in.Role != nil {
		if !ValidRole(*in.Role) {
			return Admin{}, ErrInvalidInput
		}
		a.Role = *in.Role
	}
	if in.Permissions != nil {
		a.Permissions = *in.Permissions
	}

	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

// SetActive activa/desactiva la cuenta. Un admin desactivado pierde
// acceso apenas venza su entrada en el principal cache (TTL corto).
func (s *Service) SetActive(ctx context.Context, tenantID, id string, active bool) (Admin, error) {
	a, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Admin{}, err
	}
	if a.Active == active {
		return a, nil
	}

	a.Active = active
	a.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, a); err != nil {
		return Admin{}, err
	}
	return a, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
