package customers

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
	ErrInactive           = errors.New("customer inactive")
)

// Sesión larga para comensales (no manejan datos sensibles de otros).
const tokenTTL = 30 * 24 * time.Hour

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

type RegisterInput struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

func (s *Service) Register(ctx context.Context, tenantID string, in RegisterInput) (Customer, string, error) {
	tenantID = strings.TrimSpace(tenantID)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	name := strings.TrimSpace(in.Name)

	if tenantID == "" || email == "" || name == "" || len(in.Password) < 8 {
		return Customer{}, "", ErrInvalidInput
	}
	if _, err := s.repo.GetByEmail(ctx, tenantID, email); err == nil {
		return Customer{}, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, "", err
	}

	now := s.now()
	c := Customer{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        email,
		Name:         name,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Customer{}, "", err
	}

	token, err := s.mintToken(ctx, c)
	if err != nil {
		return Customer{}, "", err
	}
	return c, token, nil
}

func (s *Service) Login(ctx context.Context, tenantID, email, password string) (Customer, string, error) {
	tenantID = strings.TrimSpace(tenantID)
	email = strings.ToLower(strings.TrimSpace(email))
	if tenantID == "" || email == "" || password == "" {
		return Customer{}, "", ErrInvalidCredentials
	}

	c, err := s.repo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return Customer{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return Customer{}, "", ErrInvalidCredentials
	}
	if !c.Active {
		return Customer{}, "", ErrInactive
	}

	token, err := s.mintToken(ctx, c)
	if err != nil {
		return Customer{}, "", err
	}
	return c, token, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id string) (Customer, error) {
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Customer{}, ErrNotFound
	}
	return c, nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]Customer, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) SetActive(ctx context.Context, tenantID, id string, active bool) (Customer, error) {
	c, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Customer{}, err
	}
	if c.Active == active {
		return c, nil
	}
	c.Active = active
	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return Customer{}, err
	}
	return c, nil
}

func (s *Service) mintToken(ctx context.Context, c Customer) (string, error) {
	return s.signer.Sign(ctx, auth.Claims{
		SubjectID: c.ID,
		TenantID:  c.TenantID,
		Type:      auth.TypeCustomer,
		ExpiresAt: s.now().Add(tokenTTL),
	})
}
