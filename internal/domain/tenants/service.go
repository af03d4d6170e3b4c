package tenants

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-ordering/internal/platform/cache"
	"restaurant-ordering/internal/ports/tenancy"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrSubdomainTaken = errors.New("subdomain already taken")
)

// subdominios: minúsculas, dígitos y guiones, 3-40 chars, sin guión en los bordes
var subdomainRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,38}[a-z0-9])$`)

type Service struct {
	repo Repository
	now  func() time.Time

	// Cache corto de resolución (mismo patrón que el principal loader).
	// Perderlo solo cuesta una lectura extra a storage.
	resolveCache *cache.Cache[tenancy.Tenant]
}

const resolveTTL = 60 * time.Second

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		resolveCache: cache.New[tenancy.Tenant](cache.Options{
			TTL: resolveTTL,
		}),
	}
}

type CreateInput struct {
	Name      string
	Subdomain string
	Address   string
	Phone     string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Tenant, error) {
	name := strings.TrimSpace(in.Name)
	subdomain := strings.ToLower(strings.TrimSpace(in.Subdomain))

	if name == "" || subdomain == "" {
		return Tenant{}, ErrInvalidInput
	}
	if !subdomainRe.MatchString(subdomain) {
		return Tenant{}, ErrInvalidInput
	}

	// Unicidad por subdominio (el repo postgres además tiene UNIQUE).
	if _, err := s.repo.GetBySubdomain(ctx, subdomain); err == nil {
		return Tenant{}, ErrSubdomainTaken
	}

	now := s.now()
	t := Tenant{
		ID:                 uuid.NewString(),
		Name:               name,
		Subdomain:          subdomain,
		Active:             true,
		SubscriptionStatus: SubscriptionActive,
		Address:            strings.TrimSpace(in.Address),
		Phone:              strings.TrimSpace(in.Phone),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return Tenant{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Tenant{}, ErrNotFound
	}
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Tenant{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) List(ctx context.Context) ([]Tenant, error) {
	return s.repo.List(ctx)
}

// SetActive suspende o reactiva un tenant. Idempotente.
func (s *Service) SetActive(ctx context.Context, id string, active bool) (Tenant, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Tenant{}, err
	}
	if t.Active == active {
		return t, nil
	}

	t.Active = active
	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Tenant{}, err
	}
	s.invalidate(t)
	return t, nil
}

func (s *Service) SetSubscription(ctx context.Context, id string, status SubscriptionStatus) (Tenant, error) {
	switch status {
	case SubscriptionActive, SubscriptionPastDue, SubscriptionCanceled:
	default:
		return Tenant{}, ErrInvalidInput
	}

	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Tenant{}, err
	}

	t.SubscriptionStatus = status
	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Tenant{}, err
	}
	s.invalidate(t)
	return t, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name    *string
	Address *string
	Phone   *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Tenant, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return Tenant{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Tenant{}, ErrInvalidInput
		}
		t.Name = name
	}
	if in.Address != nil {
		t.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		t.Phone = strings.TrimSpace(*in.Phone)
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Tenant{}, err
	}
	s.invalidate(t)
	return t, nil
}

// ResolveSubdomain implementa tenancy.Resolver.
// Falla cerrado: sin tenant activo y con suscripción al día, no hay request.
func (s *Service) ResolveSubdomain(ctx context.Context, subdomain string) (tenancy.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return tenancy.Tenant{}, tenancy.ErrNotFound
	}

	if snap, ok := s.resolveCache.Get("sub:" + subdomain); ok {
		return snap, checkServeable(snap)
	}

	t, err := s.repo.GetBySubdomain(ctx, subdomain)
	if err != nil {
		return tenancy.Tenant{}, tenancy.ErrNotFound
	}

	snap := snapshot(t)
	s.resolveCache.Set("sub:"+subdomain, snap)
	s.resolveCache.Set("id:"+t.ID, snap)
	return snap, checkServeable(snap)
}

// ResolveByID implementa tenancy.Resolver (override x-restaurant-id).
func (s *Service) ResolveByID(ctx context.Context, id string) (tenancy.Tenant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return tenancy.Tenant{}, tenancy.ErrNotFound
	}

	if snap, ok := s.resolveCache.Get("id:" + id); ok {
		return snap, checkServeable(snap)
	}

	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return tenancy.Tenant{}, tenancy.ErrNotFound
	}

	snap := snapshot(t)
	s.resolveCache.Set("id:"+id, snap)
	s.resolveCache.Set("sub:"+t.Subdomain, snap)
	return snap, checkServeable(snap)
}

// invalidate saca el tenant del cache de resolución tras una mutación,
// para que suspensiones se reflejen sin esperar el TTL.
func (s *Service) invalidate(t Tenant) {
	s.resolveCache.Delete("id:" + t.ID)
	s.resolveCache.Delete("sub:" + t.Subdomain)
}

func snapshot(t Tenant) tenancy.Tenant {
	return tenancy.Tenant{
		ID:                 t.ID,
		Name:               t.Name,
		Subdomain:          t.Subdomain,
		Active:             t.Active,
		SubscriptionStatus: string(t.SubscriptionStatus),
	}
}

func checkServeable(t tenancy.Tenant) error {
	if !t.Active {
		return tenancy.ErrInactive
	}
	if t.SubscriptionStatus != string(SubscriptionActive) {
		return tenancy.ErrSubscriptionInactive
	}
	return nil
}
