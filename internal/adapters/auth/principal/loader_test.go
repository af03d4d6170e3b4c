package principal

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain/admins"
	"restaurant-ordering/internal/platform/cache"
	"restaurant-ordering/internal/ports/auth"
)

// -------------------------
// Repo fake de admins
// -------------------------

type fakeAdminRepo struct {
	byID  map[string]admins.Admin
	loads int
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byID: map[string]admins.Admin{}}
}

func (r *fakeAdminRepo) Create(ctx context.Context, a admins.Admin) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAdminRepo) Update(ctx context.Context, a admins.Admin) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errors.New("repo: not found")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, tenantID, id string) (admins.Admin, error) {
	r.loads++
	a, ok := r.byID[id]
	if !ok || a.TenantID != tenantID {
		return admins.Admin{}, errors.New("repo: not found")
	}
	return a, nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, tenantID, email string) (admins.Admin, error) {
	for _, a := range r.byID {
		if a.TenantID == tenantID && a.Email == email {
			return a, nil
		}
	}
	return admins.Admin{}, errors.New("repo: not found")
}

func (r *fakeAdminRepo) ListByTenant(ctx context.Context, tenantID string) ([]admins.Admin, error) {
	return nil, nil
}

// -------------------------
// Tests
// -------------------------

func newLoaderForTest(repo *fakeAdminRepo, now *time.Time) *Loader {
	l := NewLoader(admins.NewService(repo, nil), nil, nil)
	// cache con reloj inyectado para controlar el TTL
	l.cache = cache.New[auth.Principal](cache.Options{
		TTL: loadTTL,
		Now: func() time.Time { return *now },
	})
	return l
}

func seedAdmin(repo *fakeAdminRepo, active bool) admins.Admin {
	a := admins.Admin{
		ID:          "admin-1",
		TenantID:    "tenant-x",
		Email:       "a@x.test",
		Name:        "Ana",
		Role:        admins.RoleManager,
		Permissions: []string{admins.PermOrdersRead},
		Active:      active,
	}
	repo.byID[a.ID] = a
	return a
}

func TestLoad_AdminHappyPath_SecondLoadFromCache(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepo()
	seedAdmin(repo, true)
	l := newLoaderForTest(repo, &now)

	p, err := l.Load(context.Background(), auth.TypeAdmin, "admin-1", "tenant-x")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Type != auth.TypeAdmin || p.Admin == nil || p.Admin.ID != "admin-1" {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if got := repo.loads; got != 1 {
		t.Fatalf("expected 1 storage load, got %d", got)
	}

	// Segunda carga dentro del TTL: sale del cache, cero storage.
	if _, err := l.Load(context.Background(), auth.TypeAdmin, "admin-1", "tenant-x"); err != nil {
		t.Fatalf("Load (cached): %v", err)
	}
	if got := repo.loads; got != 1 {
		t.Fatalf("expected cached load, storage loads=%d", got)
	}
}

func TestLoad_WrongTenantIsNotFound(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepo()
	seedAdmin(repo, true)
	l := newLoaderForTest(repo, &now)

	_, err := l.Load(context.Background(), auth.TypeAdmin, "admin-1", "tenant-other")
	if !errors.Is(err, auth.ErrPrincipalNotFound) {
		t.Fatalf("expected ErrPrincipalNotFound for foreign tenant, got %v", err)
	}
}

func TestLoad_InactiveAdminRejected(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepo()
	seedAdmin(repo, false)
	l := newLoaderForTest(repo, &now)

	_, err := l.Load(context.Background(), auth.TypeAdmin, "admin-1", "tenant-x")
	if !errors.Is(err, auth.ErrPrincipalInactive) {
		t.Fatalf("expected ErrPrincipalInactive, got %v", err)
	}
}

// Ventana de staleness acotada: dentro del TTL una desactivación puede
// no verse (permitido); pasado el TTL tiene que verse sí o sí.
func TestLoad_BoundedStaleness(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := newFakeAdminRepo()
	a := seedAdmin(repo, true)
	l := newLoaderForTest(repo, &now)

	// Cachea activo.
	if _, err := l.Load(context.Background(), auth.TypeAdmin, a.ID, a.TenantID); err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Se desactiva en storage.
	a.Active = false
	repo.byID[a.ID] = a

	// t < TTL: puede servir el snapshot viejo (activo). Lo asertamos:
	// es la tolerancia documentada, no un bug.
	now = now.Add(loadTTL - time.Second)
	p, err := l.Load(context.Background(), auth.TypeAdmin, a.ID, a.TenantID)
	if err != nil {
		t.Fatalf("Load within staleness window: %v", err)
	}
	if p.Admin == nil || !p.Admin.Active {
		t.Fatalf("expected stale active snapshot within TTL")
	}

	// t >= TTL: recarga y refleja la desactivación.
	now = now.Add(2 * time.Second)
	_, err = l.Load(context.Background(), auth.TypeAdmin, a.ID, a.TenantID)
	if !errors.Is(err, auth.ErrPrincipalInactive) {
		t.Fatalf("expected ErrPrincipalInactive after TTL, got %v", err)
	}
}
