package admins

import (
	"context"
	"errors"
	"testing"

	"restaurant-ordering/internal/ports/auth"
)

// -------------------------
// Test repo + signer fake
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Admin
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Admin{}}
}

func (r *testRepo) Create(ctx context.Context, a Admin) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(ctx context.Context, a Admin) error {
	if _, ok := r.byID[a.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, tenantID, id string) (Admin, error) {
	a, ok := r.byID[id]
	if !ok || a.TenantID != tenantID {
		return Admin{}, errRepoNotFound
	}
	return a, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, tenantID, email string) (Admin, error) {
	for _, a := range r.byID {
		if a.TenantID == tenantID && a.Email == email {
			return a, nil
		}
	}
	return Admin{}, errRepoNotFound
}

func (r *testRepo) ListByTenant(ctx context.Context, tenantID string) ([]Admin, error) {
	out := make([]Admin, 0)
	for _, a := range r.byID {
		if a.TenantID == tenantID {
			out = append(out, a)
		}
	}
	return out, nil
}

type testSigner struct {
	lastClaims auth.Claims
}

func (s *testSigner) Sign(ctx context.Context, claims auth.Claims) (string, error) {
	s.lastClaims = claims
	return "token-" + claims.SubjectID, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AppliesRoleDefaults(t *testing.T) {
	svc := NewService(newTestRepo(), &testSigner{})

	a, err := svc.Create(context.Background(), "t1", CreateInput{
		Email:    "Staff@Demo.Local",
		Name:     "Staff",
		Password: "secret-pass",
		Role:     RoleStaff,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if a.Email != "staff@demo.local" {
		t.Fatalf("expected normalized email, got %s", a.Email)
	}
	if a.PasswordHash == "secret-pass" || a.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	want := DefaultPermissions(RoleStaff)
	if len(a.Permissions) != len(want) {
		t.Fatalf("expected default staff permissions, got %#v", a.Permissions)
	}
}

func TestService_Create_RejectsDuplicateEmailPerTenant(t *testing.T) {
	svc := NewService(newTestRepo(), &testSigner{})

	in := CreateInput{Email: "owner@demo.local", Name: "A", Password: "secret-pass", Role: RoleOwner}
	if _, err := svc.Create(context.Background(), "t1", in); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	if _, err := svc.Create(context.Background(), "t1", in); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Mismo email en otro tenant es válido.
	if _, err := svc.Create(context.Background(), "t2", in); err != nil {
		t.Fatalf("expected same email OK in other tenant, got %v", err)
	}
}

func TestService_Login_MintsTenantBoundToken(t *testing.T) {
	signer := &testSigner{}
	svc := NewService(newTestRepo(), signer)

	created, err := svc.Create(context.Background(), "t1", CreateInput{
		Email:    "owner@demo.local",
		Name:     "Owner",
		Password: "secret-pass",
		Role:     RoleOwner,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	a, token, err := svc.Login(context.Background(), "t1", "owner@demo.local", "secret-pass")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if a.ID != created.ID || token == "" {
		t.Fatalf("unexpected login result")
	}
	if signer.lastClaims.TenantID != "t1" || signer.lastClaims.Type != auth.TypeAdmin {
		t.Fatalf("expected tenant-bound admin claims, got %#v", signer.lastClaims)
	}
}

func TestService_Login_RejectsBadCredentialsAndInactive(t *testing.T) {
	svc := NewService(newTestRepo(), &testSigner{})

	created, err := svc.Create(context.Background(), "t1", CreateInput{
		Email:    "owner@demo.local",
		Name:     "Owner",
		Password: "secret-pass",
		Role:     RoleOwner,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "t1", "owner@demo.local", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// Login contra otro tenant no revela la cuenta.
	if _, _, err := svc.Login(context.Background(), "t2", "owner@demo.local", "secret-pass"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials cross-tenant, got %v", err)
	}

	if _, err := svc.SetActive(context.Background(), "t1", created.ID, false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "t1", "owner@demo.local", "secret-pass"); err != ErrInactive {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}
