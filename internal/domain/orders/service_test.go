package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-ordering/internal/domain/menus"
)

// -------------------------
// Test repo + catálogo fake
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Order
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Order{}}
}

func (r *testRepo) Create(ctx context.Context, o Order) error {
	if _, ok := r.byID[o.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Update(ctx context.Context, o Order) error {
	if _, ok := r.byID[o.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, tenantID, id string) (Order, error) {
	o, ok := r.byID[id]
	if !ok || o.TenantID != tenantID {
		return Order{}, errRepoNotFound
	}
	return o, nil
}

func (r *testRepo) ListByTenant(ctx context.Context, tenantID string, status Status) ([]Order, error) {
	out := make([]Order, 0)
	for _, o := range r.byID {
		if o.TenantID != tenantID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *testRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]Order, error) {
	out := make([]Order, 0)
	for _, o := range r.byID {
		if o.TenantID == tenantID && o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

type testCatalog struct {
	items map[string]menus.Item
}

func (c *testCatalog) GetItem(ctx context.Context, tenantID, id string) (menus.Item, error) {
	it, ok := c.items[id]
	if !ok || it.TenantID != tenantID {
		return menus.Item{}, errors.New("catalog: not found")
	}
	return it, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	catalog := &testCatalog{items: map[string]menus.Item{
		"item-mila": {ID: "item-mila", TenantID: "t1", Name: "Milanesa", PriceCents: 850000, Available: true},
		"item-flan": {ID: "item-flan", TenantID: "t1", Name: "Flan", PriceCents: 250000, Available: true},
		"item-off":  {ID: "item-off", TenantID: "t1", Name: "Fuera de carta", PriceCents: 100000, Available: false},
	}}
	svc := NewService(repo, catalog)
	svc.now = func() time.Time { return time.Date(2026, 8, 15, 21, 0, 0, 0, time.UTC) }
	return svc, repo
}

// -------------------------
// Tests
// -------------------------

func TestService_Place_SnapshotsNameAndPrice(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Place(context.Background(), "t1", PlaceInput{
		CustomerID: "c1",
		Lines: []LineInput{
			{MenuItemID: "item-mila", Quantity: 2},
			{MenuItemID: "item-flan", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	if o.Status != StatusPlaced {
		t.Fatalf("expected placed, got %s", o.Status)
	}
	if len(o.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(o.Lines))
	}
	if o.Lines[0].Name != "Milanesa" || o.Lines[0].UnitPriceCents != 850000 {
		t.Fatalf("expected snapshot of name/price, got %#v", o.Lines[0])
	}
	if want := int64(2*850000 + 250000); o.TotalCents != want {
		t.Fatalf("expected total %d, got %d", want, o.TotalCents)
	}
}

func TestService_Place_RejectsUnavailableAndForeignItems(t *testing.T) {
	svc, _ := newTestService()

	// Item no disponible
	if _, err := svc.Place(context.Background(), "t1", PlaceInput{
		Lines: []LineInput{{MenuItemID: "item-off", Quantity: 1}},
	}); err != ErrItemNotOrderable {
		t.Fatalf("expected ErrItemNotOrderable for unavailable, got %v", err)
	}

	// Item de otro tenant
	if _, err := svc.Place(context.Background(), "t2", PlaceInput{
		Lines: []LineInput{{MenuItemID: "item-mila", Quantity: 1}},
	}); err != ErrItemNotOrderable {
		t.Fatalf("expected ErrItemNotOrderable for foreign tenant, got %v", err)
	}
}

func TestService_Place_QuantityBounds(t *testing.T) {
	svc, _ := newTestService()

	for _, q := range []int{0, -1, 51} {
		if _, err := svc.Place(context.Background(), "t1", PlaceInput{
			Lines: []LineInput{{MenuItemID: "item-mila", Quantity: q}},
		}); err != ErrInvalidInput {
			t.Fatalf("quantity %d: expected ErrInvalidInput, got %v", q, err)
		}
	}

	if _, err := svc.Place(context.Background(), "t1", PlaceInput{Lines: nil}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty lines, got %v", err)
	}
}

func TestService_Transition_FollowsLifecycle(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Place(context.Background(), "t1", PlaceInput{
		Lines: []LineInput{{MenuItemID: "item-mila", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	steps := []Status{StatusAccepted, StatusPreparing, StatusReady, StatusServed, StatusPaid}
	for _, next := range steps {
		o, err = svc.Transition(context.Background(), "t1", o.ID, next)
		if err != nil {
			t.Fatalf("Transition to %s error: %v", next, err)
		}
		if o.Status != next {
			t.Fatalf("expected %s, got %s", next, o.Status)
		}
	}

	// paid es terminal
	if _, err := svc.Transition(context.Background(), "t1", o.ID, StatusPreparing); err != ErrBadState {
		t.Fatalf("expected ErrBadState from paid, got %v", err)
	}
}

func TestService_Transition_RejectsSkipsAndUnknown(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Place(context.Background(), "t1", PlaceInput{
		Lines: []LineInput{{MenuItemID: "item-flan", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	// Saltear accepted no vale.
	if _, err := svc.Transition(context.Background(), "t1", o.ID, StatusReady); err != ErrBadState {
		t.Fatalf("expected ErrBadState for skip, got %v", err)
	}
	if _, err := svc.Transition(context.Background(), "t1", o.ID, Status("burning")); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}

	// Repetir el estado actual es no-op, no error.
	same, err := svc.Transition(context.Background(), "t1", o.ID, StatusPlaced)
	if err != nil {
		t.Fatalf("idempotent transition error: %v", err)
	}
	if same.Status != StatusPlaced {
		t.Fatalf("expected placed, got %s", same.Status)
	}
}

func TestService_CancelByCustomer_OnlyBeforeKitchen(t *testing.T) {
	svc, _ := newTestService()

	o, err := svc.Place(context.Background(), "t1", PlaceInput{
		CustomerID: "c1",
		Lines:      []LineInput{{MenuItemID: "item-mila", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}

	// Otro cliente no puede cancelar (ni enterarse de que existe).
	if _, err := svc.CancelByCustomer(context.Background(), "t1", o.ID, "c2"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign customer, got %v", err)
	}

	cancelled, err := svc.CancelByCustomer(context.Background(), "t1", o.ID, "c1")
	if err != nil {
		t.Fatalf("Cancel error: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// Con cocina en marcha ya no se cancela.
	o2, err := svc.Place(context.Background(), "t1", PlaceInput{
		CustomerID: "c1",
		Lines:      []LineInput{{MenuItemID: "item-mila", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("Place #2 error: %v", err)
	}
	if _, err := svc.Transition(context.Background(), "t1", o2.ID, StatusAccepted); err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if _, err := svc.Transition(context.Background(), "t1", o2.ID, StatusPreparing); err != nil {
		t.Fatalf("Transition error: %v", err)
	}
	if _, err := svc.CancelByCustomer(context.Background(), "t1", o2.ID, "c1"); err != ErrBadState {
		t.Fatalf("expected ErrBadState once preparing, got %v", err)
	}
}
