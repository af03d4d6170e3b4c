package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"restaurant-ordering/internal/domain/menus"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrItemNotOrderable = errors.New("item not orderable")
	ErrBadState         = errors.New("invalid state transition")
)

// ItemCatalog es lo mínimo que orders necesita del menú para pricear.
// Lo satisface menus.Service.
type ItemCatalog interface {
	GetItem(ctx context.Context, tenantID, id string) (menus.Item, error)
}

type Service struct {
	repo    Repository
	catalog ItemCatalog
	now     func() time.Time
}

func NewService(repo Repository, catalog ItemCatalog) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

type LineInput struct {
	MenuItemID string
	Quantity   int
}

type PlaceInput struct {
	CustomerID string
	TableID    string
	Lines      []LineInput
	Notes      string
}

// Place crea una orden: valida cada item contra el menú del tenant y
// congela nombre/precio en el renglón.
func (s *Service) Place(ctx context.Context, tenantID string, in PlaceInput) (Order, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || len(in.Lines) == 0 {
		return Order{}, ErrInvalidInput
	}

	lines := make([]Line, 0, len(in.Lines))
	var total int64

	for _, li := range in.Lines {
		if li.Quantity <= 0 || li.Quantity > 50 {
			return Order{}, ErrInvalidInput
		}
		it, err := s.catalog.GetItem(ctx, tenantID, li.MenuItemID)
		if err != nil {
			return Order{}, ErrItemNotOrderable
		}
		if !it.Available {
			return Order{}, ErrItemNotOrderable
		}

		line := Line{
			MenuItemID:     it.ID,
			Name:           it.Name,
			Quantity:       li.Quantity,
			UnitPriceCents: it.PriceCents,
		}
		lines = append(lines, line)
		total += line.SubtotalCents()
	}

	now := s.now()
	o := Order{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		CustomerID: strings.TrimSpace(in.CustomerID),
		TableID:    strings.TrimSpace(in.TableID),
		Lines:      lines,
		Status:     StatusPlaced,
		TotalCents: total,
		Notes:      strings.TrimSpace(in.Notes),
		PlacedAt:   now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id string) (Order, error) {
	o, err := s.repo.GetByID(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Order{}, ErrNotFound
	}
	return o, nil
}

// ListByTenant filtra por status si viene uno no-vacío.
func (s *Service) ListByTenant(ctx context.Context, tenantID string, status Status) ([]Order, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	if status != "" && !ValidStatus(status) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByTenant(ctx, tenantID, status)
}

func (s *Service) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]Order, error) {
	tenantID = strings.TrimSpace(tenantID)
	customerID = strings.TrimSpace(customerID)
	if tenantID == "" || customerID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCustomer(ctx, tenantID, customerID)
}

// Transition avanza el ciclo de vida. Transición ilegal => ErrBadState.
func (s *Service) Transition(ctx context.Context, tenantID, id string, to Status) (Order, error) {
	if !ValidStatus(to) {
		return Order{}, ErrInvalidInput
	}

	o, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Order{}, err
	}

	// Idempotente: repetir la transición al estado actual no es error.
	if o.Status == to {
		return o, nil
	}
	if !CanTransition(o.Status, to) {
		return Order{}, ErrBadState
	}

	o.Status = to
	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}

// CancelByCustomer: el comensal solo cancela su propia orden y solo
// mientras cocina no empezó.
func (s *Service) CancelByCustomer(ctx context.Context, tenantID, id, customerID string) (Order, error) {
	o, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Order{}, err
	}
	if o.CustomerID == "" || o.CustomerID != strings.TrimSpace(customerID) {
		return Order{}, ErrNotFound
	}
	if o.Status == StatusCancelled {
		return o, nil
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return Order{}, ErrBadState
	}

	o.Status = StatusCancelled
	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		return Order{}, err
	}
	return o, nil
}
