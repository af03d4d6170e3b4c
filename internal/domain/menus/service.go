package menus

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CategoryInput struct {
	Name      string
	SortOrder int
}

func (s *Service) CreateCategory(ctx context.Context, tenantID string, in CategoryInput) (Category, error) {
	tenantID = strings.TrimSpace(tenantID)
	name := strings.TrimSpace(in.Name)
	if tenantID == "" || name == "" {
		return Category{}, ErrInvalidInput
	}

	now := s.now()
	c := Category{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Name:      name,
		SortOrder: in.SortOrder,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

type CategoryPatch struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	SortOrder *int
	Active    *bool
}

func (s *Service) UpdateCategory(ctx context.Context, tenantID, id string, in CategoryPatch) (Category, error) {
	c, err := s.repo.GetCategory(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Category{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Category{}, ErrInvalidInput
		}
		c.Name = name
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	if in.Active != nil {
		c.Active = *in.Active
	}

	c.UpdatedAt = s.now()
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *Service) ListCategories(ctx context.Context, tenantID string) ([]Category, error) {
	return s.repo.ListCategories(ctx, strings.TrimSpace(tenantID))
}

type ItemInput struct {
	CategoryID  string
	Name        string
	Description string
	PriceCents  int64
}

func (s *Service) CreateItem(ctx context.Context, tenantID string, in ItemInput) (Item, error) {
	tenantID = strings.TrimSpace(tenantID)
	categoryID := strings.TrimSpace(in.CategoryID)
	name := strings.TrimSpace(in.Name)

	if tenantID == "" || categoryID == "" || name == "" {
		return Item{}, ErrInvalidInput
	}
	if in.PriceCents < 0 {
		return Item{}, ErrInvalidInput
	}

	// La categoría debe existir en el mismo tenant.
	if _, err := s.repo.GetCategory(ctx, tenantID, categoryID); err != nil {
		return Item{}, ErrNotFound
	}

	now := s.now()
	it := Item{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		CategoryID:  categoryID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		PriceCents:  in.PriceCents,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

type ItemPatch struct {
	Name        *string
	Description *string
	PriceCents  *int64
	CategoryID  *string
	Available   *bool
}

func (s *Service) UpdateItem(ctx context.Context, tenantID, id string, in ItemPatch) (Item, error) {
	it, err := s.repo.GetItem(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Item{}, ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Item{}, ErrInvalidInput
		}
		it.Name = name
	}
	if in.Description != nil {
		it.Description = strings.TrimSpace(*in.Description)
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return Item{}, ErrInvalidInput
		}
		it.PriceCents = *in.PriceCents
	}
	if in.CategoryID != nil {
		categoryID := strings.TrimSpace(*in.CategoryID)
		if _, err := s.repo.GetCategory(ctx, it.TenantID, categoryID); err != nil {
			return Item{}, ErrNotFound
		}
		it.CategoryID = categoryID
	}
	if in.Available != nil {
		it.Available = *in.Available
	}

	it.UpdatedAt = s.now()
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

func (s *Service) GetItem(ctx context.Context, tenantID, id string) (Item, error) {
	it, err := s.repo.GetItem(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Item{}, ErrNotFound
	}
	return it, nil
}

// SetItemImage guarda la URL que devolvió el CDN para el item.
func (s *Service) SetItemImage(ctx context.Context, tenantID, id, imageURL string) (Item, error) {
	it, err := s.GetItem(ctx, tenantID, id)
	if err != nil {
		return Item{}, err
	}
	it.ImageURL = strings.TrimSpace(imageURL)
	it.UpdatedAt = s.now()
	if err := s.repo.UpdateItem(ctx, it); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Menu arma la vista pública: categorías activas ordenadas por sort_order
// con sus items disponibles.
func (s *Service) Menu(ctx context.Context, tenantID string) ([]MenuSection, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, ErrInvalidInput
	}

	cats, err := s.repo.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	sort.Slice(cats, func(i, j int) bool {
		if cats[i].SortOrder != cats[j].SortOrder {
			return cats[i].SortOrder < cats[j].SortOrder
		}
		return cats[i].Name < cats[j].Name
	})

	out := make([]MenuSection, 0, len(cats))
	for _, c := range cats {
		if !c.Active {
			continue
		}
		items, err := s.repo.ListItemsByCategory(ctx, tenantID, c.ID)
		if err != nil {
			return nil, err
		}
		visible := make([]Item, 0, len(items))
		for _, it := range items {
			if it.Available {
				visible = append(visible, it)
			}
		}
		out = append(out, MenuSection{Category: c, Items: visible})
	}
	return out, nil
}
