package tables

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNumberTaken  = errors.New("table number already taken")
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

type CreateInput struct {
	Number int
	Seats  int
}

func (s *Service) Create(ctx context.Context, tenantID string, in CreateInput) (Table, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" || in.Number <= 0 || in.Seats <= 0 {
		return Table{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByNumber(ctx, tenantID, in.Number); err == nil {
		return Table{}, ErrNumberTaken
	}

	now := s.now()
	t := Table{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		Number:    in.Number,
		Seats:     in.Seats,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return Table{}, err
	}
	return t, nil
}

type Patch struct {
	Seats  *int
	Active *bool
}

func (s *Service) Update(ctx context.Context, tenantID, id string, in Patch) (Table, error) {
	t, err := s.GetByID(ctx, tenantID, id)
	if err != nil {
		return Table{}, err
	}

	if in.Seats != nil {
		if *in.Seats <= 0 {
			return Table{}, ErrInvalidInput
		}
		t.Seats = *in.Seats
	}
	if in.Active != nil {
		t.Active = *in.Active
	}

	t.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, t); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id string) (Table, error) {
	t, err := s.repo.GetByID(ctx, strings.TrimSpace(tenantID), strings.TrimSpace(id))
	if err != nil {
		return Table{}, ErrNotFound
	}
	return t, nil
}

func (s *Service) ListByTenant(ctx context.Context, tenantID string) ([]Table, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByTenant(ctx, tenantID)
}
