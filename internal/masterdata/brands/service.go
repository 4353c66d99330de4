package brands

import (
	"context"
	"fmt"

	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, page shared.Pagination) ([]Brand, int, error) {
	brands, err := s.repo.GetAll(ctx, page.Page, page.PerPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	return brands, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Brand, error) {
	brand, err := s.repo.GetOneOrNone(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, fmt.Errorf("brand %d: %w", id, shared.ErrNotFound)
	}
	return brand, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Brand, error) {
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	brand := &Brand{Name: req.Name}
	if req.Catchphrase != nil {
		brand.Catchphrase = *req.Catchphrase
	}
	if err := s.repo.Insert(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	if req.Name != nil {
		brand.Name = *req.Name
	}
	if req.Catchphrase != nil {
		brand.Catchphrase = *req.Catchphrase
	}
	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, brand)
}
