package categories

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

func (s *Service) List(ctx context.Context, page shared.Pagination) ([]Category, int, error) {
	categories, err := s.repo.GetAll(ctx, page.Page, page.PerPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Category, error) {
	category, err := s.repo.GetOneOrNone(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %d: %w", id, shared.ErrNotFound)
	}
	return category, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Category, error) {
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	category := &Category{Name: req.Name}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := s.repo.Insert(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, category)
}
