package products

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

func (s *Service) List(ctx context.Context, page shared.Pagination) ([]View, int, error) {
	details, err := s.repo.ListDetails(ctx, page.Page, page.PerPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	views := make([]View, 0, len(details))
	for _, d := range details {
		views = append(views, d.Format())
	}
	return views, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*View, error) {
	detail, err := s.repo.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	view := detail.Format()
	return &view, nil
}

// Find returns the bare product row.
func (s *Service) Find(ctx context.Context, id int64) (*Product, error) {
	product, err := s.repo.GetOneOrNone(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", id, shared.ErrNotFound)
	}
	return product, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	product := &Product{
		Name:       req.Name,
		Price:      req.Price,
		BrandID:    req.Brand,
		CategoryID: req.CategoryID,
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*View, error) {
	product, err := s.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Brand != nil {
		product.BrandID = *req.Brand
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID.Set {
		if req.CategoryID.ID != nil && *req.CategoryID.ID <= 0 {
			return nil, fmt.Errorf("%w: product_category_id must be positive", shared.ErrValidation)
		}
		product.CategoryID = req.CategoryID.ID
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.Get(ctx, product.ID)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	product, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, product)
}
