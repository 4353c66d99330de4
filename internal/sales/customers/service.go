package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, page shared.Pagination) ([]Customer, int, error) {
	customers, err := s.repo.GetAll(ctx, page.Page, page.PerPage)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountTotal(ctx)
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	customer, err := s.repo.GetOneOrNone(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %d: %w", id, shared.ErrNotFound)
	}
	return customer, nil
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	customer := &Customer{Name: req.Name, Email: req.Email}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if err := s.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, customer)
}
