package reviews

import (
	"context"

	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/products"
	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

// ProductFinder resolves the product a review belongs to.
type ProductFinder interface {
	Find(ctx context.Context, id int64) (*products.Product, error)
}

type Service struct {
	repo     Repository
	products ProductFinder
}

func NewService(repo Repository, products ProductFinder) *Service {
	return &Service{repo: repo, products: products}
}

// ListForProduct returns every review of the product, oldest first.
func (s *Service) ListForProduct(ctx context.Context, productID int64) ([]ProductReview, error) {
	if _, err := s.products.Find(ctx, productID); err != nil {
		return nil, err
	}
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []ProductReview{}
	}
	return reviews, nil
}

func (s *Service) Create(ctx context.Context, productID int64, req CreateRequest) (*ProductReview, error) {
	if _, err := s.products.Find(ctx, productID); err != nil {
		return nil, err
	}
	if err := shared.Validate(req); err != nil {
		return nil, err
	}
	review := &ProductReview{
		Review:     req.Review,
		Rating:     req.Rating,
		ProductID:  productID,
		CustomerID: req.CustomerID,
	}
	if err := s.repo.Insert(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}
