package reviews

import "github.com/odyssey-erp/odyssey-shop/internal/platform/table"

// ProductReview is a rating left on a product, optionally by a customer.
type ProductReview struct {
	ID         int64   `json:"id"`
	Review     string  `json:"review"`
	Rating     float64 `json:"rating"`
	ProductID  int64   `json:"product_id"`
	CustomerID *int64  `json:"customer_id"`
}

var Mapping = table.Mapping[ProductReview]{
	Table:   "product_reviews",
	Columns: []string{"review", "rating", "product_id", "customer_id"},
	Key:     func(r *ProductReview) *int64 { return &r.ID },
	Values: func(r *ProductReview) []any {
		return []any{r.Review, r.Rating, r.ProductID, r.CustomerID}
	},
	Fields: func(r *ProductReview) []any {
		return []any{&r.ID, &r.Review, &r.Rating, &r.ProductID, &r.CustomerID}
	},
}
