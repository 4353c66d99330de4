package products

import (
	"fmt"

	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/brands"
	"github.com/odyssey-erp/odyssey-shop/internal/masterdata/categories"
	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

// Product represents a product row. CategoryID is optional.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	BrandID     int64   `json:"brand_id"`
	Description string  `json:"description"`
	CategoryID  *int64  `json:"category_id"`
}

// Mapping binds Product to the products table.
var Mapping = table.Mapping[Product]{
	Table:   "products",
	Columns: []string{"name", "price", "brand_id", "description", "category_id"},
	Key:     func(p *Product) *int64 { return &p.ID },
	Values: func(p *Product) []any {
		return []any{p.Name, p.Price, p.BrandID, p.Description, p.CategoryID}
	},
	Fields: func(p *Product) []any {
		return []any{&p.ID, &p.Name, &p.Price, &p.BrandID, &p.Description, &p.CategoryID}
	},
}

// Detail is a product with its brand and category already loaded.
type Detail struct {
	Product  Product
	Brand    brands.Brand
	Category *categories.Category
}

// View is the transport form of a product.
type View struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	Price           float64              `json:"price"`
	PriceUSD        string               `json:"price_usd"`
	ProductCategory *categories.Category `json:"product_category"`
	Brand           brands.Brand         `json:"brand"`
}

// Format embeds the brand and category representations.
func (d Detail) Format() View {
	return View{
		ID:              d.Product.ID,
		Name:            d.Product.Name,
		Description:     d.Product.Description,
		Price:           d.Product.Price,
		PriceUSD:        FormatUSD(d.Product.Price),
		ProductCategory: d.Category,
		Brand:           d.Brand,
	}
}

// FormatUSD renders a price as dollars with two decimals, e.g. "$9.99".
func FormatUSD(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
