package categories

import "github.com/odyssey-erp/odyssey-shop/internal/platform/table"

// Category represents a product category.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Mapping binds Category to the product_categories table.
var Mapping = table.Mapping[Category]{
	Table:   "product_categories",
	Columns: []string{"name", "description"},
	Key:     func(c *Category) *int64 { return &c.ID },
	Values:  func(c *Category) []any { return []any{c.Name, c.Description} },
	Fields:  func(c *Category) []any { return []any{&c.ID, &c.Name, &c.Description} },
}
