package brands

import "github.com/odyssey-erp/odyssey-shop/internal/platform/table"

// Brand represents a product brand.
type Brand struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Catchphrase string `json:"catchphrase"`
}

// Mapping binds Brand to the brands table.
var Mapping = table.Mapping[Brand]{
	Table:   "brands",
	Columns: []string{"name", "catchphrase"},
	Key:     func(b *Brand) *int64 { return &b.ID },
	Values:  func(b *Brand) []any { return []any{b.Name, b.Catchphrase} },
	Fields:  func(b *Brand) []any { return []any{&b.ID, &b.Name, &b.Catchphrase} },
}
