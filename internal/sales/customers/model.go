package customers

import "github.com/odyssey-erp/odyssey-shop/internal/platform/table"

// Customer represents a store customer.
type Customer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Mapping binds Customer to the customers table.
var Mapping = table.Mapping[Customer]{
	Table:   "customers",
	Columns: []string{"name", "email", "address"},
	Key:     func(c *Customer) *int64 { return &c.ID },
	Values:  func(c *Customer) []any { return []any{c.Name, c.Email, c.Address} },
	Fields:  func(c *Customer) []any { return []any{&c.ID, &c.Name, &c.Email, &c.Address} },
}
