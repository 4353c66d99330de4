package orders

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/odyssey-erp/odyssey-shop/internal/platform/table"
)

const StatusPending = "pending"

// Order is a customer purchase. ItemsJSON holds the line items as raw JSON text.
type Order struct {
	ID         int64
	CustomerID int64
	ItemsJSON  string
	Cost       float64
	OrderedAt  time.Time
	Status     string
}

var Mapping = table.Mapping[Order]{
	Table:   "orders",
	Columns: []string{"customer_id", "items_json", "cost", "ordered_at", "status"},
	Key:     func(o *Order) *int64 { return &o.ID },
	Values: func(o *Order) []any {
		return []any{o.CustomerID, o.ItemsJSON, o.Cost, o.OrderedAt, o.Status}
	},
	Fields: func(o *Order) []any {
		return []any{&o.ID, &o.CustomerID, &o.ItemsJSON, &o.Cost, &o.OrderedAt, &o.Status}
	},
}

// View is the transport form of an order.
type View struct {
	ID           int64     `json:"id"`
	Customer     int64     `json:"customer"`
	ItemsJSON    string    `json:"items_json"`
	ItemsSummary string    `json:"items_summary"`
	Cost         float64   `json:"cost"`
	Datetime     time.Time `json:"datetime"`
	Status       string    `json:"status"`
}

func (o Order) Format() View {
	return View{
		ID:           o.ID,
		Customer:     o.CustomerID,
		ItemsJSON:    o.ItemsJSON,
		ItemsSummary: ItemsSummary(o.ItemsJSON),
		Cost:         o.Cost,
		Datetime:     o.OrderedAt.UTC(),
		Status:       o.Status,
	}
}

// ItemsSummary renders line items as "Widget x2, Gadget x1". It returns ""
// unless itemsJSON is a list of objects that all carry name and quantity.
func ItemsSummary(itemsJSON string) string {
	var items []map[string]any
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		name, okName := item["name"]
		qty, okQty := item["quantity"]
		if !okName || !okQty {
			return ""
		}
		parts = append(parts, fmt.Sprintf("%v x%v", name, qty))
	}
	return strings.Join(parts, ", ")
}
