package orders

import "encoding/json"

type CreateOrderRequest struct {
	CustomerID int64           `json:"customer_id" validate:"required,gt=0"`
	Items      json.RawMessage `json:"items"`
	Cost       float64         `json:"cost" validate:"required"`
}

type UpdateOrderRequest struct {
	CustomerID *int64          `json:"customer_id" validate:"omitnil,gt=0"`
	Items      json.RawMessage `json:"items"`
	Cost       *float64        `json:"cost" validate:"omitnil,ne=0"`
	Status     *string         `json:"status" validate:"omitnil,min=1"`
}
