package products

import (
	"bytes"
	"encoding/json"
)

type CreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Brand       int64   `json:"brand" validate:"required,gt=0"`
	Description *string `json:"description"`
	CategoryID  *int64  `json:"product_category_id" validate:"omitnil,gt=0"`
}

type UpdateRequest struct {
	Name        *string  `json:"name" validate:"omitnil,min=1"`
	Price       *float64 `json:"price" validate:"omitnil,gt=0"`
	Brand       *int64   `json:"brand" validate:"omitnil,gt=0"`
	Description *string  `json:"description"`
	CategoryID  OptionalID `json:"product_category_id" validate:"-"`
}

// OptionalID tells an absent field from an explicit null. Set is true
// whenever the field was present; a null leaves ID nil.
type OptionalID struct {
	Set bool
	ID  *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.ID = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.ID = &id
	return nil
}
