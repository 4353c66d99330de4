package reviews

type CreateRequest struct {
	Review     string  `json:"review" validate:"required"`
	Rating     float64 `json:"rating" validate:"required,gt=0,lte=5"`
	CustomerID *int64  `json:"customer_id" validate:"omitnil,gt=0"`
}
