package brands

type CreateRequest struct {
	Name        string  `json:"name" validate:"required"`
	Catchphrase *string `json:"catchphrase"`
}

type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Catchphrase *string `json:"catchphrase"`
}
