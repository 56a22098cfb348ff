package request

type AddItem struct {
	ID string `json:"id" validate:"required"`
}

// UpdateQuantity sets the absolute quantity. Zero or below removes the line.
type UpdateQuantity struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}
