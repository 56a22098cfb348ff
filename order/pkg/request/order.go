package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrder is the confirmed checkout handed to persistence.
type CreateOrder struct {
	DeliveryAddress     string          `json:"delivery_address"`
	City                string          `json:"city"`
	PostalCode          string          `json:"postal_code"`
	DeliveryTime        string          `json:"delivery_time"`
	SpecialInstructions string          `json:"special_instructions"`
	CustomerName        string          `json:"customer_name"  validate:"required"`
	Email               string          `json:"email"          validate:"required,email"`
	Phone               string          `json:"phone"          validate:"required"`
	PaymentMethod       string          `json:"payment_method" validate:"required,oneof=delivery card"`
	Items               []OrderItem     `json:"items"          validate:"required,gt=0,dive"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	DeliveryFee         decimal.Decimal `json:"delivery_fee"`
	HandlingFee         decimal.Decimal `json:"handling_fee"`
	Total               decimal.Decimal `json:"total"`
	ID                  uuid.UUID       `json:"id"             validate:"required"`
}

type OrderItem struct {
	MenuItemID string          `json:"menu_item_id" validate:"required"`
	Name       string          `json:"name"         validate:"required"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int32           `json:"quantity"     validate:"required,gte=1"`
}

type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}
