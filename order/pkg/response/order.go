package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/nebula/internal/workflow"
)

type Order struct {
	Timestamp           time.Time            `json:"timestamp"`
	UpdatedAt           time.Time            `json:"updated_at"`
	DeliveryAddress     *string              `json:"delivery_address,omitempty"`
	City                *string              `json:"city,omitempty"`
	PostalCode          *string              `json:"postal_code,omitempty"`
	DeliveryTime        *string              `json:"delivery_time,omitempty"`
	SpecialInstructions *string              `json:"special_instructions,omitempty"`
	CustomerName        string               `json:"customer_name"`
	Email               string               `json:"email"`
	Phone               string               `json:"phone"`
	PaymentMethod       string               `json:"payment_method"`
	Status              workflow.OrderStatus `json:"status"`
	Items               []OrderItem          `json:"items"`
	Subtotal            decimal.Decimal      `json:"subtotal"`
	DeliveryFee         decimal.Decimal      `json:"delivery_fee"`
	HandlingFee         decimal.Decimal      `json:"handling_fee"`
	Total               decimal.Decimal      `json:"total"`
	ID                  uuid.UUID            `json:"id"`
}

func (o Order) CurrentStatus() workflow.OrderStatus {
	return o.Status
}

type OrderItem struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int32           `json:"quantity"`
	ID         uuid.UUID       `json:"id"`
}

func (o Order) RecordID() uuid.UUID {
	return o.ID
}
