package repository

import (
	"encoding/json"

	eventResponse "github.com/Alturino/nebula/event/pkg/response"
	"github.com/Alturino/nebula/internal/workflow"
	menuResponse "github.com/Alturino/nebula/menu/pkg/response"
	orderResponse "github.com/Alturino/nebula/order/pkg/response"
	reservationResponse "github.com/Alturino/nebula/reservation/pkg/response"
)

func (m MenuItem) Response() menuResponse.MenuItem {
	item := menuResponse.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       Decimal(m.Price),
		Image:       m.Image,
		Category:    m.Category,
		Tags:        m.Tags,
		Ingredients: m.Ingredients,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if item.Ingredients == nil {
		item.Ingredients = []string{}
	}
	if m.Calories.Valid {
		item.Nutrition = &menuResponse.Nutrition{
			Calories: m.Calories.Int32,
			Protein:  m.Protein.Int32,
			Carbs:    m.Carbs.Int32,
			Fat:      m.Fat.Int32,
		}
	}
	return item
}

func (o Order) Response(items []orderResponse.OrderItem) orderResponse.Order {
	if items == nil {
		items = []orderResponse.OrderItem{}
	}
	return orderResponse.Order{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		Email:               o.Email,
		Phone:               o.Phone,
		DeliveryAddress:     TextPtr(o.DeliveryAddress),
		City:                TextPtr(o.City),
		PostalCode:          TextPtr(o.PostalCode),
		DeliveryTime:        TextPtr(o.DeliveryTime),
		SpecialInstructions: TextPtr(o.SpecialInstructions),
		PaymentMethod:       string(o.PaymentMethod),
		Items:               items,
		Subtotal:            Decimal(o.Subtotal),
		DeliveryFee:         Decimal(o.DeliveryFee),
		HandlingFee:         Decimal(o.HandlingFee),
		Total:               Decimal(o.Total),
		Status:              workflow.OrderStatus(o.Status),
		Timestamp:           o.CreatedAt.Time,
		UpdatedAt:           o.UpdatedAt.Time,
	}
}

func (o ListOrdersRow) Response() (orderResponse.Order, error) {
	orderItems := []orderResponse.OrderItem{}
	err := json.Unmarshal(o.OrderItems, &orderItems)
	if err != nil {
		return orderResponse.Order{}, err
	}
	return o.order().Response(orderItems), nil
}

func (o ListOrdersRow) order() Order {
	return Order{
		ID:                  o.ID,
		CustomerName:        o.CustomerName,
		Email:               o.Email,
		Phone:               o.Phone,
		DeliveryAddress:     o.DeliveryAddress,
		City:                o.City,
		PostalCode:          o.PostalCode,
		DeliveryTime:        o.DeliveryTime,
		SpecialInstructions: o.SpecialInstructions,
		PaymentMethod:       o.PaymentMethod,
		Subtotal:            o.Subtotal,
		DeliveryFee:         o.DeliveryFee,
		HandlingFee:         o.HandlingFee,
		Total:               o.Total,
		Status:              o.Status,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}

func (f FindOrderByIdRow) Response() (orderResponse.Order, error) {
	return ListOrdersRow(f).Response()
}

func (r Reservation) Response() reservationResponse.Reservation {
	return reservationResponse.Reservation{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		Email:           r.Email,
		Phone:           r.Phone,
		Guests:          r.Guests,
		Date:            DateString(r.Date),
		Time:            r.Time,
		SpecialRequests: TextPtr(r.SpecialRequests),
		Status:          workflow.ReservationStatus(r.Status),
		CreatedAt:       r.CreatedAt.Time,
		UpdatedAt:       r.UpdatedAt.Time,
	}
}

func (e Event) Response() eventResponse.Event {
	return eventResponse.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        DateString(e.Date),
		Time:        e.Time,
		Type:        e.Type,
		CreatedAt:   e.CreatedAt.Time,
	}
}
