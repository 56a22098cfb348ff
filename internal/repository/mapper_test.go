package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/internal/workflow"
)

func TestListOrdersRowResponse(t *testing.T) {
	orderId := uuid.New()
	itemId := uuid.New()
	row := ListOrdersRow{
		ID:              orderId,
		CustomerName:    "Ada",
		DeliveryAddress: Text("1 Main St"),
		PaymentMethod:   PaymentMethodCard,
		Subtotal:        Numeric(decimal.RequireFromString("33.98")),
		Total:           Numeric(decimal.RequireFromString("37.48")),
		Status:          OrderStatusPreparing,
		CreatedAt:       pgtype.Timestamptz{Time: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), Valid: true},
		OrderItems:      []byte(`[{"id":"` + itemId.String() + `","menu_item_id":"1","name":"Mediterranean Bowl","price":16.99,"quantity":2}]`),
	}

	order, err := row.Response()
	require.NoError(t, err)
	assert.Equal(t, orderId, order.ID)
	assert.Equal(t, workflow.OrderPreparing, order.Status)
	assert.Equal(t, "1 Main St", *order.DeliveryAddress)
	assert.Nil(t, order.City)
	assert.True(t, decimal.RequireFromString("37.48").Equal(order.Total))
	require.Len(t, order.Items, 1)
	assert.Equal(t, itemId, order.Items[0].ID)
	assert.Equal(t, int32(2), order.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("16.99").Equal(order.Items[0].Price))
}

func TestListOrdersRowResponseEmptyItems(t *testing.T) {
	order, err := ListOrdersRow{OrderItems: []byte(`[]`)}.Response()
	require.NoError(t, err)
	assert.NotNil(t, order.Items)
	assert.Empty(t, order.Items)

	_, err = ListOrdersRow{OrderItems: []byte(`{`)}.Response()
	assert.Error(t, err)
}

func TestMenuItemResponse(t *testing.T) {
	item := MenuItem{ID: "1", Name: "Bowl", Price: Numeric(decimal.RequireFromString("16.99"))}
	res := item.Response()
	assert.Nil(t, res.Nutrition)
	assert.Equal(t, []string{}, res.Tags)

	item.Calories = pgtype.Int4{Int32: 450, Valid: true}
	item.Fat = pgtype.Int4{Int32: 18, Valid: true}
	res = item.Response()
	require.NotNil(t, res.Nutrition)
	assert.Equal(t, int32(450), res.Nutrition.Calories)
	assert.Equal(t, int32(18), res.Nutrition.Fat)
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, v := range []string{"0", "3.50", "2.00", "24.99", "1234.5"} {
		d := decimal.RequireFromString(v)
		assert.True(t, d.Equal(Decimal(Numeric(d))), v)
	}
	assert.True(t, decimal.Zero.Equal(Decimal(pgtype.Numeric{})))
}

func TestReservationResponse(t *testing.T) {
	r := Reservation{
		Date:   Date(time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
		Time:   "19:30",
		Status: ReservationStatusConfirmed,
	}
	res := r.Response()
	assert.Equal(t, "2026-04-02", res.Date)
	assert.Equal(t, workflow.ReservationConfirmed, res.Status)
	assert.Nil(t, res.SpecialRequests)
}
