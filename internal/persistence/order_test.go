package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/workflow"
	"github.com/Alturino/nebula/order/pkg/request"
)

func newOrder() request.CreateOrder {
	return request.CreateOrder{
		ID:              uuid.New(),
		CustomerName:    "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "+44 20 7946 0000",
		DeliveryAddress: "12 Analytical Row",
		City:            "London",
		PaymentMethod:   "delivery",
		Items: []request.OrderItem{
			{MenuItemID: "2", Name: "Truffle Pasta", Price: decimal.RequireFromString("24.99"), Quantity: 2},
			{MenuItemID: "1", Name: "Mediterranean Bowl", Price: decimal.RequireFromString("16.99"), Quantity: 1},
		},
		Subtotal:    decimal.RequireFromString("66.97"),
		DeliveryFee: decimal.RequireFromString("3.50"),
		HandlingFee: decimal.RequireFromString("2.00"),
		Total:       decimal.RequireFromString("72.47"),
	}
}

func TestOrderStore(t *testing.T) {
	c := context.Background()
	pool, container, queries, notifier := setup(t)(c)
	defer teardown(t)(pool, container)

	store := NewOrderStore(pool, queries, notifier)
	param := newOrder()

	created, err := store.CreateOrder(c, param)
	require.NoError(t, err)
	assert.Equal(t, workflow.OrderPending, created.Status)
	assert.Len(t, created.Items, 2)
	assert.Nil(t, created.PostalCode)
	require.NotNil(t, created.City)
	assert.Equal(t, "London", *created.City)

	t.Run("list returns items in cart order", func(t *testing.T) {
		orders, err := store.ListOrders(c)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, param.ID, orders[0].ID)
		require.Len(t, orders[0].Items, 2)
		assert.Equal(t, "2", orders[0].Items[0].MenuItemID)
		assert.Equal(t, "1", orders[0].Items[1].MenuItemID)
		assert.True(t, orders[0].Total.Equal(param.Total))
		assert.True(t, orders[0].Items[0].Price.Equal(decimal.RequireFromString("24.99")))
	})

	t.Run("find returns the order", func(t *testing.T) {
		found, err := store.FindOrder(c, param.ID)
		require.NoError(t, err)
		assert.Equal(t, param.Email, found.Email)

		_, err = store.FindOrder(c, uuid.New())
		assert.ErrorIs(t, err, inErrors.ErrNotFound)
	})

	tests := []struct {
		name        string
		id          uuid.UUID
		to          workflow.OrderStatus
		expectedErr error
	}{
		{name: "pending to preparing", id: param.ID, to: workflow.OrderPreparing},
		{name: "preparing to delivered is rejected", id: param.ID, to: workflow.OrderDelivered, expectedErr: inErrors.ErrIllegalTransition},
		{name: "preparing to ready", id: param.ID, to: workflow.OrderReady},
		{name: "ready to delivered", id: param.ID, to: workflow.OrderDelivered},
		{name: "delivered is terminal", id: param.ID, to: workflow.OrderCancelled, expectedErr: inErrors.ErrIllegalTransition},
		{name: "unknown order", id: uuid.New(), to: workflow.OrderPreparing, expectedErr: inErrors.ErrNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			change, err := store.UpdateOrderStatus(c, test.id, test.to)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.to, change.To)
			assert.False(t, change.UpdatedAt.IsZero())
		})
	}

	found, err := store.FindOrder(c, param.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.OrderDelivered, found.Status)

	changes := notifier.Changes()
	require.Len(t, changes, 4)
	assert.Equal(t, published{entity: notify.ENTITY_ORDERS, op: notify.OpInsert, id: param.ID.String()}, changes[0])
	assert.Equal(t, notify.OpUpdate, changes[3].op)
}
