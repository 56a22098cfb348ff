package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
)

func TestOrderLifecycle(t *testing.T) {
	path := []OrderStatus{OrderPending, OrderPreparing, OrderReady, OrderDelivered}
	for i := 0; i < len(path)-1; i++ {
		assert.NoError(t, Orders.Check(path[i], path[i+1]))
	}
	assert.True(t, OrderDelivered.IsTerminal())
	assert.Empty(t, Orders.Allowed(OrderDelivered))
}

func TestOrderCheck(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		err  error
	}{
		{name: "given pending to delivered should be rejected", from: OrderPending, to: OrderDelivered, err: inErrors.ErrIllegalTransition},
		{name: "given pending to ready should be rejected", from: OrderPending, to: OrderReady, err: inErrors.ErrIllegalTransition},
		{name: "given ready to preparing should be rejected", from: OrderReady, to: OrderPreparing, err: inErrors.ErrIllegalTransition},
		{name: "given delivered to cancelled should be rejected", from: OrderDelivered, to: OrderCancelled, err: inErrors.ErrIllegalTransition},
		{name: "given pending to cancelled should be allowed", from: OrderPending, to: OrderCancelled},
		{name: "given confirmed to preparing should be allowed", from: OrderConfirmed, to: OrderPreparing},
		{name: "given preparing to cancelled should be rejected", from: OrderPreparing, to: OrderCancelled, err: inErrors.ErrIllegalTransition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Orders.Check(tt.from, tt.to)
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestReservationCancellationIsTerminal(t *testing.T) {
	require.NoError(t, Reservations.Check(ReservationPending, ReservationCancelled))
	assert.True(t, ReservationCancelled.IsTerminal())
	assert.Empty(t, Reservations.Allowed(ReservationCancelled))
	for _, s := range Reservations.States() {
		assert.False(t, Reservations.CanTransition(ReservationCancelled, s))
	}
}

func TestReservationTransitions(t *testing.T) {
	assert.Equal(t, []ReservationStatus{ReservationConfirmed, ReservationCancelled}, Reservations.Allowed(ReservationPending))
	assert.Equal(t, []ReservationStatus{ReservationCompleted}, Reservations.Allowed(ReservationConfirmed))
	assert.True(t, ReservationCompleted.IsTerminal())
	assert.False(t, ReservationPending.IsTerminal())
}

func TestParse(t *testing.T) {
	s, err := Orders.Parse("ready")
	require.NoError(t, err)
	assert.Equal(t, OrderReady, s)

	_, err = Orders.Parse("completed")
	assert.ErrorIs(t, err, inErrors.ErrUnknownStatus)

	_, err = Reservations.Parse("delivered")
	assert.ErrorIs(t, err, inErrors.ErrUnknownStatus)
}

func TestAllowedReturnsCopy(t *testing.T) {
	allowed := Orders.Allowed(OrderPending)
	allowed[0] = OrderDelivered
	assert.Equal(t, OrderPreparing, Orders.Allowed(OrderPending)[0])
}
