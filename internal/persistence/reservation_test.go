package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/validate"
	"github.com/Alturino/nebula/internal/workflow"
	"github.com/Alturino/nebula/reservation/pkg/request"
)

func TestReservationStore(t *testing.T) {
	c := context.Background()
	pool, container, queries, notifier := setup(t)(c)
	defer teardown(t)(pool, container)

	store := NewReservationStore(pool, queries, notifier)
	tomorrow := time.Now().AddDate(0, 0, 1).Format(validate.DateLayout)
	later := time.Now().AddDate(0, 0, 2).Format(validate.DateLayout)

	first := request.CreateReservation{
		ID: uuid.New(), CustomerName: "Grace", Email: "grace@example.com", Phone: "555",
		Date: later, Time: "18:00", Guests: 2,
	}
	second := request.CreateReservation{
		ID: uuid.New(), CustomerName: "Alan", Email: "alan@example.com", Phone: "556",
		Date: tomorrow, Time: "19:30", Guests: 4, SpecialRequests: "window seat",
	}
	for _, r := range []request.CreateReservation{first, second} {
		created, err := store.CreateReservation(c, r)
		require.NoError(t, err)
		assert.Equal(t, workflow.ReservationPending, created.Status)
		assert.Equal(t, r.Date, created.Date)
	}

	_, err := store.CreateReservation(c, request.CreateReservation{ID: uuid.New(), Date: "not-a-date"})
	assert.True(t, inErrors.IsValidation(err))

	reservations, err := store.ListReservations(c)
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, second.ID, reservations[0].ID)
	require.NotNil(t, reservations[0].SpecialRequests)
	assert.Equal(t, "window seat", *reservations[0].SpecialRequests)
	assert.Nil(t, reservations[1].SpecialRequests)

	tests := []struct {
		name        string
		id          uuid.UUID
		to          workflow.ReservationStatus
		expectedErr error
	}{
		{name: "pending to completed is rejected", id: first.ID, to: workflow.ReservationCompleted, expectedErr: inErrors.ErrIllegalTransition},
		{name: "pending to confirmed", id: first.ID, to: workflow.ReservationConfirmed},
		{name: "confirmed to cancelled is rejected", id: first.ID, to: workflow.ReservationCancelled, expectedErr: inErrors.ErrIllegalTransition},
		{name: "confirmed to completed", id: first.ID, to: workflow.ReservationCompleted},
		{name: "pending to cancelled", id: second.ID, to: workflow.ReservationCancelled},
		{name: "unknown reservation", id: uuid.New(), to: workflow.ReservationConfirmed, expectedErr: inErrors.ErrNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			change, err := store.UpdateReservationStatus(c, test.id, test.to)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.to, change.To)
		})
	}

	assert.Len(t, notifier.Changes(), 5)
}
