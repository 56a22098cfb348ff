package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/session"
	"github.com/Alturino/nebula/internal/validate"
	"github.com/Alturino/nebula/internal/workflow"
	"github.com/Alturino/nebula/reservation/pkg/request"
	"github.com/Alturino/nebula/reservation/pkg/response"
	"github.com/Alturino/nebula/verification/pkg/verifier"
)

type fakeVerifier struct {
	code    string
	sendErr error
	issued  int
}

func (f *fakeVerifier) IssueCode(c context.Context, email string) (verifier.Issued, error) {
	f.issued++
	return verifier.Issued{Email: email, ExpiresAt: time.Now().Add(10 * time.Minute)}, f.sendErr
}

func (f *fakeVerifier) Resend(c context.Context, email string) (verifier.Issued, error) {
	return f.IssueCode(c, email)
}

func (f *fakeVerifier) Verify(c context.Context, email string, code string) error {
	if f.code == "" {
		return inErrors.ErrNotSent
	}
	if f.code != code {
		return inErrors.ErrInvalidCode
	}
	f.code = ""
	return nil
}

type fakeReservations struct {
	err     error
	created []request.CreateReservation
}

func (f *fakeReservations) CreateReservation(c context.Context, param request.CreateReservation) (response.Reservation, error) {
	if f.err != nil {
		return response.Reservation{}, f.err
	}
	f.created = append(f.created, param)
	return response.Reservation{
		ID:           param.ID,
		CustomerName: param.CustomerName,
		Date:         param.Date,
		Time:         param.Time,
		Guests:       param.Guests,
		Status:       workflow.ReservationPending,
	}, nil
}

func form() request.Reservation {
	return request.Reservation{
		Name:   "Grace Hopper",
		Email:  "grace@example.com",
		Phone:  "555-0199",
		Date:   time.Now().AddDate(0, 0, 3).Format(validate.DateLayout),
		Time:   "19:30",
		Guests: 4,
	}
}

func newService() (ReservationService, *fakeVerifier, *fakeReservations) {
	v := &fakeVerifier{code: "246810"}
	r := &fakeReservations{}
	return NewReservationService(session.NewRegistry(NewDraft, time.Hour), v, r), v, r
}

func TestRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*request.Reservation)
		field  string
	}{
		{name: "too many guests", mutate: func(r *request.Reservation) { r.Guests = 11 }, field: "guests"},
		{name: "no guests", mutate: func(r *request.Reservation) { r.Guests = 0 }, field: "guests"},
		{name: "past date", mutate: func(r *request.Reservation) { r.Date = "2001-01-01" }, field: "date"},
		{name: "off slot", mutate: func(r *request.Reservation) { r.Time = "16:30" }, field: "time"},
		{name: "bad email", mutate: func(r *request.Reservation) { r.Email = "grace" }, field: "email"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, v, _ := newService()
			f := form()
			test.mutate(&f)
			_, err := svc.Request(context.Background(), "s", f)
			require.True(t, inErrors.IsValidation(err), "%v", err)
			assert.Contains(t, inErrors.ValidationFields(err), test.field)
			assert.Zero(t, v.issued)
		})
	}
}

func TestReservationVerification(t *testing.T) {
	c := context.Background()
	svc, v, reservations := newService()

	_, err := svc.Verify(c, "s", request.Verify{Code: "246810"})
	assert.ErrorIs(t, err, inErrors.ErrNotSent)
	_, err = svc.Resend(c, "s")
	assert.ErrorIs(t, err, inErrors.ErrNotSent)

	pending, err := svc.Request(c, "s", form())
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", pending.Email)

	_, err = svc.Verify(c, "s", request.Verify{Code: "000000"})
	assert.ErrorIs(t, err, inErrors.ErrInvalidCode)
	assert.Empty(t, reservations.created)

	_, err = svc.Resend(c, "s")
	require.NoError(t, err)
	assert.Equal(t, 2, v.issued)

	reservation, err := svc.Verify(c, "s", request.Verify{Code: "246810"})
	require.NoError(t, err)
	assert.Equal(t, workflow.ReservationPending, reservation.Status)
	require.Len(t, reservations.created, 1)
	assert.Equal(t, "Grace Hopper", reservations.created[0].CustomerName)

	_, err = svc.Verify(c, "s", request.Verify{Code: "246810"})
	assert.ErrorIs(t, err, inErrors.ErrNotSent)
}

func TestRequestKeepsDraftWhenSendFails(t *testing.T) {
	c := context.Background()
	svc, v, _ := newService()
	v.sendErr = inErrors.ErrDelivery

	_, err := svc.Request(c, "s", form())
	assert.ErrorIs(t, err, inErrors.ErrDelivery)

	v.sendErr = nil
	_, err = svc.Resend(c, "s")
	assert.NoError(t, err)
}

func TestSlots(t *testing.T) {
	svc, _, _ := newService()
	slots := svc.Slots()
	assert.Len(t, slots, 10)
	assert.Equal(t, "17:00", slots[0])
	assert.Equal(t, "21:30", slots[len(slots)-1])
}
