package flow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/checkout/pkg/payment"
	"github.com/Alturino/nebula/checkout/pkg/request"
	"github.com/Alturino/nebula/internal/config"
	inErrors "github.com/Alturino/nebula/internal/errors"
)

var paymentConfig = config.Payment{
	DeliveryFee:     decimal.RequireFromString("3.50"),
	CashHandlingFee: decimal.RequireFromString("2.00"),
}

var form = request.DeliveryForm{
	Name:    "Ada Lovelace",
	Email:   "ada@example.com",
	Phone:   "555-0100",
	Address: "12 Analytical Row",
	City:    "London",
}

func filledCart() store.Snapshot {
	cart := store.New()
	cart.AddItem(store.Item{ID: "2", Name: "Truffle Pasta", Price: decimal.RequireFromString("24.99")})
	return cart.AddItem(store.Item{ID: "2", Name: "Truffle Pasta", Price: decimal.RequireFromString("24.99")})
}

// atVerification drives a new flow up to email verification.
func atVerification(t *testing.T, method string) (*Flow, Attempt) {
	c := context.Background()
	f := New(paymentConfig)
	_, err := f.Start(filledCart())
	require.NoError(t, err)
	_, err = f.SubmitDelivery(c, form)
	require.NoError(t, err)
	attempt, view, err := f.SelectPayment(c, request.PaymentSelection{Method: method}, filledCart())
	require.NoError(t, err)
	require.Equal(t, StepEmailVerification, view.Step)
	return f, attempt
}

func TestStart(t *testing.T) {
	f := New(paymentConfig)

	view, err := f.Start(store.New().Snapshot())
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)
	assert.Equal(t, StepCart, view.Step)

	view, err = f.Start(filledCart())
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryForm, view.Step)

	_, err = f.Start(filledCart())
	assert.ErrorIs(t, err, inErrors.ErrWrongStep)
}

func TestSubmitDelivery(t *testing.T) {
	tests := []struct {
		name     string
		form     request.DeliveryForm
		expected Step
		invalid  bool
	}{
		{name: "complete form advances", form: form, expected: StepPaymentMethodSelection},
		{name: "missing address stays", form: request.DeliveryForm{Name: "Ada", Email: "ada@example.com", Phone: "1"}, expected: StepDeliveryForm, invalid: true},
		{name: "bad email stays", form: request.DeliveryForm{Name: "Ada", Email: "ada", Phone: "1", Address: "x"}, expected: StepDeliveryForm, invalid: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := New(paymentConfig)
			_, err := f.Start(filledCart())
			require.NoError(t, err)

			view, err := f.SubmitDelivery(context.Background(), test.form)
			assert.Equal(t, test.expected, view.Step)
			require.NotNil(t, view.Delivery)
			assert.Equal(t, test.form, *view.Delivery)
			if test.invalid {
				assert.True(t, inErrors.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSelectPayment(t *testing.T) {
	tests := []struct {
		name   string
		method string
		total  string
	}{
		{name: "cash on delivery", method: "delivery", total: "55.48"},
		{name: "card", method: "card", total: "53.48"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sel := request.PaymentSelection{Method: test.method}
			if test.method == "card" {
				sel.Card = &request.CardDetails{Name: "Ada", Number: "4242", Expiry: "12/30", CVV: "123"}
			}
			c := context.Background()
			f := New(paymentConfig)
			_, _ = f.Start(filledCart())
			_, _ = f.SubmitDelivery(c, form)

			attempt, view, err := f.SelectPayment(c, sel, filledCart())
			require.NoError(t, err)
			assert.Equal(t, form.Email, attempt.Email)
			assert.Equal(t, uint64(1), attempt.Generation)
			require.NotNil(t, view.Quote)
			assert.True(t, view.Quote.Total.Equal(decimal.RequireFromString(test.total)), view.Quote.Total.String())
		})
	}

	t.Run("card without details stays", func(t *testing.T) {
		c := context.Background()
		f := New(paymentConfig)
		_, _ = f.Start(filledCart())
		_, _ = f.SubmitDelivery(c, form)
		_, view, err := f.SelectPayment(c, request.PaymentSelection{Method: "card"}, filledCart())
		assert.True(t, inErrors.IsValidation(err))
		assert.Equal(t, StepPaymentMethodSelection, view.Step)
	})
}

func TestAbandonInvalidatesInFlightSend(t *testing.T) {
	f, attempt := atVerification(t, "delivery")

	view, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, StepCart, view.Step)
	assert.Nil(t, view.Quote)

	view, applied := f.Delivered(attempt, nil)
	assert.False(t, applied)
	assert.Equal(t, StepCart, view.Step)
	assert.False(t, view.CodeSent)
}

func TestResendSupersedesEarlierAttempt(t *testing.T) {
	f, first := atVerification(t, "delivery")

	second, err := f.Resend()
	require.NoError(t, err)
	assert.Greater(t, second.Generation, first.Generation)

	_, applied := f.Delivered(first, errors.New("smtp down"))
	assert.False(t, applied)

	view, applied := f.Delivered(second, nil)
	assert.True(t, applied)
	assert.True(t, view.CodeSent)
	assert.Empty(t, view.Notice)
}

func TestFailedVerificationKeepsForm(t *testing.T) {
	f, attempt := atVerification(t, "delivery")
	f.Delivered(attempt, nil)

	current, err := f.Verifying()
	require.NoError(t, err)
	view := f.VerifyFailed(current, inErrors.ErrInvalidCode)

	assert.Equal(t, StepEmailVerification, view.Step)
	require.NotNil(t, view.Delivery)
	assert.Equal(t, form, *view.Delivery)
	require.NotNil(t, view.Quote)
	assert.Equal(t, payment.MethodDelivery, view.Quote.Method)
	assert.NotEmpty(t, view.Notice)
}

func TestVerifyFailedNotice(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "wrong code", err: fmt.Errorf("failed comparing code attempts=1 with error=%w", inErrors.ErrInvalidCode), expected: "the verification code is incorrect, please try again"},
		{name: "expired code", err: inErrors.ErrNotSent, expected: "the verification code has expired, please resend"},
		{name: "empty cart", err: inErrors.ErrEmptyCart, expected: "your cart is empty"},
		{name: "oversized quantity", err: inErrors.NewValidationError(map[string]string{"quantity": "lte"}), expected: "please review the quantities in your cart"},
		{name: "order not saved", err: fmt.Errorf("failed creating order with error=%w", inErrors.ErrPersistence), expected: "failed placing your order, please try again"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, attempt := atVerification(t, "delivery")
			view := f.VerifyFailed(attempt, test.err)
			assert.Equal(t, test.expected, view.Notice)
			assert.NotContains(t, view.Notice, "error=")
		})
	}
}

func TestOrderRejectsOversizedQuantity(t *testing.T) {
	f, attempt := atVerification(t, "delivery")

	cart := store.New()
	cart.AddItem(store.Item{ID: "2", Name: "Truffle Pasta", Price: decimal.RequireFromString("24.99")})
	snapshot := cart.UpdateQuantity("2", math.MaxInt32+1)

	_, err := f.Order(attempt, snapshot, uuid.New())
	require.Error(t, err)
	assert.True(t, inErrors.IsValidation(err))
	assert.Equal(t, map[string]string{"quantity": "lte"}, inErrors.ValidationFields(err))

	order, err := f.Order(attempt, cart.UpdateQuantity("2", math.MaxInt32), uuid.New())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(math.MaxInt32), order.Items[0].Quantity)
}

func TestConfirm(t *testing.T) {
	f, attempt := atVerification(t, "delivery")
	id := uuid.New()

	order, err := f.Order(attempt, filledCart(), id)
	require.NoError(t, err)
	assert.Equal(t, id, order.ID)
	assert.Equal(t, form.Address, order.DeliveryAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int32(2), order.Items[0].Quantity)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("55.48")))

	_, err = f.Order(attempt, store.New().Snapshot(), id)
	assert.ErrorIs(t, err, inErrors.ErrEmptyCart)

	view, applied := f.Confirm(attempt, id)
	assert.True(t, applied)
	assert.Equal(t, StepConfirmed, view.Step)
	require.NotNil(t, view.OrderID)
	assert.Equal(t, id, *view.OrderID)

	_, err = f.Back()
	assert.ErrorIs(t, err, inErrors.ErrWrongStep)

	view, err = f.Start(filledCart())
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryForm, view.Step)
	assert.Nil(t, view.Delivery)
	assert.Nil(t, view.OrderID)
}

func TestBack(t *testing.T) {
	c := context.Background()
	f := New(paymentConfig)

	_, err := f.Back()
	assert.ErrorIs(t, err, inErrors.ErrWrongStep)

	_, _ = f.Start(filledCart())
	_, _ = f.SubmitDelivery(c, form)

	view, err := f.Back()
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryForm, view.Step)
	assert.NotNil(t, view.Delivery)

	view, err = f.Back()
	require.NoError(t, err)
	assert.Equal(t, StepCart, view.Step)
}
