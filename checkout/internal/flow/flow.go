// Package flow sequences one shopper's checkout through
// cart, delivery form, payment method, email verification and confirmation.
package flow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/checkout/pkg/payment"
	"github.com/Alturino/nebula/checkout/pkg/request"
	"github.com/Alturino/nebula/internal/config"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/validate"
	orderRequest "github.com/Alturino/nebula/order/pkg/request"
)

type Step string

const (
	StepCart                   Step = "cart"
	StepDeliveryForm           Step = "delivery_form"
	StepPaymentMethodSelection Step = "payment_method_selection"
	StepEmailVerification      Step = "email_verification"
	StepConfirmed              Step = "confirmed"
)

// Attempt identifies one code issuance. Results reported with an attempt
// older than the flow's current generation are dropped.
type Attempt struct {
	Email      string
	Generation uint64
}

type View struct {
	Delivery   *request.DeliveryForm `json:"delivery,omitempty"`
	Quote      *payment.Quote        `json:"quote,omitempty"`
	OrderID    *uuid.UUID            `json:"order_id,omitempty"`
	Step       Step                  `json:"step"`
	Notice     string                `json:"notice,omitempty"`
	CodeSent   bool                  `json:"code_sent"`
	Generation uint64                `json:"generation"`
}

type Flow struct {
	mu         sync.Mutex
	cfg        config.Payment
	step       Step
	delivery   *request.DeliveryForm
	payment    *request.PaymentSelection
	quote      *payment.Quote
	orderID    *uuid.UUID
	notice     string
	codeSent   bool
	generation uint64
}

func New(cfg config.Payment) *Flow {
	return &Flow{cfg: cfg, step: StepCart}
}

func (f *Flow) wrongStep(action string) error {
	return fmt.Errorf("failed %s in step=%s with error=%w", action, f.step, inErrors.ErrWrongStep)
}

func (f *Flow) view() View {
	v := View{
		Step:       f.step,
		Notice:     f.notice,
		CodeSent:   f.codeSent,
		Generation: f.generation,
		OrderID:    f.orderID,
	}
	if f.delivery != nil {
		d := *f.delivery
		v.Delivery = &d
	}
	if f.quote != nil {
		q := *f.quote
		v.Quote = &q
	}
	return v
}

func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.view()
}

// Start leaves the cart for the delivery form. A confirmed flow starts over.
func (f *Flow) Start(cart store.Snapshot) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepConfirmed {
		f.reset()
	}
	if f.step != StepCart {
		return f.view(), f.wrongStep("starting checkout")
	}
	if cart.IsEmpty() {
		return f.view(), fmt.Errorf("failed starting checkout with error=%w", inErrors.ErrEmptyCart)
	}
	f.step = StepDeliveryForm
	f.notice = ""
	return f.view(), nil
}

// SubmitDelivery keeps the submitted form even when it fails validation.
func (f *Flow) SubmitDelivery(c context.Context, form request.DeliveryForm) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepDeliveryForm {
		return f.view(), f.wrongStep("submitting delivery form")
	}
	f.delivery = &form
	if err := validate.Struct(c, form); err != nil {
		f.notice = "please complete the required delivery fields"
		return f.view(), fmt.Errorf("failed submitting delivery form with error=%w", err)
	}
	f.notice = ""
	f.step = StepPaymentMethodSelection
	return f.view(), nil
}

// SelectPayment prices the cart and opens a new issuance attempt for the
// delivery email.
func (f *Flow) SelectPayment(c context.Context, sel request.PaymentSelection, cart store.Snapshot) (Attempt, View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPaymentMethodSelection {
		return Attempt{}, f.view(), f.wrongStep("selecting payment method")
	}
	if err := sel.Validate(c); err != nil {
		f.notice = "please complete the payment details"
		return Attempt{}, f.view(), fmt.Errorf("failed selecting payment method with error=%w", err)
	}
	method, err := payment.ParseMethod(sel.Method)
	if err != nil {
		return Attempt{}, f.view(), err
	}
	quote := payment.QuoteFor(cart.Total, method, f.cfg)
	f.payment = &sel
	f.quote = &quote
	f.notice = ""
	f.step = StepEmailVerification
	return f.nextAttempt(), f.view(), nil
}

func (f *Flow) nextAttempt() Attempt {
	f.generation++
	f.codeSent = false
	return Attempt{Email: f.delivery.Email, Generation: f.generation}
}

// Resend opens a new attempt, superseding any send still in flight.
func (f *Flow) Resend() (Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepEmailVerification {
		return Attempt{}, f.wrongStep("resending code")
	}
	return f.nextAttempt(), nil
}

func (f *Flow) current(a Attempt) bool {
	return f.step == StepEmailVerification && a.Generation == f.generation
}

// Delivered records the outcome of a send. It reports false when the attempt
// has been superseded, in which case nothing changes.
func (f *Flow) Delivered(a Attempt, sendErr error) (View, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.current(a) {
		return f.view(), false
	}
	f.codeSent = sendErr == nil
	f.notice = ""
	if sendErr != nil {
		f.notice = "failed sending verification code, please resend"
	}
	return f.view(), true
}

// Verifying returns the attempt a submitted code is checked against.
func (f *Flow) Verifying() (Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepEmailVerification {
		return Attempt{}, f.wrongStep("verifying code")
	}
	return Attempt{Email: f.delivery.Email, Generation: f.generation}, nil
}

// VerifyFailed keeps the step and every captured field.
func (f *Flow) VerifyFailed(a Attempt, verifyErr error) View {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.current(a) {
		f.notice = verifyNotice(verifyErr)
	}
	return f.view()
}

func verifyNotice(err error) string {
	switch {
	case errors.Is(err, inErrors.ErrInvalidCode):
		return "the verification code is incorrect, please try again"
	case errors.Is(err, inErrors.ErrNotSent):
		return "the verification code has expired, please resend"
	case errors.Is(err, inErrors.ErrEmptyCart):
		return "your cart is empty"
	case inErrors.IsValidation(err):
		return "please review the quantities in your cart"
	default:
		return "failed placing your order, please try again"
	}
}

// Order builds the order for the current attempt from the captured context
// and the cart as it is now.
func (f *Flow) Order(a Attempt, cart store.Snapshot, id uuid.UUID) (orderRequest.CreateOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.current(a) {
		return orderRequest.CreateOrder{}, f.wrongStep("building order")
	}
	if cart.IsEmpty() {
		return orderRequest.CreateOrder{}, fmt.Errorf("failed building order with error=%w", inErrors.ErrEmptyCart)
	}
	quote := payment.QuoteFor(cart.Total, f.quote.Method, f.cfg)
	f.quote = &quote

	items := make([]orderRequest.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		if line.Quantity > math.MaxInt32 {
			err := inErrors.NewValidationError(map[string]string{"quantity": "lte"})
			return orderRequest.CreateOrder{}, fmt.Errorf("failed building order item id=%s with error=%w", line.ID, err)
		}
		items = append(items, orderRequest.OrderItem{
			MenuItemID: line.ID,
			Name:       line.Name,
			Price:      line.Price,
			Quantity:   int32(line.Quantity),
		})
	}
	return orderRequest.CreateOrder{
		ID:                  id,
		CustomerName:        f.delivery.Name,
		Email:               f.delivery.Email,
		Phone:               f.delivery.Phone,
		DeliveryAddress:     f.delivery.Address,
		City:                f.delivery.City,
		PostalCode:          f.delivery.PostalCode,
		DeliveryTime:        f.delivery.DeliveryTime,
		SpecialInstructions: f.delivery.SpecialInstructions,
		PaymentMethod:       string(quote.Method),
		Items:               items,
		Subtotal:            quote.Subtotal,
		DeliveryFee:         quote.DeliveryFee,
		HandlingFee:         quote.HandlingFee,
		Total:               quote.Total,
	}, nil
}

// Confirm finishes the attempt with the created order id.
func (f *Flow) Confirm(a Attempt, orderID uuid.UUID) (View, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.current(a) {
		return f.view(), false
	}
	f.step = StepConfirmed
	f.orderID = &orderID
	f.payment = nil
	f.notice = ""
	f.codeSent = false
	return f.view(), true
}

// Back steps one screen back. Leaving email verification abandons the
// attempt and returns to the cart.
func (f *Flow) Back() (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepDeliveryForm:
		f.step = StepCart
	case StepPaymentMethodSelection:
		f.step = StepDeliveryForm
	case StepEmailVerification:
		f.generation++
		f.step = StepCart
		f.payment = nil
		f.quote = nil
		f.codeSent = false
	default:
		return f.view(), f.wrongStep("going back")
	}
	f.notice = ""
	return f.view(), nil
}

func (f *Flow) reset() {
	f.step = StepCart
	f.delivery = nil
	f.payment = nil
	f.quote = nil
	f.orderID = nil
	f.notice = ""
	f.codeSent = false
}
