package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/checkout/internal/flow"
	"github.com/Alturino/nebula/checkout/pkg/request"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/otel"
	orderRequest "github.com/Alturino/nebula/order/pkg/request"
	"github.com/Alturino/nebula/order/pkg/response"
	"github.com/Alturino/nebula/verification/pkg/verifier"
)

type Carts interface {
	Get(sessionID string) *store.Store
}

type Flows interface {
	Get(sessionID string) *flow.Flow
}

type Verifier interface {
	IssueCode(c context.Context, email string) (verifier.Issued, error)
	Resend(c context.Context, email string) (verifier.Issued, error)
	Verify(c context.Context, email string, code string) error
}

type OrderCreator interface {
	CreateOrder(c context.Context, param orderRequest.CreateOrder) (response.Order, error)
}

type CheckoutService struct {
	carts    Carts
	flows    Flows
	verifier Verifier
	orders   OrderCreator
}

func NewCheckoutService(carts Carts, flows Flows, verifier Verifier, orders OrderCreator) CheckoutService {
	return CheckoutService{carts: carts, flows: flows, verifier: verifier, orders: orders}
}

// Result is the checkout as the shopper sees it after an operation.
type Result struct {
	Order *response.Order `json:"order,omitempty"`
	Cart  store.Snapshot  `json:"cart"`
	flow.View
}

func (s CheckoutService) result(sessionID string, view flow.View) Result {
	return Result{View: view, Cart: s.carts.Get(sessionID).Snapshot()}
}

func (s CheckoutService) View(c context.Context, sessionID string) Result {
	return s.result(sessionID, s.flows.Get(sessionID).View())
}

func (s CheckoutService) Start(c context.Context, sessionID string) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Start")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService Start").
		Str(constants.KEY_PROCESS, "starting checkout").
		Logger()

	logger.Info().Msg("starting checkout")
	view, err := s.flows.Get(sessionID).Start(s.carts.Get(sessionID).Snapshot())
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, view), err
	}
	logger.Info().Str(constants.KEY_CHECKOUT_STEP, string(view.Step)).Msg("started checkout")

	return s.result(sessionID, view), nil
}

func (s CheckoutService) SubmitDelivery(c context.Context, sessionID string, form request.DeliveryForm) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService SubmitDelivery")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService SubmitDelivery").
		Str(constants.KEY_PROCESS, "submitting delivery form").
		Object(constants.KEY_REQUEST_BODY, form).
		Logger()

	logger.Info().Msg("submitting delivery form")
	view, err := s.flows.Get(sessionID).SubmitDelivery(c, form)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, view), err
	}
	logger.Info().Msg("submitted delivery form")

	return s.result(sessionID, view), nil
}

// SelectPayment moves to email verification and sends the first code.
func (s CheckoutService) SelectPayment(c context.Context, sessionID string, sel request.PaymentSelection) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService SelectPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService SelectPayment").
		Str(constants.KEY_PROCESS, "selecting payment method").
		Object(constants.KEY_REQUEST_BODY, sel).
		Logger()
	c = logger.WithContext(c)

	logger.Info().Msg("selecting payment method")
	f := s.flows.Get(sessionID)
	attempt, view, err := f.SelectPayment(c, sel, s.carts.Get(sessionID).Snapshot())
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, view), err
	}
	logger.Info().Msg("selected payment method")

	view, err = s.send(c, f, attempt, s.verifier.IssueCode)
	return s.result(sessionID, view), err
}

func (s CheckoutService) Resend(c context.Context, sessionID string) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Resend")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService Resend").
		Str(constants.KEY_PROCESS, "resending code").
		Logger()
	c = logger.WithContext(c)

	f := s.flows.Get(sessionID)
	attempt, err := f.Resend()
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, f.View()), err
	}

	view, err := s.send(c, f, attempt, s.verifier.Resend)
	return s.result(sessionID, view), err
}

func (s CheckoutService) send(
	c context.Context,
	f *flow.Flow,
	attempt flow.Attempt,
	issue func(context.Context, string) (verifier.Issued, error),
) (flow.View, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_PROCESS, "sending verification code").
		Uint64("generation", attempt.Generation).
		Logger()

	logger.Info().Msg("sending verification code")
	_, sendErr := issue(c, attempt.Email)
	view, applied := f.Delivered(attempt, sendErr)
	if !applied {
		logger.Warn().Msg("dropped send result of abandoned attempt")
		return view, nil
	}
	if sendErr != nil {
		logger.Error().Err(sendErr).Msg(sendErr.Error())
		return view, sendErr
	}
	logger.Info().Msg("sent verification code")
	return view, nil
}

// Verify builds the order from the cart, checks the code, creates the order,
// then clears and closes the cart. A cart that cannot become an order leaves
// the code unused.
func (s CheckoutService) Verify(c context.Context, sessionID string, code request.VerifyCode) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Verify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService Verify").
		Logger()
	c = logger.WithContext(c)

	f := s.flows.Get(sessionID)
	cart := s.carts.Get(sessionID)

	logger = logger.With().Str(constants.KEY_PROCESS, "checking step").Logger()
	logger.Info().Msg("checking step")
	attempt, err := f.Verifying()
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, f.View()), err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "building order").Logger()
	logger.Info().Msg("building order")
	param, err := f.Order(attempt, cart.Snapshot(), uuid.New())
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, f.VerifyFailed(attempt, err)), err
	}
	logger.Info().Msg("built order")

	logger = logger.With().Str(constants.KEY_PROCESS, "verifying code").Logger()
	logger.Info().Msg("verifying code")
	if err = s.verifier.Verify(c, attempt.Email, code.Code); err != nil {
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return s.result(sessionID, f.VerifyFailed(attempt, err)), err
	}
	logger.Info().Msg("verified code")

	logger = logger.With().Str(constants.KEY_PROCESS, "creating order").Logger()
	logger.Info().Msg("creating order")
	order, err := s.orders.CreateOrder(c, param)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, f.VerifyFailed(attempt, err)), err
	}
	logger = logger.With().Str(constants.KEY_ORDER_ID, order.ID.String()).Logger()
	logger.Info().Msg("created order")

	view, applied := f.Confirm(attempt, order.ID)
	if !applied {
		logger.Warn().Msg("checkout was abandoned while the order was being created")
	}
	cart.Clear()
	cart.Close()

	result := s.result(sessionID, view)
	result.Order = &order
	return result, nil
}

func (s CheckoutService) Back(c context.Context, sessionID string) (Result, error) {
	c, span := otel.Tracer.Start(c, "CheckoutService Back")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutService Back").
		Str(constants.KEY_PROCESS, "going back").
		Logger()

	view, err := s.flows.Get(sessionID).Back()
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return s.result(sessionID, view), err
	}
	logger.Info().Str(constants.KEY_CHECKOUT_STEP, string(view.Step)).Msg("went back")

	return s.result(sessionID, view), nil
}
