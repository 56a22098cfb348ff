package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/checkout/internal/service"
	"github.com/Alturino/nebula/checkout/pkg/request"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/middleware"
	"github.com/Alturino/nebula/internal/otel"
)

type CheckoutController struct {
	service *service.CheckoutService
}

func AttachCheckoutController(mux *mux.Router, service *service.CheckoutService) {
	controller := CheckoutController{service: service}

	router := mux.PathPrefix("/checkout").Subrouter()
	router.HandleFunc("", controller.View).Methods(http.MethodGet)
	router.HandleFunc("/start", controller.Start).Methods(http.MethodPost)
	router.HandleFunc("/delivery", controller.SubmitDelivery).Methods(http.MethodPost)
	router.HandleFunc("/payment", controller.SelectPayment).Methods(http.MethodPost)
	router.HandleFunc("/verify", controller.Verify).Methods(http.MethodPost)
	router.HandleFunc("/resend", controller.Resend).Methods(http.MethodPost)
	router.HandleFunc("/back", controller.Back).Methods(http.MethodPost)
}

func (ctrl CheckoutController) write(w http.ResponseWriter, r *http.Request, result service.Result, err error, message string) {
	inHttp.WriteResultResponse(r.Context(), w, err, message, map[string]interface{}{"checkout": result})
}

func (ctrl CheckoutController) View(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController View")
	defer span.End()

	result := ctrl.service.View(c, middleware.SessionIDFromContext(c))
	ctrl.write(w, r.WithContext(c), result, nil, "got checkout")
}

func (ctrl CheckoutController) Start(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Start")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "CheckoutController Start").Logger()
	c = logger.WithContext(c)

	result, err := ctrl.service.Start(c, middleware.SessionIDFromContext(c))
	ctrl.write(w, r.WithContext(c), result, err, "started checkout")
}

func (ctrl CheckoutController) SubmitDelivery(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController SubmitDelivery")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutController SubmitDelivery").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	form := request.DeliveryForm{}
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	c = logger.WithContext(c)
	result, err := ctrl.service.SubmitDelivery(c, middleware.SessionIDFromContext(c), form)
	ctrl.write(w, r.WithContext(c), result, err, "submitted delivery form")
}

func (ctrl CheckoutController) SelectPayment(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController SelectPayment")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutController SelectPayment").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	sel := request.PaymentSelection{}
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	c = logger.WithContext(c)
	result, err := ctrl.service.SelectPayment(c, middleware.SessionIDFromContext(c), sel)
	ctrl.write(w, r.WithContext(c), result, err, "selected payment method")
}

func (ctrl CheckoutController) Verify(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Verify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CheckoutController Verify").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	code := request.VerifyCode{}
	if err := json.NewDecoder(r.Body).Decode(&code); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Object(constants.KEY_REQUEST_BODY, code).Msg("decoded request body")

	c = logger.WithContext(c)
	result, err := ctrl.service.Verify(c, middleware.SessionIDFromContext(c), code)
	ctrl.write(w, r.WithContext(c), result, err, "confirmed order")
}

func (ctrl CheckoutController) Resend(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Resend")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "CheckoutController Resend").Logger()
	c = logger.WithContext(c)

	result, err := ctrl.service.Resend(c, middleware.SessionIDFromContext(c))
	ctrl.write(w, r.WithContext(c), result, err, "resent verification code")
}

func (ctrl CheckoutController) Back(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CheckoutController Back")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(constants.KEY_TAG, "CheckoutController Back").Logger()
	c = logger.WithContext(c)

	result, err := ctrl.service.Back(c, middleware.SessionIDFromContext(c))
	ctrl.write(w, r.WithContext(c), result, err, "went back")
}
