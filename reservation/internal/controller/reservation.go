package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/middleware"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/reservation/internal/service"
	"github.com/Alturino/nebula/reservation/pkg/request"
)

type ReservationController struct {
	service *service.ReservationService
}

func AttachReservationController(mux *mux.Router, service *service.ReservationService) {
	controller := ReservationController{service: service}

	router := mux.PathPrefix("/reservations").Subrouter()
	router.HandleFunc("", controller.RequestReservation).Methods(http.MethodPost)
	router.HandleFunc("/slots", controller.GetSlots).Methods(http.MethodGet)
	router.HandleFunc("/verify", controller.VerifyReservation).Methods(http.MethodPost)
	router.HandleFunc("/resend", controller.ResendCode).Methods(http.MethodPost)
}

func (ctrl ReservationController) GetSlots(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ReservationController GetSlots")
	defer span.End()

	inHttp.WriteResultResponse(c, w, nil, "slots found", map[string]interface{}{"slots": ctrl.service.Slots()})
}

func (ctrl ReservationController) RequestReservation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ReservationController RequestReservation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationController RequestReservation").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Reservation{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "requesting reservation").Logger()
	logger.Info().Msg("requesting reservation")
	c = logger.WithContext(c)
	pending, err := ctrl.service.Request(c, middleware.SessionIDFromContext(c), reqBody)
	if err != nil {
		err = fmt.Errorf("failed requesting reservation with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("requested reservation")

	inHttp.WriteResultResponse(c, w, nil, "verification code sent", map[string]interface{}{"pending": pending})
}

func (ctrl ReservationController) VerifyReservation(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ReservationController VerifyReservation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationController VerifyReservation").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.Verify{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Object(constants.KEY_REQUEST_BODY, reqBody).Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "verifying reservation").Logger()
	logger.Info().Msg("verifying reservation")
	c = logger.WithContext(c)
	reservation, err := ctrl.service.Verify(c, middleware.SessionIDFromContext(c), reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("verified reservation")

	inHttp.WriteResultResponse(c, w, nil, "reservation created", map[string]interface{}{"reservation": reservation})
}

func (ctrl ReservationController) ResendCode(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ReservationController ResendCode")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationController ResendCode").
		Logger()
	c = logger.WithContext(c)

	pending, err := ctrl.service.Resend(c, middleware.SessionIDFromContext(c))
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteResultResponse(c, w, nil, "verification code resent", map[string]interface{}{"pending": pending})
}
