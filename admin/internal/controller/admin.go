package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/nebula/admin/internal/service"
	"github.com/Alturino/nebula/admin/pkg/request"
	eventRequest "github.com/Alturino/nebula/event/pkg/request"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/middleware"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/validate"
	menuRequest "github.com/Alturino/nebula/menu/pkg/request"
)

type AdminController struct {
	service *service.AdminService
}

func AttachAdminController(mux *mux.Router, service *service.AdminService, secretKey string) {
	controller := AdminController{service: service}

	router := mux.PathPrefix("/admin").Subrouter()
	router.Use(middleware.Auth(secretKey))

	router.HandleFunc("/orders", controller.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{orderId}/transitions", controller.GetOrderTransitions).Methods(http.MethodGet)
	router.HandleFunc("/orders/{orderId}/status", controller.UpdateOrderStatus).Methods(http.MethodPatch)

	router.HandleFunc("/reservations", controller.GetReservations).Methods(http.MethodGet)
	router.HandleFunc("/reservations/{reservationId}/transitions", controller.GetReservationTransitions).Methods(http.MethodGet)
	router.HandleFunc("/reservations/{reservationId}/status", controller.UpdateReservationStatus).Methods(http.MethodPatch)

	router.HandleFunc("/menu-items", controller.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu-items", controller.InsertMenuItem).Methods(http.MethodPost)
	router.HandleFunc("/menu-items/{menuItemId}", controller.UpdateMenuItem).Methods(http.MethodPut)
	router.HandleFunc("/menu-items/{menuItemId}", controller.RemoveMenuItem).Methods(http.MethodDelete)

	router.HandleFunc("/events", controller.GetEvents).Methods(http.MethodGet)
	router.HandleFunc("/events", controller.InsertEvent).Methods(http.MethodPost)
	router.HandleFunc("/events/{eventId}", controller.RemoveEvent).Methods(http.MethodDelete)
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
	}
	return nil
}

func pathID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("failed parsing %s with error=%w", key, inErrors.NewValidationError(map[string]string{key: "uuid"}))
	}
	return id, nil
}

func (ctrl AdminController) GetOrders(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetOrders")
	defer span.End()

	filter := r.URL.Query().Get(constants.KEY_STATUS)
	span.SetAttributes(attribute.String(constants.KEY_STATUS, filter))
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetOrders").
		Str(constants.KEY_STATUS, filter).
		Str(constants.KEY_PROCESS, "getting orders").
		Logger()

	logger.Trace().Msg("getting orders")
	snapshot, err := ctrl.service.Orders().Snapshot(c, filter)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Int("count", len(snapshot.Records)).Msg("got orders")

	inHttp.WriteResultResponse(c, w, nil, "orders found", map[string]interface{}{constants.KEY_ORDERS: snapshot})
}

func (ctrl AdminController) GetOrderTransitions(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetOrderTransitions")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetOrderTransitions").
		Logger()

	id, err := pathID(r, constants.KEY_ORDER_ID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	transitions, err := ctrl.service.Orders().Transitions(c, id)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteResultResponse(c, w, nil, "transitions found", map[string]interface{}{"transitions": transitions})
}

func (ctrl AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController UpdateOrderStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController UpdateOrderStatus").
		Logger()

	id, err := pathID(r, constants.KEY_ORDER_ID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(constants.KEY_ORDER_ID, id.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateStatus{}
	if err = decode(r, &reqBody); err == nil {
		err = validate.Struct(c, reqBody)
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Object(constants.KEY_REQUEST_BODY, reqBody).Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating order status").Logger()
	logger.Info().Msg("updating order status")
	c = logger.WithContext(c)
	change, err := ctrl.service.UpdateOrderStatus(c, id, reqBody.Status)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated order status")

	inHttp.WriteResultResponse(c, w, nil, "order status updated", map[string]interface{}{"change": change})
}

func (ctrl AdminController) GetReservations(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetReservations")
	defer span.End()

	filter := r.URL.Query().Get(constants.KEY_STATUS)
	span.SetAttributes(attribute.String(constants.KEY_STATUS, filter))
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetReservations").
		Str(constants.KEY_STATUS, filter).
		Str(constants.KEY_PROCESS, "getting reservations").
		Logger()

	logger.Trace().Msg("getting reservations")
	snapshot, err := ctrl.service.Reservations().Snapshot(c, filter)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Int("count", len(snapshot.Records)).Msg("got reservations")

	inHttp.WriteResultResponse(c, w, nil, "reservations found", map[string]interface{}{constants.KEY_RESERVATIONS: snapshot})
}

func (ctrl AdminController) GetReservationTransitions(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetReservationTransitions")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetReservationTransitions").
		Logger()

	id, err := pathID(r, constants.KEY_RESERVATION_ID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	transitions, err := ctrl.service.Reservations().Transitions(c, id)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteResultResponse(c, w, nil, "transitions found", map[string]interface{}{"transitions": transitions})
}

func (ctrl AdminController) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController UpdateReservationStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController UpdateReservationStatus").
		Logger()

	id, err := pathID(r, constants.KEY_RESERVATION_ID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger = logger.With().Str(constants.KEY_RESERVATION_ID, id.String()).Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateStatus{}
	if err = decode(r, &reqBody); err == nil {
		err = validate.Struct(c, reqBody)
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Object(constants.KEY_REQUEST_BODY, reqBody).Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating reservation status").Logger()
	logger.Info().Msg("updating reservation status")
	c = logger.WithContext(c)
	change, err := ctrl.service.UpdateReservationStatus(c, id, reqBody.Status)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated reservation status")

	inHttp.WriteResultResponse(c, w, nil, "reservation status updated", map[string]interface{}{"change": change})
}

func (ctrl AdminController) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetMenuItems").
		Logger()

	items, err := ctrl.service.ListMenuItems(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteResultResponse(c, w, nil, "menu items found", map[string]interface{}{"menu_items": items})
}

func (ctrl AdminController) InsertMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController InsertMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController InsertMenuItem").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := menuRequest.MenuItem{}
	if err := decode(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting menu item").Logger()
	logger.Info().Msg("inserting menu item")
	c = logger.WithContext(c)
	item, err := ctrl.service.CreateMenuItem(c, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted menu item")

	inHttp.WriteResultResponse(c, w, nil, "successfully inserted menu item", map[string]interface{}{constants.KEY_MENU_ITEM: item})
}

func (ctrl AdminController) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController UpdateMenuItem")
	defer span.End()

	id := mux.Vars(r)[constants.KEY_MENU_ITEM_ID]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController UpdateMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := menuRequest.MenuItem{}
	if err := decode(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating menu item").Logger()
	logger.Info().Msg("updating menu item")
	c = logger.WithContext(c)
	item, err := ctrl.service.UpdateMenuItem(c, id, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("updated menu item")

	inHttp.WriteResultResponse(c, w, nil, "successfully updated menu item", map[string]interface{}{constants.KEY_MENU_ITEM: item})
}

func (ctrl AdminController) RemoveMenuItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController RemoveMenuItem")
	defer span.End()

	id := mux.Vars(r)[constants.KEY_MENU_ITEM_ID]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController RemoveMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "removing menu item").
		Logger()

	logger.Info().Msg("removing menu item")
	c = logger.WithContext(c)
	if err := ctrl.service.DeleteMenuItem(c, id); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed menu item")

	inHttp.WriteResultResponse(c, w, nil, "successfully removed menu item", map[string]interface{}{constants.KEY_MENU_ITEM_ID: id})
}

func (ctrl AdminController) GetEvents(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController GetEvents")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController GetEvents").
		Logger()

	events, err := ctrl.service.ListEvents(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	inHttp.WriteResultResponse(c, w, nil, "events found", map[string]interface{}{"events": events})
}

func (ctrl AdminController) InsertEvent(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController InsertEvent")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController InsertEvent").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := eventRequest.Event{}
	if err := decode(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "inserting event").Logger()
	logger.Info().Msg("inserting event")
	c = logger.WithContext(c)
	event, err := ctrl.service.CreateEvent(c, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("inserted event")

	inHttp.WriteResultResponse(c, w, nil, "successfully inserted event", map[string]interface{}{constants.KEY_EVENT: event})
}

func (ctrl AdminController) RemoveEvent(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AdminController RemoveEvent")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminController RemoveEvent").
		Logger()

	id, err := pathID(r, constants.KEY_EVENT_ID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}

	logger = logger.With().Str(constants.KEY_EVENT_ID, id.String()).Str(constants.KEY_PROCESS, "removing event").Logger()
	logger.Info().Msg("removing event")
	c = logger.WithContext(c)
	if err = ctrl.service.DeleteEvent(c, id); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed event")

	inHttp.WriteResultResponse(c, w, nil, "successfully removed event", map[string]interface{}{constants.KEY_EVENT_ID: id})
}
