package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/cart/internal/service"
	"github.com/Alturino/nebula/cart/pkg/request"
	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/middleware"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/validate"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("", controller.ClearCart).Methods(http.MethodDelete)
	router.HandleFunc("/items", controller.AddItem).Methods(http.MethodPost)
	router.HandleFunc("/items/{cartItemId}", controller.UpdateQuantity).Methods(http.MethodPut)
	router.HandleFunc("/items/{cartItemId}", controller.RemoveItem).Methods(http.MethodDelete)
	router.HandleFunc("/{action:toggle|open|close}", controller.Visibility).Methods(http.MethodPost)
}

func writeCart(w http.ResponseWriter, r *http.Request, snapshot store.Snapshot, err error, message string) {
	inHttp.WriteResultResponse(r.Context(), w, err, message, map[string]interface{}{"cart": snapshot})
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	snapshot := t.service.Snapshot(c, middleware.SessionIDFromContext(c))
	writeCart(w, r.WithContext(c), snapshot, nil, "found cart")
}

func (t CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController AddItem").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddItem{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(constants.KEY_PROCESS, "validating request body").Logger()
	logger.Info().Msg("validating request body")
	if err := validate.Struct(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("validated request body")

	c = logger.WithContext(c)
	snapshot, err := t.service.AddItem(c, middleware.SessionIDFromContext(c), reqBody.ID)
	writeCart(w, r.WithContext(c), snapshot, err, "added item")
}

func (t CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateQuantity")
	defer span.End()

	id := mux.Vars(r)["cartItemId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartController UpdateQuantity").
		Str(constants.KEY_CART_ITEM_ID, id).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateQuantity{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", inErrors.NewValidationError(map[string]string{"body": err.Error()}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	if err := validate.Struct(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decoded request body")

	c = logger.WithContext(c)
	snapshot := t.service.UpdateQuantity(c, middleware.SessionIDFromContext(c), id, *reqBody.Quantity)
	writeCart(w, r.WithContext(c), snapshot, nil, "updated quantity")
}

func (t CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveItem")
	defer span.End()

	snapshot := t.service.RemoveItem(c, middleware.SessionIDFromContext(c), mux.Vars(r)["cartItemId"])
	writeCart(w, r.WithContext(c), snapshot, nil, "removed item")
}

func (t CartController) Visibility(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Visibility")
	defer span.End()

	action := mux.Vars(r)["action"]
	snapshot, err := t.service.Visibility(c, middleware.SessionIDFromContext(c), action)
	writeCart(w, r.WithContext(c), snapshot, err, action)
}

func (t CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ClearCart")
	defer span.End()

	snapshot := t.service.Clear(c, middleware.SessionIDFromContext(c))
	writeCart(w, r.WithContext(c), snapshot, nil, "cleared cart")
}
