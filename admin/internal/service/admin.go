package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/admin/internal/board"
	eventRequest "github.com/Alturino/nebula/event/pkg/request"
	eventResponse "github.com/Alturino/nebula/event/pkg/response"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/persistence"
	"github.com/Alturino/nebula/internal/validate"
	"github.com/Alturino/nebula/internal/workflow"
	menuRequest "github.com/Alturino/nebula/menu/pkg/request"
	menuResponse "github.com/Alturino/nebula/menu/pkg/response"
	orderResponse "github.com/Alturino/nebula/order/pkg/response"
	reservationResponse "github.com/Alturino/nebula/reservation/pkg/response"
)

type (
	OrderBoard       = board.Board[orderResponse.Order, workflow.OrderStatus]
	ReservationBoard = board.Board[reservationResponse.Reservation, workflow.ReservationStatus]
)

type MenuItems interface {
	ListMenuItems(c context.Context) ([]menuResponse.MenuItem, error)
	CreateMenuItem(c context.Context, param menuRequest.MenuItem) (menuResponse.MenuItem, error)
	UpdateMenuItem(c context.Context, id string, param menuRequest.MenuItem) (menuResponse.MenuItem, error)
	DeleteMenuItem(c context.Context, id string) error
}

type Events interface {
	ListEvents(c context.Context) ([]eventResponse.Event, error)
	CreateEvent(c context.Context, param eventRequest.Event) (eventResponse.Event, error)
	DeleteEvent(c context.Context, id uuid.UUID) error
}

type AdminService struct {
	orders       *OrderBoard
	reservations *ReservationBoard
	menuItems    MenuItems
	events       Events
}

func NewAdminService(orders *OrderBoard, reservations *ReservationBoard, menuItems MenuItems, events Events) AdminService {
	return AdminService{orders: orders, reservations: reservations, menuItems: menuItems, events: events}
}

func (svc AdminService) Orders() *OrderBoard {
	return svc.orders
}

func (svc AdminService) Reservations() *ReservationBoard {
	return svc.reservations
}

func (svc AdminService) UpdateOrderStatus(c context.Context, id uuid.UUID, status string) (persistence.StatusChange[workflow.OrderStatus], error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateOrderStatus")
	defer span.End()

	return svc.orders.ApplyTransition(c, id, workflow.OrderStatus(status))
}

func (svc AdminService) UpdateReservationStatus(c context.Context, id uuid.UUID, status string) (persistence.StatusChange[workflow.ReservationStatus], error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateReservationStatus")
	defer span.End()

	return svc.reservations.ApplyTransition(c, id, workflow.ReservationStatus(status))
}

func (svc AdminService) ListMenuItems(c context.Context) ([]menuResponse.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "AdminService ListMenuItems")
	defer span.End()

	return svc.menuItems.ListMenuItems(c)
}

func (svc AdminService) CreateMenuItem(c context.Context, param menuRequest.MenuItem) (menuResponse.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "AdminService CreateMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminService CreateMenuItem").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating menu item").Logger()
	logger.Trace().Msg("validating menu item")
	if err := validate.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return menuResponse.MenuItem{}, err
	}
	logger.Trace().Msg("validated menu item")

	logger = logger.With().Str(constants.KEY_PROCESS, "creating menu item").Logger()
	c = logger.WithContext(c)
	item, err := svc.menuItems.CreateMenuItem(c, param)
	if err != nil {
		err = fmt.Errorf("failed creating menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return menuResponse.MenuItem{}, err
	}
	return item, nil
}

func (svc AdminService) UpdateMenuItem(c context.Context, id string, param menuRequest.MenuItem) (menuResponse.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "AdminService UpdateMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminService UpdateMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating menu item").Logger()
	logger.Trace().Msg("validating menu item")
	if err := validate.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return menuResponse.MenuItem{}, err
	}
	logger.Trace().Msg("validated menu item")

	logger = logger.With().Str(constants.KEY_PROCESS, "updating menu item").Logger()
	c = logger.WithContext(c)
	item, err := svc.menuItems.UpdateMenuItem(c, id, param)
	if err != nil {
		err = fmt.Errorf("failed updating menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return menuResponse.MenuItem{}, err
	}
	return item, nil
}

func (svc AdminService) DeleteMenuItem(c context.Context, id string) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteMenuItem")
	defer span.End()

	return svc.menuItems.DeleteMenuItem(c, id)
}

func (svc AdminService) ListEvents(c context.Context) ([]eventResponse.Event, error) {
	c, span := otel.Tracer.Start(c, "AdminService ListEvents")
	defer span.End()

	return svc.events.ListEvents(c)
}

func (svc AdminService) CreateEvent(c context.Context, param eventRequest.Event) (eventResponse.Event, error) {
	c, span := otel.Tracer.Start(c, "AdminService CreateEvent")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "AdminService CreateEvent").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating event").Logger()
	logger.Trace().Msg("validating event")
	if err := validate.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return eventResponse.Event{}, err
	}
	logger.Trace().Msg("validated event")

	logger = logger.With().Str(constants.KEY_PROCESS, "creating event").Logger()
	c = logger.WithContext(c)
	event, err := svc.events.CreateEvent(c, param)
	if err != nil {
		err = fmt.Errorf("failed creating event with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return eventResponse.Event{}, err
	}
	return event, nil
}

func (svc AdminService) DeleteEvent(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "AdminService DeleteEvent")
	defer span.End()

	return svc.events.DeleteEvent(c, id)
}
