package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/admin/internal/board"
	"github.com/Alturino/nebula/admin/internal/service"
	eventRequest "github.com/Alturino/nebula/event/pkg/request"
	eventResponse "github.com/Alturino/nebula/event/pkg/response"
	"github.com/Alturino/nebula/internal/auth"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/persistence"
	"github.com/Alturino/nebula/internal/workflow"
	menuRequest "github.com/Alturino/nebula/menu/pkg/request"
	menuResponse "github.com/Alturino/nebula/menu/pkg/response"
	orderResponse "github.com/Alturino/nebula/order/pkg/response"
	reservationResponse "github.com/Alturino/nebula/reservation/pkg/response"
)

const secret = "test-secret"

type memoryOrders struct {
	orders []orderResponse.Order
}

func (m *memoryOrders) list(context.Context) ([]orderResponse.Order, error) {
	return append([]orderResponse.Order{}, m.orders...), nil
}

func (m *memoryOrders) update(_ context.Context, id uuid.UUID, to workflow.OrderStatus) (persistence.StatusChange[workflow.OrderStatus], error) {
	for i, o := range m.orders {
		if o.ID != id {
			continue
		}
		if err := workflow.Orders.Check(o.Status, to); err != nil {
			return persistence.StatusChange[workflow.OrderStatus]{}, err
		}
		m.orders[i].Status = to
		return persistence.StatusChange[workflow.OrderStatus]{ID: id, From: o.Status, To: to}, nil
	}
	return persistence.StatusChange[workflow.OrderStatus]{}, inErrors.ErrNotFound
}

type nopMenu struct{}

func (nopMenu) ListMenuItems(context.Context) ([]menuResponse.MenuItem, error) {
	return []menuResponse.MenuItem{}, nil
}

func (nopMenu) CreateMenuItem(_ context.Context, param menuRequest.MenuItem) (menuResponse.MenuItem, error) {
	return menuResponse.MenuItem{ID: "4", Name: param.Name, Price: param.Price, Category: param.Category}, nil
}

func (nopMenu) UpdateMenuItem(_ context.Context, id string, param menuRequest.MenuItem) (menuResponse.MenuItem, error) {
	return menuResponse.MenuItem{ID: id, Name: param.Name}, nil
}

func (nopMenu) DeleteMenuItem(_ context.Context, id string) error {
	if id != "1" {
		return inErrors.ErrNotFound
	}
	return nil
}

type nopEvents struct{}

func (nopEvents) ListEvents(context.Context) ([]eventResponse.Event, error) {
	return []eventResponse.Event{}, nil
}

func (nopEvents) CreateEvent(_ context.Context, param eventRequest.Event) (eventResponse.Event, error) {
	return eventResponse.Event{ID: uuid.New(), Title: param.Title}, nil
}

func (nopEvents) DeleteEvent(context.Context, uuid.UUID) error { return nil }

func newRouter(t *testing.T) (*mux.Router, *memoryOrders, string) {
	orders := &memoryOrders{orders: []orderResponse.Order{
		{ID: uuid.New(), Status: workflow.OrderPending},
		{ID: uuid.New(), Status: workflow.OrderReady},
	}}
	reservations := board.New[reservationResponse.Reservation, workflow.ReservationStatus](
		workflow.Reservations,
		notify.ENTITY_RESERVATIONS,
		func(context.Context) ([]reservationResponse.Reservation, error) {
			return []reservationResponse.Reservation{}, nil
		},
		func(context.Context, uuid.UUID, workflow.ReservationStatus) (persistence.StatusChange[workflow.ReservationStatus], error) {
			return persistence.StatusChange[workflow.ReservationStatus]{}, inErrors.ErrNotFound
		},
	)
	orderBoard := board.New[orderResponse.Order, workflow.OrderStatus](workflow.Orders, notify.ENTITY_ORDERS, orders.list, orders.update)
	require.NoError(t, orderBoard.Reload(context.Background()))
	require.NoError(t, reservations.Reload(context.Background()))

	svc := service.NewAdminService(orderBoard, reservations, nopMenu{}, nopEvents{})
	router := mux.NewRouter()
	AttachAdminController(router, &svc, secret)

	token, err := auth.SignToken(context.Background(), uuid.New(), secret, time.Now())
	require.NoError(t, err)
	return router, orders, token
}

func do(t *testing.T, router *mux.Router, method, path, token, body string) (int, map[string]interface{}) {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	decoded := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&decoded))
	return w.Code, decoded
}

func TestAdminRequiresToken(t *testing.T) {
	router, _, _ := newRouter(t)

	code, _ := do(t, router, http.MethodGet, "/admin/orders", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, router, http.MethodGet, "/admin/orders", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAdminOrders(t *testing.T) {
	router, orders, token := newRouter(t)
	pending := orders.orders[0].ID.String()
	ready := orders.orders[1].ID.String()

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{name: "list all", method: http.MethodGet, path: "/admin/orders", expected: http.StatusOK},
		{name: "list pending", method: http.MethodGet, path: "/admin/orders?status=pending", expected: http.StatusOK},
		{name: "list unknown status", method: http.MethodGet, path: "/admin/orders?status=seated", expected: http.StatusBadRequest},
		{name: "transitions", method: http.MethodGet, path: "/admin/orders/" + pending + "/transitions", expected: http.StatusOK},
		{name: "transitions bad id", method: http.MethodGet, path: "/admin/orders/abc/transitions", expected: http.StatusBadRequest},
		{name: "transitions unknown id", method: http.MethodGet, path: "/admin/orders/" + uuid.NewString() + "/transitions", expected: http.StatusNotFound},
		{name: "skip to delivered", method: http.MethodPatch, path: "/admin/orders/" + pending + "/status", body: `{"status":"delivered"}`, expected: http.StatusConflict},
		{name: "prepare", method: http.MethodPatch, path: "/admin/orders/" + pending + "/status", body: `{"status":"preparing"}`, expected: http.StatusOK},
		{name: "deliver", method: http.MethodPatch, path: "/admin/orders/" + ready + "/status", body: `{"status":"delivered"}`, expected: http.StatusOK},
		{name: "missing status", method: http.MethodPatch, path: "/admin/orders/" + ready + "/status", body: `{}`, expected: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPatch, path: "/admin/orders/" + ready + "/status", body: `{`, expected: http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, body := do(t, router, test.method, test.path, token, test.body)
			assert.Equal(t, test.expected, code, "%v", body)
		})
	}

	assert.Equal(t, workflow.OrderPreparing, orders.orders[0].Status)
	assert.Equal(t, workflow.OrderDelivered, orders.orders[1].Status)
}

func TestAdminMenuItemsAndEvents(t *testing.T) {
	router, _, token := newRouter(t)

	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		expected int
	}{
		{name: "list menu items", method: http.MethodGet, path: "/admin/menu-items", expected: http.StatusOK},
		{name: "insert menu item", method: http.MethodPost, path: "/admin/menu-items", body: `{"name":"Tiramisu","price":"8.00","category":"desserts"}`, expected: http.StatusOK},
		{name: "insert free menu item", method: http.MethodPost, path: "/admin/menu-items", body: `{"name":"Water","price":"0","category":"drinks"}`, expected: http.StatusBadRequest},
		{name: "insert without category", method: http.MethodPost, path: "/admin/menu-items", body: `{"name":"Tiramisu","price":"8.00"}`, expected: http.StatusBadRequest},
		{name: "update menu item", method: http.MethodPut, path: "/admin/menu-items/1", body: `{"name":"Wagyu","price":"45.00","category":"mains"}`, expected: http.StatusOK},
		{name: "remove menu item", method: http.MethodDelete, path: "/admin/menu-items/1", expected: http.StatusOK},
		{name: "remove unknown menu item", method: http.MethodDelete, path: "/admin/menu-items/99", expected: http.StatusNotFound},
		{name: "list events", method: http.MethodGet, path: "/admin/events", expected: http.StatusOK},
		{name: "insert event", method: http.MethodPost, path: "/admin/events", body: `{"title":"Barolo night","date":"2030-05-01","time":"19:00"}`, expected: http.StatusOK},
		{name: "insert event without date", method: http.MethodPost, path: "/admin/events", body: `{"title":"Barolo night","time":"19:00"}`, expected: http.StatusBadRequest},
		{name: "remove event", method: http.MethodDelete, path: "/admin/events/" + uuid.NewString(), expected: http.StatusOK},
		{name: "remove event bad id", method: http.MethodDelete, path: "/admin/events/abc", expected: http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			code, body := do(t, router, test.method, test.path, token, test.body)
			assert.Equal(t, test.expected, code, "%v", body)
		})
	}
}
