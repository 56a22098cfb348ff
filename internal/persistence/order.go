package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/otel/metric"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/internal/workflow"
	"github.com/Alturino/nebula/order/pkg/request"
	"github.com/Alturino/nebula/order/pkg/response"
)

type OrderStore struct {
	pool     *pgxpool.Pool
	queries  *repository.Queries
	notifier Notifier
}

func NewOrderStore(pool *pgxpool.Pool, queries *repository.Queries, notifier Notifier) *OrderStore {
	return &OrderStore{pool: pool, queries: queries, notifier: notifier}
}

func (s *OrderStore) CreateOrder(c context.Context, param request.CreateOrder) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderStore CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderStore CreateOrder").
		Str(constants.KEY_ORDER_ID, param.ID.String()).
		Logger()
	c = logger.WithContext(c)

	order := response.Order{}
	err := inTx(c, s.pool, s.queries, func(q *repository.Queries) error {
		logger := logger.With().Str(constants.KEY_PROCESS, "inserting order").Logger()
		logger.Info().Msg("inserting order")
		inserted, err := q.InsertOrder(c, repository.InsertOrderParams{
			ID:                  param.ID,
			CustomerName:        param.CustomerName,
			Email:               param.Email,
			Phone:               param.Phone,
			DeliveryAddress:     repository.Text(param.DeliveryAddress),
			City:                repository.Text(param.City),
			PostalCode:          repository.Text(param.PostalCode),
			DeliveryTime:        repository.Text(param.DeliveryTime),
			SpecialInstructions: repository.Text(param.SpecialInstructions),
			PaymentMethod:       repository.PaymentMethod(param.PaymentMethod),
			Subtotal:            repository.Numeric(param.Subtotal),
			DeliveryFee:         repository.Numeric(param.DeliveryFee),
			HandlingFee:         repository.Numeric(param.HandlingFee),
			Total:               repository.Numeric(param.Total),
			Status:              repository.OrderStatus(workflow.Orders.Initial()),
		})
		if err != nil {
			return err
		}
		logger.Info().Msg("inserted order")

		logger = logger.With().Str(constants.KEY_PROCESS, "inserting order items").Logger()
		logger.Info().Int("count", len(param.Items)).Msg("inserting order items")
		rows := make([]repository.InsertOrderItemsParams, 0, len(param.Items))
		items := make([]response.OrderItem, 0, len(param.Items))
		for i, item := range param.Items {
			id := uuid.New()
			rows = append(rows, repository.InsertOrderItemsParams{
				ID:         id,
				OrderID:    param.ID,
				MenuItemID: item.MenuItemID,
				Name:       item.Name,
				Price:      repository.Numeric(item.Price),
				Quantity:   item.Quantity,
				Position:   int32(i),
			})
			items = append(items, response.OrderItem{
				ID:         id,
				MenuItemID: item.MenuItemID,
				Name:       item.Name,
				Price:      item.Price,
				Quantity:   item.Quantity,
			})
		}
		if _, err = q.InsertOrderItems(c, rows); err != nil {
			return err
		}
		logger.Info().Msg("inserted order items")

		order = inserted.Response(items)
		return nil
	})
	if err != nil {
		err = wrapError("creating order", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	metric.Add(c, metric.OrdersCreated, 1, attribute.String("payment_method", param.PaymentMethod))
	publish(c, s.notifier, notify.ENTITY_ORDERS, notify.OpInsert, param.ID.String())
	logger.Info().Msg("created order")

	return order, nil
}

// ListOrders returns every order, newest first.
func (s *OrderStore) ListOrders(c context.Context) ([]response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderStore ListOrders")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderStore ListOrders").
		Str(constants.KEY_PROCESS, "listing orders").
		Logger()

	logger.Trace().Msg("listing orders")
	rows, err := s.queries.ListOrders(c)
	if err != nil {
		err = wrapError("listing orders", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	orders := make([]response.Order, 0, len(rows))
	for _, row := range rows {
		order, err := row.Response()
		if err != nil {
			err = wrapError("mapping order", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		orders = append(orders, order)
	}
	logger.Trace().Int("count", len(orders)).Msg("listed orders")

	return orders, nil
}

func (s *OrderStore) FindOrder(c context.Context, id uuid.UUID) (response.Order, error) {
	c, span := otel.Tracer.Start(c, "OrderStore FindOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderStore FindOrder").
		Str(constants.KEY_ORDER_ID, id.String()).
		Logger()

	row, err := s.queries.FindOrderById(c, id)
	if err != nil {
		err = wrapError("finding order", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	order, err := row.Response()
	if err != nil {
		err = wrapError("mapping order", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	return order, nil
}

// UpdateOrderStatus moves the order to `to` when the workflow allows it from
// its current persisted status.
func (s *OrderStore) UpdateOrderStatus(
	c context.Context,
	id uuid.UUID,
	to workflow.OrderStatus,
) (StatusChange[workflow.OrderStatus], error) {
	c, span := otel.Tracer.Start(c, "OrderStore UpdateOrderStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "OrderStore UpdateOrderStatus").
		Str(constants.KEY_ORDER_ID, id.String()).
		Str(constants.KEY_STATUS_TO, to.String()).
		Logger()
	c = logger.WithContext(c)

	change := StatusChange[workflow.OrderStatus]{ID: id, To: to}
	err := inTx(c, s.pool, s.queries, func(q *repository.Queries) error {
		from, err := q.FindOrderStatusForUpdate(c, id)
		if err != nil {
			return err
		}
		change.From = workflow.OrderStatus(from)
		if err = workflow.Orders.Check(change.From, to); err != nil {
			return err
		}
		updated, err := q.UpdateOrderStatus(c, repository.UpdateOrderStatusParams{
			ID:     id,
			Status: repository.OrderStatus(to),
		})
		if err != nil {
			return err
		}
		change.UpdatedAt = updated.UpdatedAt.Time
		return nil
	})
	if err != nil {
		err = wrapError("updating order status", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return StatusChange[workflow.OrderStatus]{}, err
	}
	metric.Add(c, metric.StatusTransitions, 1,
		attribute.String("entity", workflow.Orders.Entity()),
		attribute.String("to", to.String()),
	)
	publish(c, s.notifier, notify.ENTITY_ORDERS, notify.OpUpdate, id.String())
	logger.Info().Str(constants.KEY_STATUS_FROM, change.From.String()).Msg("updated order status")

	return change, nil
}
