package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/otel/metric"
	"github.com/Alturino/nebula/menu/pkg/response"
)

type Carts interface {
	Get(sessionID string) *store.Store
}

type Catalog interface {
	Find(id string) (response.MenuItem, error)
}

type CartService struct {
	carts   Carts
	catalog Catalog
}

func NewCartService(carts Carts, catalog Catalog) CartService {
	return CartService{carts: carts, catalog: catalog}
}

func mutated(c context.Context, op string) {
	metric.Add(c, metric.CartMutations, 1, attribute.String("op", op))
}

func (svc CartService) Snapshot(c context.Context, sessionID string) store.Snapshot {
	return svc.carts.Get(sessionID).Snapshot()
}

// AddItem adds one of the catalog item id to the session cart.
func (svc CartService) AddItem(c context.Context, sessionID string, id string) (store.Snapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService AddItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService AddItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding menu item").Logger()
	logger.Trace().Msg("finding menu item")
	item, err := svc.catalog.Find(id)
	if err != nil {
		err = fmt.Errorf("failed finding menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return svc.carts.Get(sessionID).Snapshot(), err
	}
	logger.Trace().Msg("found menu item")

	logger = logger.With().Str(constants.KEY_PROCESS, "adding item to cart").Logger()
	logger.Info().Msg("adding item to cart")
	snapshot := svc.carts.Get(sessionID).AddItem(store.Item{
		ID:    item.ID,
		Name:  item.Name,
		Image: item.Image,
		Price: item.Price,
	})
	mutated(c, "add")
	logger.Info().Int("count", snapshot.Count).Str("total", snapshot.Total.String()).Msg("added item to cart")

	return snapshot, nil
}

func (svc CartService) RemoveItem(c context.Context, sessionID string, id string) store.Snapshot {
	c, span := otel.Tracer.Start(c, "CartService RemoveItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService RemoveItem").
		Str(constants.KEY_CART_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "removing item from cart").
		Logger()

	logger.Info().Msg("removing item from cart")
	snapshot := svc.carts.Get(sessionID).RemoveItem(id)
	mutated(c, "remove")
	logger.Info().Msg("removed item from cart")

	return snapshot
}

func (svc CartService) UpdateQuantity(c context.Context, sessionID string, id string, quantity int) store.Snapshot {
	c, span := otel.Tracer.Start(c, "CartService UpdateQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService UpdateQuantity").
		Str(constants.KEY_CART_ITEM_ID, id).
		Int("quantity", quantity).
		Str(constants.KEY_PROCESS, "updating quantity").
		Logger()

	logger.Info().Msg("updating quantity")
	snapshot := svc.carts.Get(sessionID).UpdateQuantity(id, quantity)
	mutated(c, "update")
	logger.Info().Msg("updated quantity")

	return snapshot
}

// Visibility applies one of toggle, open or close.
func (svc CartService) Visibility(c context.Context, sessionID string, action string) (store.Snapshot, error) {
	c, span := otel.Tracer.Start(c, "CartService Visibility")
	defer span.End()

	cart := svc.carts.Get(sessionID)
	var snapshot store.Snapshot
	switch action {
	case "toggle":
		snapshot = cart.Toggle()
	case "open":
		snapshot = cart.Open()
	case "close":
		snapshot = cart.Close()
	default:
		err := fmt.Errorf("failed changing cart visibility action=%s", action)
		otel.RecordError(err, span)
		return cart.Snapshot(), err
	}
	zerolog.Ctx(c).Debug().Str(constants.KEY_TAG, "CartService Visibility").Bool("is_open", snapshot.IsOpen).Msg(action)
	return snapshot, nil
}

func (svc CartService) Clear(c context.Context, sessionID string) store.Snapshot {
	c, span := otel.Tracer.Start(c, "CartService Clear")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "CartService Clear").
		Str(constants.KEY_PROCESS, "clearing cart").
		Logger()

	logger.Info().Msg("clearing cart")
	snapshot := svc.carts.Get(sessionID).Clear()
	mutated(c, "clear")
	logger.Info().Msg("cleared cart")

	return snapshot
}
