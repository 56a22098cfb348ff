package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/menu/pkg/request"
	"github.com/Alturino/nebula/menu/pkg/response"
)

type MenuStore struct {
	queries  *repository.Queries
	notifier Notifier
}

func NewMenuStore(queries *repository.Queries, notifier Notifier) *MenuStore {
	return &MenuStore{queries: queries, notifier: notifier}
}

func nutrition(n *request.Nutrition) (calories, protein, carbs, fat pgtype.Int4) {
	if n == nil {
		return
	}
	return repository.Int4(&n.Calories), repository.Int4(&n.Protein), repository.Int4(&n.Carbs), repository.Int4(&n.Fat)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (s *MenuStore) ListMenuItems(c context.Context) ([]response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "MenuStore ListMenuItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuStore ListMenuItems").
		Str(constants.KEY_PROCESS, "listing menu items").
		Logger()

	logger.Trace().Msg("listing menu items")
	rows, err := s.queries.ListMenuItems(c)
	if err != nil {
		err = wrapError("listing menu items", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	items := make([]response.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Response())
	}
	logger.Trace().Int("count", len(items)).Msg("listed menu items")

	return items, nil
}

func (s *MenuStore) CreateMenuItem(c context.Context, param request.MenuItem) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "MenuStore CreateMenuItem")
	defer span.End()

	id := uuid.NewString()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuStore CreateMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "inserting menu item").
		Logger()

	calories, protein, carbs, fat := nutrition(param.Nutrition)
	logger.Info().Msg("inserting menu item")
	inserted, err := s.queries.InsertMenuItem(c, repository.InsertMenuItemParams{
		ID:          id,
		Name:        param.Name,
		Description: param.Description,
		Price:       repository.Numeric(param.Price),
		Image:       param.Image,
		Category:    param.Category,
		Tags:        orEmpty(param.Tags),
		Ingredients: orEmpty(param.Ingredients),
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
	})
	if err != nil {
		err = wrapError("inserting menu item", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	publish(c, s.notifier, notify.ENTITY_MENU_ITEMS, notify.OpInsert, id)
	logger.Info().Msg("inserted menu item")

	return inserted.Response(), nil
}

func (s *MenuStore) UpdateMenuItem(c context.Context, id string, param request.MenuItem) (response.MenuItem, error) {
	c, span := otel.Tracer.Start(c, "MenuStore UpdateMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuStore UpdateMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "updating menu item").
		Logger()

	calories, protein, carbs, fat := nutrition(param.Nutrition)
	logger.Info().Msg("updating menu item")
	updated, err := s.queries.UpdateMenuItem(c, repository.UpdateMenuItemParams{
		ID:          id,
		Name:        param.Name,
		Description: param.Description,
		Price:       repository.Numeric(param.Price),
		Image:       param.Image,
		Category:    param.Category,
		Tags:        orEmpty(param.Tags),
		Ingredients: orEmpty(param.Ingredients),
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
	})
	if err != nil {
		err = wrapError("updating menu item", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.MenuItem{}, err
	}
	publish(c, s.notifier, notify.ENTITY_MENU_ITEMS, notify.OpUpdate, id)
	logger.Info().Msg("updated menu item")

	return updated.Response(), nil
}

func (s *MenuStore) DeleteMenuItem(c context.Context, id string) error {
	c, span := otel.Tracer.Start(c, "MenuStore DeleteMenuItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuStore DeleteMenuItem").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "deleting menu item").
		Logger()

	logger.Info().Msg("deleting menu item")
	affected, err := s.queries.DeleteMenuItem(c, id)
	if err == nil && affected == 0 {
		err = inErrors.ErrNotFound
	}
	if err != nil {
		err = wrapError("deleting menu item", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	publish(c, s.notifier, notify.ENTITY_MENU_ITEMS, notify.OpDelete, id)
	logger.Info().Msg("deleted menu item")

	return nil
}
