// Package catalog is the read-only menu loaded once at shop start.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/menu/pkg/response"
)

const AllCategories = "all"

type Source interface {
	ListMenuItems(c context.Context) ([]response.MenuItem, error)
}

type Catalog struct {
	items      []response.MenuItem
	byId       map[string]int
	categories []string
}

func New(items []response.MenuItem) *Catalog {
	catalog := &Catalog{
		items:      slices.Clone(items),
		byId:       make(map[string]int, len(items)),
		categories: []string{},
	}
	for i, item := range catalog.items {
		catalog.byId[item.ID] = i
		if !slices.Contains(catalog.categories, item.Category) {
			catalog.categories = append(catalog.categories, item.Category)
		}
	}
	return catalog
}

func Load(c context.Context, source Source) (*Catalog, error) {
	c, span := otel.Tracer.Start(c, "catalog Load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "catalog Load").
		Str(constants.KEY_PROCESS, "loading menu items").
		Logger()

	logger.Info().Msg("loading menu items")
	items, err := source.ListMenuItems(c)
	if err != nil {
		err = fmt.Errorf("failed loading menu items with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(items)).Msg("loaded menu items")

	return New(items), nil
}

func (c *Catalog) List() []response.MenuItem {
	return slices.Clone(c.items)
}

// ByCategory returns the items of category, or every item for "" and "all".
func (c *Catalog) ByCategory(category string) []response.MenuItem {
	category = strings.TrimSpace(strings.ToLower(category))
	if category == "" || category == AllCategories {
		return c.List()
	}
	filtered := []response.MenuItem{}
	for _, item := range c.items {
		if strings.ToLower(item.Category) == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (c *Catalog) Categories() []string {
	return slices.Clone(c.categories)
}

func (c *Catalog) Find(id string) (response.MenuItem, error) {
	i, ok := c.byId[id]
	if !ok {
		return response.MenuItem{}, fmt.Errorf("failed finding menu item id=%s with error=%w", id, inErrors.ErrNotFound)
	}
	return c.items[i], nil
}
