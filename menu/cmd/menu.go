package cmd

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/menu/internal/controller"
	"github.com/Alturino/nebula/menu/pkg/catalog"
)

// AttachMenuService loads the catalog once and mounts /menu on router.
func AttachMenuService(c context.Context, router *mux.Router, source catalog.Source) (*catalog.Catalog, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main AttachMenuService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "loading catalog").Logger()
	logger.Info().Msg("loading catalog")
	c = logger.WithContext(c)
	menu, err := catalog.Load(c, source)
	if err != nil {
		err = fmt.Errorf("failed loading catalog with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("loaded catalog")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing menu controller").Logger()
	logger.Info().Msg("initializing menu controller")
	controller.AttachMenuController(router, menu)
	logger.Info().Msg("initialized menu controller")

	return menu, nil
}
