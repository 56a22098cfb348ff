package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/cart/internal/controller"
	"github.com/Alturino/nebula/cart/internal/service"
	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/session"
)

func AttachCartService(
	c context.Context,
	router *mux.Router,
	carts *session.Registry[*store.Store],
	catalog service.Catalog,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main AttachCartService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart service").Logger()
	logger.Info().Msg("initializing cart service")
	cartService := service.NewCartService(carts, catalog)
	logger.Info().Msg("initialized cart service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cart controller").Logger()
	logger.Info().Msg("initializing cart controller")
	controller.AttachCartController(router, &cartService)
	logger.Info().Msg("initialized cart controller")
}
