package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/cart/pkg/store"
	"github.com/Alturino/nebula/checkout/internal/controller"
	"github.com/Alturino/nebula/checkout/internal/flow"
	"github.com/Alturino/nebula/checkout/internal/service"
	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/session"
)

// AttachCheckoutService mounts /checkout on router. Checkout state lives per
// session next to the shopper's cart and is swept with the same ttl.
func AttachCheckoutService(
	c context.Context,
	router *mux.Router,
	carts *session.Registry[*store.Store],
	verifier service.Verifier,
	orders service.OrderCreator,
	cfg *config.Config,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main AttachCheckoutService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing checkout service").Logger()
	logger.Info().Msg("initializing checkout service")
	flows := session.NewRegistry(func() *flow.Flow { return flow.New(cfg.Payment) }, cfg.Application.SessionTTL)
	go flows.Run(c, session.SweepInterval(cfg.Application.SessionTTL))
	checkoutService := service.NewCheckoutService(carts, flows, verifier, orders)
	logger.Info().Msg("initialized checkout service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing checkout controller").Logger()
	logger.Info().Msg("initializing checkout controller")
	controller.AttachCheckoutController(router, &checkoutService)
	logger.Info().Msg("initialized checkout controller")
}
