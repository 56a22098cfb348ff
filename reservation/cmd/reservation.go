package cmd

import (
	"context"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/internal/session"
	"github.com/Alturino/nebula/reservation/internal/controller"
	"github.com/Alturino/nebula/reservation/internal/service"
)

func AttachReservationService(
	c context.Context,
	router *mux.Router,
	verifier service.Verifier,
	reservations service.ReservationCreator,
	cfg *config.Config,
) {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main AttachReservationService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing reservation service").Logger()
	logger.Info().Msg("initializing reservation service")
	drafts := session.NewRegistry(service.NewDraft, cfg.Application.SessionTTL)
	go drafts.Run(c, session.SweepInterval(cfg.Application.SessionTTL))
	reservationService := service.NewReservationService(drafts, verifier, reservations)
	logger.Info().Msg("initialized reservation service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing reservation controller").Logger()
	logger.Info().Msg("initializing reservation controller")
	controller.AttachReservationController(router, &reservationService)
	logger.Info().Msg("initialized reservation controller")
}
