package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	cartCmd "github.com/Alturino/nebula/cart/cmd"
	"github.com/Alturino/nebula/cart/pkg/store"
	checkoutCmd "github.com/Alturino/nebula/checkout/cmd"
	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/infra"
	"github.com/Alturino/nebula/internal/log"
	"github.com/Alturino/nebula/internal/middleware"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/persistence"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/internal/session"
	menuCmd "github.com/Alturino/nebula/menu/cmd"
	reservationCmd "github.com/Alturino/nebula/reservation/cmd"
	"github.com/Alturino/nebula/verification/pkg/mailer"
	"github.com/Alturino/nebula/verification/pkg/verifier"
)

func RunShopService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunShopService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_SHOP_SERVICE).
		Str(constants.KEY_TAG, "main RunShopService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.Get(c, constants.APP_SHOP_SERVICE)
	logger.Info().Msg("initialized config")

	logger = log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_SHOP_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_SHOP_SERVICE).
		Str(constants.KEY_TAG, "main RunShopService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_SHOP_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
		middleware.Session(cfg.Application.SessionHeader),
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_SHOP_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		if err := otel.ShutdownOtel(logger.WithContext(context.Background()), otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing database").Logger()
	logger.Info().Msg("initializing database")
	c = logger.WithContext(c)
	db := infra.NewDatabaseClient(c, cfg.Database)
	defer func() {
		logger.Info().Msg("shutting down database")
		db.Close()
		logger.Info().Msg("shutdown database")
	}()
	logger.Info().Msg("initialized database")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing cache").Logger()
	logger.Info().Msg("initializing cache")
	c = logger.WithContext(c)
	cache := infra.NewCacheClient(c, cfg.Cache)
	defer func() {
		logger.Info().Msg("shutting down cache")
		if err := cache.Close(); err != nil {
			err = fmt.Errorf("failed shutting down cache with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown cache")
	}()
	logger.Info().Msg("initialized cache")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing stores").Logger()
	logger.Info().Msg("initializing stores")
	queries := repository.New(db)
	publisher := notify.NewPublisher(cache)
	orders := persistence.NewOrderStore(db, queries, publisher)
	reservations := persistence.NewReservationStore(db, queries, publisher)
	menuItems := persistence.NewMenuStore(queries, publisher)
	logger.Info().Msg("initialized stores")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing verifier").Logger()
	logger.Info().Msg("initializing verifier")
	mail, err := mailer.New(cfg.Mail)
	if err != nil {
		err = fmt.Errorf("failed initializing mailer with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	codes := verifier.NewVerifier(verifier.NewRedisStore(cache), mail, cfg.Verification)
	logger.Info().Str("mode", cfg.Mail.Mode).Msg("initialized verifier")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing menu service").Logger()
	logger.Info().Msg("initializing menu service")
	c = logger.WithContext(c)
	menu, err := menuCmd.AttachMenuService(c, router, menuItems)
	if err != nil {
		err = fmt.Errorf("failed initializing menu service with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized menu service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing carts").Logger()
	logger.Info().Msg("initializing carts")
	carts := session.NewRegistry(store.New, cfg.Application.SessionTTL)
	go carts.Run(c, session.SweepInterval(cfg.Application.SessionTTL))
	cartCmd.AttachCartService(c, router, carts, menu)
	logger.Info().Msg("initialized carts")

	checkoutCmd.AttachCheckoutService(c, router, carts, codes, orders, cfg)
	reservationCmd.AttachReservationService(c, router, codes, reservations, cfg)

	inHttp.Serve(c, router, cfg.Application)
}
