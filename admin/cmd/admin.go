package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/Alturino/nebula/admin/internal/board"
	"github.com/Alturino/nebula/admin/internal/controller"
	"github.com/Alturino/nebula/admin/internal/service"
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
	"github.com/Alturino/nebula/internal/workflow"
	orderResponse "github.com/Alturino/nebula/order/pkg/response"
	reservationResponse "github.com/Alturino/nebula/reservation/pkg/response"
	userCmd "github.com/Alturino/nebula/user/cmd"
)

func RunAdminService(c context.Context) {
	c, span := otel.Tracer.Start(c, "RunAdminService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_ADMIN_SERVICE).
		Str(constants.KEY_TAG, "main RunAdminService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.Get(c, constants.APP_ADMIN_SERVICE)
	logger.Info().Msg("initialized config")

	logger = log.Get(fmt.Sprintf("/var/log/%s.log", constants.APP_ADMIN_SERVICE), cfg.Application).
		With().
		Str(constants.KEY_APP_NAME, constants.APP_ADMIN_SERVICE).
		Str(constants.KEY_TAG, "main RunAdminService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_ADMIN_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_ADMIN_SERVICE, cfg.Otel)
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
	events := persistence.NewEventStore(queries, publisher)
	logger.Info().Msg("initialized stores")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing user service").Logger()
	logger.Info().Msg("initializing user service")
	c = logger.WithContext(c)
	if err = userCmd.AttachUserService(c, router, queries, cfg.Application); err != nil {
		err = fmt.Errorf("failed initializing user service with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("initialized user service")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing boards").Logger()
	logger.Info().Msg("initializing boards")
	orderBoard := board.New[orderResponse.Order, workflow.OrderStatus](
		workflow.Orders,
		notify.ENTITY_ORDERS,
		orders.ListOrders,
		orders.UpdateOrderStatus,
	)
	reservationBoard := board.New[reservationResponse.Reservation, workflow.ReservationStatus](
		workflow.Reservations,
		notify.ENTITY_RESERVATIONS,
		reservations.ListReservations,
		reservations.UpdateReservationStatus,
	)
	subscriber := notify.NewSubscriber(cache)
	go watch(c, orderBoard, subscriber)
	go watch(c, reservationBoard, subscriber)
	logger.Info().Msg("initialized boards")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing admin controller").Logger()
	logger.Info().Msg("initializing admin controller")
	adminService := service.NewAdminService(orderBoard, reservationBoard, menuItems, events)
	controller.AttachAdminController(router, &adminService, cfg.Application.SecretKey)
	logger.Info().Msg("initialized admin controller")

	inHttp.Serve(c, router, cfg.Application)
}

type runner interface {
	Run(c context.Context, subscriber board.Subscriber) error
}

func watch(c context.Context, b runner, subscriber board.Subscriber) {
	if err := b.Run(c, subscriber); err != nil {
		logger := zerolog.Ctx(c)
		logger.Error().Err(err).Msg("board stopped watching changes")
	}
}
