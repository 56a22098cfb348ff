package cmd

import (
	"context"
	"fmt"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	"github.com/Alturino/nebula/user/internal/controller"
	"github.com/Alturino/nebula/user/internal/service"
)

// AttachUserService bootstraps the configured admin account before exposing
// sign-in.
func AttachUserService(c context.Context, router *mux.Router, users service.Users, cfg config.Application) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "main AttachUserService").
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing user service").Logger()
	logger.Info().Msg("initializing user service")
	userService := service.NewUserService(users, cfg)
	logger.Info().Msg("initialized user service")

	logger = logger.With().Str(constants.KEY_PROCESS, "ensuring admin account").Logger()
	logger.Info().Msg("ensuring admin account")
	c = logger.WithContext(c)
	if err := userService.EnsureAdmin(c); err != nil {
		err = fmt.Errorf("failed ensuring admin account with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("ensured admin account")

	logger = logger.With().Str(constants.KEY_PROCESS, "initializing user controller").Logger()
	logger.Info().Msg("initializing user controller")
	controller.AttachUserController(router, userService)
	logger.Info().Msg("initialized user controller")

	return nil
}
