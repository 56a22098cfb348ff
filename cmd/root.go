package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	adminCmd "github.com/Alturino/nebula/admin/cmd"
	"github.com/Alturino/nebula/internal/constants"
	shopCmd "github.com/Alturino/nebula/shop/cmd"
)

func Start() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
		With().
		Timestamp().
		Str(constants.KEY_APP_NAME, constants.APP_NEBULA).
		Str(constants.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   constants.APP_NEBULA,
		Short: "Restaurant shop and admin services",
	}
	commands := []*cobra.Command{
		{
			Use:   "shop",
			Short: "Run customer facing shop service",
			Run: func(cmd *cobra.Command, args []string) {
				shopCmd.RunShopService(cmd.Context())
			},
		},
		{
			Use:   "admin",
			Short: "Run admin service",
			Run: func(cmd *cobra.Command, args []string) {
				adminCmd.RunAdminService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
