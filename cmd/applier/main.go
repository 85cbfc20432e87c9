package main

import (
	"os"

	"logo-applier/internal/config"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	cfg, err := config.MustLoad()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("Failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel())

	root := &cobra.Command{
		Use:           "applier",
		Short:         "Apply a logo to every image of a folder",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newApplyCmd(cfg),
		newServeCmd(cfg),
		newWorkerCmd(cfg),
		newSubmitCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		zlog.Logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}
