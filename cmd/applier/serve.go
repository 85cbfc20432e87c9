package main

import (
	"logo-applier/internal/app"
	"logo-applier/internal/config"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the run and placement session API",
		RunE: func(_ *cobra.Command, _ []string) error {
			application, err := app.NewApp(cfg, &zlog.Logger)
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}
