package main

import (
	"logo-applier/internal/app/worker"
	"logo-applier/internal/config"

	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

func newWorkerCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Consume jobs from Kafka and publish their reports",
		RunE: func(_ *cobra.Command, _ []string) error {
			workerApp, err := worker.NewWorker(cfg, &zlog.Logger)
			if err != nil {
				return err
			}

			if err := workerApp.Run(); err != nil {
				return err
			}

			zlog.Logger.Info().Msg("Worker exited successfully")
			return nil
		},
	}
}
