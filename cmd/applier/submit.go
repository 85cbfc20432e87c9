package main

import (
	"fmt"

	"logo-applier/internal/broker/kafka"
	"logo-applier/internal/config"
	"logo-applier/internal/domain"
	"logo-applier/internal/prompt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

func newSubmitCmd(cfg *config.Config) *cobra.Command {
	f := &applyFlags{}
	defaults := domain.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Publish a job for the worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			job := f.job()
			job.ID = uuid.New().String()

			if f.positions != "" {
				positions, err := prompt.LoadPositions(f.positions)
				if err != nil {
					return err
				}
				job.Positions = positions
			}

			producer := kafka.NewProducerClient(cfg.Kafka.Brokers, cfg.Kafka.JobsTopic)
			defer func() {
				if err := producer.Close(); err != nil {
					zlog.Logger.Error().Err(err).Msg("Failed to close producer")
				}
			}()

			if err := producer.SendJob(cmd.Context(), cfg.DefaultRetryStrategy(), job); err != nil {
				return fmt.Errorf("failed to submit job: %w", err)
			}

			zlog.Logger.Info().Str("job_id", job.ID).Str("topic", cfg.Kafka.JobsTopic).Msg("Job submitted")
			fmt.Fprintln(cmd.OutOrStdout(), job.ID)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.source, "source", "s", "", "folder with the images to process, as seen by the worker")
	fl.StringVarP(&f.logo, "logo", "l", "", "logo image file, as seen by the worker")
	fl.StringVarP(&f.dest, "dest", "d", "", "destination folder or bucket prefix")
	fl.StringVarP(&f.mode, "mode", "m", string(domain.ModeFixed), "position mode: manual or fixed")
	fl.StringVar(&f.corner, "corner", string(defaults.FixedPosition), "corner in fixed mode")
	fl.IntVar(&f.size, "size", defaults.LogoSizePercent, "logo size in percent of the image")
	fl.IntVar(&f.margin, "margin", defaults.MarginPercent, "margin in percent in fixed mode")
	fl.StringVar(&f.color, "bg-color", defaults.BgColor, "background colour name or #RRGGBB")
	fl.StringVar(&f.shape, "bg-shape", string(defaults.BgShape), "background shape")
	fl.IntVar(&f.padding, "padding", cfg.Processing.DefaultPadding, "background padding in pixels")
	fl.StringVar(&f.positions, "positions", "", "JSON file with manual positions keyed by file name")

	for _, name := range []string{"source", "logo", "dest"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
