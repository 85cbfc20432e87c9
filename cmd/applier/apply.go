package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"logo-applier/internal/app"
	"logo-applier/internal/config"
	"logo-applier/internal/domain"
	"logo-applier/internal/prompt"
	"logo-applier/internal/repository/settings"
	"logo-applier/internal/usecase/session"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/wb-go/wbf/zlog"
)

type applyFlags struct {
	source    string
	logo      string
	dest      string
	mode      string
	corner    string
	size      int
	margin    int
	color     string
	shape     string
	padding   int
	positions string
}

func newApplyCmd(cfg *config.Config) *cobra.Command {
	last := settings.NewFileRepository(cfg.Settings.Path, &zlog.Logger).Load()
	f := &applyFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the logo to a folder of images",
		Long: "Apply the logo to every supported image of the source folder.\n" +
			"Defaults are the values of the previous run.\n" +
			"In manual mode each image is positioned on the console unless --positions is given.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			components, err := app.Build(cfg, &zlog.Logger)
			if err != nil {
				return fmt.Errorf("failed to build components: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runApply(ctx, components, f, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.source, "source", "s", last.SourceFolder, "folder with the images to process")
	fl.StringVarP(&f.logo, "logo", "l", last.LogoFile, "logo image file")
	fl.StringVarP(&f.dest, "dest", "d", last.DestFolder, "destination folder")
	fl.StringVarP(&f.mode, "mode", "m", string(last.PositionMode), "position mode: manual or fixed")
	fl.StringVar(&f.corner, "corner", string(last.FixedPosition), "corner in fixed mode: top_left, top_right, bottom_left, bottom_right")
	fl.IntVar(&f.size, "size", last.LogoSizePercent, fmt.Sprintf("logo size in percent of the image, one of %v", domain.LogoSizeOptions))
	fl.IntVar(&f.margin, "margin", last.MarginPercent, fmt.Sprintf("margin in percent in fixed mode, one of %v", domain.MarginOptions))
	fl.StringVar(&f.color, "bg-color", last.BgColor, "background colour name or #RRGGBB, \"none\" to disable")
	fl.StringVar(&f.shape, "bg-shape", string(last.BgShape), "background shape: circle, oval, rectangle")
	fl.IntVar(&f.padding, "padding", cfg.Processing.DefaultPadding, "background padding in pixels")
	fl.StringVar(&f.positions, "positions", "", "JSON file with manual positions keyed by file name")

	return cmd
}

func (f *applyFlags) job() domain.ProcessingJob {
	return domain.ProcessingJob{
		SourceFolder: f.source,
		LogoFile:     f.logo,
		DestFolder:   f.dest,
		Options: domain.Options{
			LogoSizePercent: f.size,
			MarginPercent:   f.margin,
			PositionMode:    domain.PositionMode(f.mode),
			FixedPosition:   domain.Corner(f.corner),
			BgColor:         f.color,
			BgShape:         domain.Shape(f.shape),
			Padding:         f.padding,
		},
	}
}

func runApply(ctx context.Context, c *app.Components, f *applyFlags, in io.Reader, out io.Writer) error {
	run, err := c.Apply.Prepare(ctx, f.job())
	if err != nil {
		return err
	}

	if run.Job.Options.PositionMode == domain.ModeFixed {
		printReport(out, c.Apply.RunFixed(ctx, run))
		return nil
	}

	var prompter session.Prompter = prompt.NewConsolePrompter(in, out)
	if f.positions != "" {
		positions, err := prompt.LoadPositions(f.positions)
		if err != nil {
			return err
		}
		prompter = prompt.NewPositionsPrompter(positions)
	}

	report, err := c.Apply.Walk(ctx, run, prompter)
	if err != nil {
		return err
	}

	printReport(out, report)
	return nil
}

func printReport(out io.Writer, r *domain.BatchReport) {
	var written int64
	for _, item := range r.Items {
		written += item.Size
	}

	fmt.Fprintf(out, "Processed %d of %d images (%d failed, %d skipped), %s written in %s\n",
		r.Processed, r.Total, r.Failed, r.Skipped, humanize.Bytes(uint64(written)), r.Duration.Round(1e6))

	for _, item := range r.FailedItems() {
		fmt.Fprintf(out, "  %s: %s\n", item.Source, item.Error)
	}
}
