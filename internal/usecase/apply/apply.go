package apply

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"logo-applier/internal/domain"
	"logo-applier/internal/repository/settings"
	"logo-applier/internal/repository/source"
	"logo-applier/internal/usecase/processor"
	"logo-applier/internal/usecase/processor/operations"
	"logo-applier/internal/usecase/session"

	"github.com/disintegration/imaging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"
)

// Run is a validated job ready to be processed: its images are resolved and
// the logo is decorated once.
type Run struct {
	Job    domain.ProcessingJob
	Images []string
	Logo   image.Image
}

type ApplyUsecase struct {
	source    imageSource
	processor batchProcessor
	storage   destination
	settings  settingsRepository
	renderer  previewRenderer
	decorator *operations.Decorator
	resizer   *operations.Resizer
	validate  *validator.Validate
	logger    *zlog.Zerolog
	sessions  *session.Store[*manualRun]
}

func NewApplyUsecase(src imageSource, proc batchProcessor, storage destination, settingsRepo settingsRepository, renderer previewRenderer, logger *zlog.Zerolog) *ApplyUsecase {
	return &ApplyUsecase{
		source:    src,
		processor: proc,
		storage:   storage,
		settings:  settingsRepo,
		renderer:  renderer,
		decorator: operations.NewDecorator(),
		resizer:   operations.NewResizer(),
		validate:  validator.New(),
		logger:    logger,
		sessions:  session.NewStore[*manualRun](),
	}
}

// Prepare checks the inputs of job and resolves everything a run needs.
// Nothing is written except the destination folder.
func (u *ApplyUsecase) Prepare(ctx context.Context, job domain.ProcessingJob) (*Run, error) {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	if err := u.validateInputs(job); err != nil {
		u.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Invalid job")
		return nil, err
	}

	bg, err := job.Options.Background()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	images, err := u.source.Scan(job.SourceFolder)
	if err != nil {
		if errors.Is(err, source.ErrFolderNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, job.SourceFolder)
		}
		return nil, fmt.Errorf("failed to scan source folder: %w", err)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoImages, job.SourceFolder)
	}

	logo, err := imaging.Open(job.LogoFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLogo, err)
	}

	if err := u.storage.Ensure(ctx, job.DestFolder); err != nil {
		return nil, fmt.Errorf("failed to prepare destination: %w", err)
	}

	u.logger.Info().
		Str("job_id", job.ID).
		Str("source", job.SourceFolder).
		Str("dest", job.DestFolder).
		Str("mode", string(job.Options.PositionMode)).
		Int("images", len(images)).
		Msg("Run prepared")

	return &Run{
		Job:    job,
		Images: images,
		Logo:   u.decorator.Decorate(logo, bg),
	}, nil
}

func (u *ApplyUsecase) validateInputs(job domain.ProcessingJob) error {
	if info, err := os.Stat(job.SourceFolder); job.SourceFolder == "" || err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrSourceNotFound, job.SourceFolder)
	}
	if info, err := os.Stat(job.LogoFile); job.LogoFile == "" || err != nil || info.IsDir() {
		return fmt.Errorf("%w: %q", ErrLogoNotFound, job.LogoFile)
	}
	if job.DestFolder == "" {
		return ErrDestinationRequired
	}
	if err := u.validate.Struct(job.Options); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	for name, pt := range job.Positions {
		if err := u.validate.Struct(pt); err != nil {
			return fmt.Errorf("%w: position of %s: %v", ErrInvalidOptions, name, err)
		}
	}
	return nil
}

// RunFixed composites every image of run at the configured corner.
func (u *ApplyUsecase) RunFixed(ctx context.Context, run *Run) *domain.BatchReport {
	opts := run.Job.Options
	placement := domain.FixedPlacement(opts.FixedPosition, opts.MarginPercent)

	items := make([]processor.Item, 0, len(run.Images))
	for _, path := range run.Images {
		items = append(items, processor.Item{Source: path, Placement: placement})
	}

	report := u.processor.ProcessBatch(ctx, run.Job.ID, items, run.Logo, opts.LogoSizePercent, run.Job.DestFolder)
	u.saveSettings(run.Job)
	return report
}

// RunManual composites the images that have a recorded position, keyed by
// full path. The others are reported as skipped. Without any position
// nothing is written.
func (u *ApplyUsecase) RunManual(ctx context.Context, run *Run, positions map[string]domain.Point) (*domain.BatchReport, error) {
	items := make([]processor.Item, 0, len(run.Images))
	eligible := 0
	for _, path := range run.Images {
		pt, ok := positions[path]
		if ok {
			eligible++
		}
		items = append(items, processor.Item{
			Source:    path,
			Placement: domain.ManualPlacement(pt),
			Skipped:   !ok,
		})
	}

	if eligible == 0 {
		u.logger.Warn().Str("job_id", run.Job.ID).Msg("No positions recorded, nothing to process")
		return nil, ErrNoPositions
	}

	report := u.processor.ProcessBatch(ctx, run.Job.ID, items, run.Logo, run.Job.Options.LogoSizePercent, run.Job.DestFolder)
	u.saveSettings(run.Job)
	return report, nil
}

// Execute runs a job without interaction. In manual mode the positions are
// taken from job.Positions, keyed by image file name.
func (u *ApplyUsecase) Execute(ctx context.Context, job domain.ProcessingJob) (*domain.BatchReport, error) {
	run, err := u.Prepare(ctx, job)
	if err != nil {
		return nil, err
	}

	if run.Job.Options.PositionMode == domain.ModeFixed {
		return u.RunFixed(ctx, run), nil
	}

	return u.RunManual(ctx, run, PositionsByPath(run.Images, run.Job.Positions))
}

// PositionsByPath re-keys points given by file name onto the full paths of
// images. Names that match no image are dropped.
func PositionsByPath(images []string, byName map[string]domain.Point) map[string]domain.Point {
	out := make(map[string]domain.Point)
	for _, path := range images {
		if pt, ok := byName[filepath.Base(path)]; ok {
			out[path] = pt
		}
	}
	return out
}

func (u *ApplyUsecase) saveSettings(job domain.ProcessingJob) {
	if u.settings == nil {
		return
	}
	if err := u.settings.Save(settings.FromJob(job)); err != nil {
		u.logger.Warn().Err(err).Msg("Failed to save settings")
	}
}
