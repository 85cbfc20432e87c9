package apply

import (
	"context"
	"fmt"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/processor/operations"
	"logo-applier/internal/usecase/session"
)

// Walk asks prompter for a placement of every image in turn, then runs the
// batch over the recorded subset. An image that cannot be opened is reported
// as failed and the walk moves on. A prompter error aborts the run before
// anything is written.
func (u *ApplyUsecase) Walk(ctx context.Context, run *Run, prompter session.Prompter) (*domain.BatchReport, error) {
	s := session.New(run.Images)
	failures := make(map[string]domain.ItemResult)

	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step, err := s.Current()
		if err != nil {
			return nil, err
		}

		img, err := u.source.Load(ctx, step.Path)
		if err != nil {
			u.logger.Error().Err(err).Str("image", step.Path).Msg("Failed to open image for positioning")
			failures[step.Path] = domain.ItemResult{
				Source: step.Path,
				Status: domain.StatusFailed,
				Error:  fmt.Sprintf("Failed to load image: %v", err),
			}
			if err := s.Skip(); err != nil {
				return nil, err
			}
			continue
		}

		imageSize := img.Bounds().Size()
		logoSize := operations.LogoSize(run.Logo.Bounds().Size(), imageSize, run.Job.Options.LogoSizePercent)

		decision, err := prompter.Prompt(ctx, session.Prompt{
			Step:     step,
			Image:    img,
			Logo:     run.Logo,
			LogoSize: logoSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get placement for %s: %w", step.Path, err)
		}

		if err := s.Apply(decision, logoSize, imageSize); err != nil {
			return nil, err
		}

		u.logger.Debug().
			Str("image", step.Path).
			Str("action", string(decision.Action)).
			Msg("Placement decided")
	}

	report, err := u.RunManual(ctx, run, s.Positions())
	if err != nil {
		return nil, err
	}

	mergeFailures(report, failures)
	return report, nil
}

// mergeFailures turns skipped entries of images that could not be opened
// during the walk into failed ones.
func mergeFailures(report *domain.BatchReport, failures map[string]domain.ItemResult) {
	for i, item := range report.Items {
		failed, ok := failures[item.Source]
		if !ok || item.Status != domain.StatusSkipped {
			continue
		}
		report.Items[i] = failed
		report.Skipped--
		report.Failed++
	}
}
