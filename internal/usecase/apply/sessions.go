package apply

import (
	"context"
	"fmt"
	"io"
	"sync"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/processor/operations"
	"logo-applier/internal/usecase/session"
)

// SessionState is a snapshot of a placement session.
type SessionState struct {
	ID       string `json:"id"`
	Index    int    `json:"index"`
	Total    int    `json:"total"`
	Current  string `json:"current,omitempty"`
	Recorded int    `json:"recorded"`
	Done     bool   `json:"done"`
}

// manualRun ties a session to its run. mu serialises decisions so that the
// batch of a finished session runs exactly once.
type manualRun struct {
	mu       sync.Mutex
	run      *Run
	session  *session.Session
	failures map[string]domain.ItemResult
}

func (m *manualRun) state() SessionState {
	st := SessionState{
		ID:       m.session.ID,
		Index:    m.session.Index(),
		Total:    m.session.Total(),
		Recorded: len(m.session.Positions()),
		Done:     m.session.Done(),
	}
	if step, err := m.session.Current(); err == nil {
		st.Current = step.Path
	}
	return st
}

// StartSession prepares a manual-mode job and opens a placement session
// over its images.
func (u *ApplyUsecase) StartSession(ctx context.Context, job domain.ProcessingJob) (SessionState, error) {
	job.Options.PositionMode = domain.ModeManual

	run, err := u.Prepare(ctx, job)
	if err != nil {
		return SessionState{}, err
	}

	m := &manualRun{
		run:      run,
		session:  session.New(run.Images),
		failures: make(map[string]domain.ItemResult),
	}
	u.sessions.Put(m.session.ID, m)

	u.logger.Info().
		Str("session_id", m.session.ID).
		Str("job_id", run.Job.ID).
		Int("images", len(run.Images)).
		Msg("Placement session started")

	return m.state(), nil
}

func (u *ApplyUsecase) SessionState(id string) (SessionState, error) {
	m, err := u.sessions.Get(id)
	if err != nil {
		return SessionState{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state(), nil
}

// Preview writes a JPEG of the current image with the progress label and,
// if hover is set, the logo drawn at that point.
func (u *ApplyUsecase) Preview(ctx context.Context, id string, hover *domain.Point, w io.Writer) error {
	m, err := u.sessions.Get(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	step, err := m.session.Current()
	m.mu.Unlock()
	if err != nil {
		return err
	}

	img, err := u.source.Load(ctx, step.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", step.Path, err)
	}

	logo := u.resizer.ResizeLogo(m.run.Logo, img.Bounds().Size(), m.run.Job.Options.LogoSizePercent)

	frame, err := u.renderer.Render(img, logo, step, hover)
	if err != nil {
		return err
	}

	return u.renderer.Encode(w, frame)
}

// Click confirms a placement point for the current image. When it was the
// last image the batch runs and its report is returned.
func (u *ApplyUsecase) Click(ctx context.Context, id string, pt domain.Point) (SessionState, *domain.BatchReport, error) {
	if err := u.validate.Struct(pt); err != nil {
		return SessionState{}, nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	return u.decide(ctx, id, func(m *manualRun) error {
		step, err := m.session.Current()
		if err != nil {
			return err
		}

		imageSize, err := u.source.Dimensions(step.Path)
		if err != nil {
			u.logger.Error().Err(err).Str("image", step.Path).Msg("Failed to read image size")
			m.failures[step.Path] = domain.ItemResult{
				Source: step.Path,
				Status: domain.StatusFailed,
				Error:  fmt.Sprintf("Failed to load image: %v", err),
			}
			return m.session.Skip()
		}

		logoSize := operations.LogoSize(m.run.Logo.Bounds().Size(), imageSize, m.run.Job.Options.LogoSizePercent)
		_, err = m.session.Confirm(pt, logoSize, imageSize)
		return err
	})
}

func (u *ApplyUsecase) Skip(ctx context.Context, id string) (SessionState, *domain.BatchReport, error) {
	return u.decide(ctx, id, func(m *manualRun) error {
		return m.session.Skip()
	})
}

func (u *ApplyUsecase) Stop(ctx context.Context, id string) (SessionState, *domain.BatchReport, error) {
	return u.decide(ctx, id, func(m *manualRun) error {
		return m.session.Stop()
	})
}

func (u *ApplyUsecase) decide(ctx context.Context, id string, apply func(m *manualRun) error) (SessionState, *domain.BatchReport, error) {
	m, err := u.sessions.Get(id)
	if err != nil {
		return SessionState{}, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := apply(m); err != nil {
		return m.state(), nil, err
	}

	state := m.state()
	if !state.Done {
		return state, nil, nil
	}

	u.sessions.Delete(id)

	report, err := u.RunManual(ctx, m.run, m.session.Positions())
	if err != nil {
		return state, nil, err
	}
	mergeFailures(report, m.failures)

	u.logger.Info().Str("session_id", id).Msg("Placement session finished")
	return state, report, nil
}
