package run

import (
	"context"
	"io"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/apply"
)

type applyUsecase interface {
	Execute(ctx context.Context, job domain.ProcessingJob) (*domain.BatchReport, error)
	StartSession(ctx context.Context, job domain.ProcessingJob) (apply.SessionState, error)
	SessionState(id string) (apply.SessionState, error)
	Preview(ctx context.Context, id string, hover *domain.Point, w io.Writer) error
	Click(ctx context.Context, id string, pt domain.Point) (apply.SessionState, *domain.BatchReport, error)
	Skip(ctx context.Context, id string) (apply.SessionState, *domain.BatchReport, error)
	Stop(ctx context.Context, id string) (apply.SessionState, *domain.BatchReport, error)
}
