package apply

import (
	"context"
	"image"
	"io"

	"logo-applier/internal/domain"
	"logo-applier/internal/repository/settings"
	"logo-applier/internal/usecase/processor"
	"logo-applier/internal/usecase/session"
)

type imageSource interface {
	Scan(folder string) ([]string, error)
	Load(ctx context.Context, path string) (image.Image, error)
	Dimensions(path string) (image.Point, error)
}

type batchProcessor interface {
	ProcessBatch(ctx context.Context, jobID string, items []processor.Item, logo image.Image, sizePercent int, dest string) *domain.BatchReport
}

type destination interface {
	Ensure(ctx context.Context, dest string) error
}

type settingsRepository interface {
	Save(s settings.Settings) error
}

type previewRenderer interface {
	Render(target, logo image.Image, step session.Step, hover *domain.Point) (*image.NRGBA, error)
	Encode(w io.Writer, img image.Image) error
}
