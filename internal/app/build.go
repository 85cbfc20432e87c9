package app

import (
	"context"
	"fmt"
	"io"

	"logo-applier/internal/config"
	"logo-applier/internal/repository/output/cloud/minio"
	"logo-applier/internal/repository/output/local"
	"logo-applier/internal/repository/settings"
	"logo-applier/internal/repository/source"
	"logo-applier/internal/usecase/apply"
	"logo-applier/internal/usecase/preview"
	"logo-applier/internal/usecase/processor"

	"github.com/wb-go/wbf/zlog"
)

type storage interface {
	Save(ctx context.Context, dest, name string, data io.Reader, size int64, contentType string) (string, error)
	Ensure(ctx context.Context, dest string) error
}

// Components are the pieces shared by the CLI, the HTTP server and the
// worker.
type Components struct {
	Apply    *apply.ApplyUsecase
	Settings *settings.FileRepository
}

func Build(cfg *config.Config, logger *zlog.Zerolog) (*Components, error) {
	out, err := newStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	renderer, err := preview.NewRenderer(cfg.Processing.PreviewMaxWidth, cfg.Processing.PreviewMaxHeight, cfg.Processing.LabelFontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create preview renderer: %w", err)
	}

	src := source.NewFolderRepository()
	settingsRepo := settings.NewFileRepository(cfg.Settings.Path, logger)
	imageProcessor := processor.NewImageProcessor(src, out, logger)

	return &Components{
		Apply:    apply.NewApplyUsecase(src, imageProcessor, out, settingsRepo, renderer, logger),
		Settings: settingsRepo,
	}, nil
}

func newStorage(cfg *config.Config, logger *zlog.Zerolog) (storage, error) {
	switch cfg.Storage.Type {
	case "minio":
		repo, err := minio.NewMinIORepository(cfg, cfg.DefaultRetryStrategy(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create file repository: %w", err)
		}
		return repo, nil
	default:
		return local.NewFileRepository(), nil
	}
}
