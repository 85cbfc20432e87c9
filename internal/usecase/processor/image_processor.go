package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/processor/operations"

	"github.com/wb-go/wbf/zlog"
)

// Item is one target image of a batch. Skipped items are reported without
// being opened.
type Item struct {
	Source    string
	Placement domain.Placement
	Skipped   bool
}

type ImageProcessor struct {
	resizer    *operations.Resizer
	compositor *operations.Compositor
	loader     imageLoader
	sink       outputSink
	logger     *zlog.Zerolog
}

func NewImageProcessor(loader imageLoader, sink outputSink, logger *zlog.Zerolog) *ImageProcessor {
	return &ImageProcessor{
		resizer:    operations.NewResizer(),
		compositor: operations.NewCompositor(domain.OutputQuality),
		loader:     loader,
		sink:       sink,
		logger:     logger,
	}
}

// Process applies an already decorated logo to one image and stores the
// result as <stem>.jpg under dest. Failures are reported in the returned
// result, never as a panic or an aborted batch.
func (p *ImageProcessor) Process(ctx context.Context, item Item, logo image.Image, sizePercent int, dest string) domain.ItemResult {
	result := domain.ItemResult{
		Source: item.Source,
		Status: domain.StatusCompleted,
	}

	if item.Skipped {
		result.Status = domain.StatusSkipped
		p.logger.Debug().Str("image", item.Source).Msg("Image skipped")
		return result
	}

	target, err := p.loader.Load(ctx, item.Source)
	if err != nil {
		return p.fail(result, "Failed to load image", err)
	}

	targetSize := target.Bounds().Size()
	resized := p.resizer.ResizeLogo(logo, targetSize, sizePercent)
	at := operations.Position(item.Placement, targetSize, resized.Bounds().Size())

	p.logger.Debug().
		Str("image", item.Source).
		Int("width", targetSize.X).
		Int("height", targetSize.Y).
		Int("logo_width", resized.Bounds().Dx()).
		Int("logo_height", resized.Bounds().Dy()).
		Int("x", at.X).
		Int("y", at.Y).
		Msg("Compositing logo")

	buf, err := p.compositor.Process(target, resized, at)
	if err != nil {
		return p.fail(result, "Failed to composite image", err)
	}

	size := int64(buf.Len())
	output, err := p.sink.Save(ctx, dest, OutputName(item.Source), bytes.NewReader(buf.Bytes()), size, domain.OutputContentType)
	if err != nil {
		return p.fail(result, "Failed to save processed image", err)
	}

	result.Output = output
	result.Size = size

	p.logger.Info().
		Str("image", item.Source).
		Str("output", output).
		Int64("size", size).
		Msg("Image processed")

	return result
}

// ProcessBatch runs Process over items in order. Once ctx is cancelled the
// remaining items are reported as skipped.
func (p *ImageProcessor) ProcessBatch(ctx context.Context, jobID string, items []Item, logo image.Image, sizePercent int, dest string) *domain.BatchReport {
	start := time.Now()
	report := &domain.BatchReport{
		JobID: jobID,
		Total: len(items),
		Items: make([]domain.ItemResult, 0, len(items)),
	}

	p.logger.Info().
		Str("job_id", jobID).
		Int("images", len(items)).
		Str("dest", dest).
		Msg("Starting batch")

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			report.Add(domain.ItemResult{
				Source: item.Source,
				Status: domain.StatusSkipped,
				Error:  err.Error(),
			})
			continue
		}
		report.Add(p.Process(ctx, item, logo, sizePercent, dest))
	}

	report.Duration = time.Since(start)

	p.logger.Info().
		Str("job_id", jobID).
		Int("processed", report.Processed).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Dur("duration", report.Duration).
		Msg("Batch completed")

	return report
}

func (p *ImageProcessor) fail(result domain.ItemResult, msg string, err error) domain.ItemResult {
	result.Status = domain.StatusFailed
	result.Error = fmt.Sprintf("%s: %v", msg, err)
	p.logger.Error().Err(err).Str("image", result.Source).Msg(msg)
	return result
}

// OutputName is the file name a processed image is stored under.
func OutputName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + domain.OutputExt
}
