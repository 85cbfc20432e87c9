package processor

import (
	"context"
	"image"
	"io"
)

type imageLoader interface {
	Load(ctx context.Context, path string) (image.Image, error)
}

type outputSink interface {
	Save(ctx context.Context, dest, name string, data io.Reader, size int64, contentType string) (string, error)
}
