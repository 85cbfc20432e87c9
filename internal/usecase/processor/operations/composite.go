package operations

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"logo-applier/internal/domain"

	"github.com/disintegration/imaging"
)

type Compositor struct {
	quality int
}

func NewCompositor(quality int) *Compositor {
	if quality <= 0 || quality > 100 {
		quality = domain.OutputQuality
	}
	return &Compositor{quality: quality}
}

// Composite overlays logo on a non-premultiplied copy of target with its
// top-left corner at at, using the logo's alpha channel as mask. Parts of
// the logo outside the target are dropped.
func (c *Compositor) Composite(target, logo image.Image, at image.Point) *image.NRGBA {
	return imaging.Overlay(target, logo, at, 1.0)
}

// Flatten makes every pixel opaque while keeping its colour channels as they
// are. No backdrop colour is blended in.
func Flatten(img *image.NRGBA) *image.NRGBA {
	out := &image.NRGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xff
	}
	return out
}

// Encode writes img as a baseline JPEG.
func (c *Compositor) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return fmt.Errorf("failed to encode composited image: %w", err)
	}
	return nil
}

// Process composites, flattens and encodes in one go.
func (c *Compositor) Process(target, logo image.Image, at image.Point) (*bytes.Buffer, error) {
	flat := Flatten(c.Composite(target, logo, at))

	buf := new(bytes.Buffer)
	if err := c.Encode(buf, flat); err != nil {
		return nil, err
	}

	return buf, nil
}
