package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"logo-applier/internal/domain"
	"logo-applier/internal/usecase/session"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	labelMargin   = 8
	encodeQuality = 90
)

var labelBackground = color.NRGBA{A: 0x99}

// Renderer draws the image shown while a placement decision is pending:
// the target fitted into the preview bounds, a progress label and, when a
// hover point is given, the logo at that point.
type Renderer struct {
	maxWidth  int
	maxHeight int
	fontSize  float64
	font      *truetype.Font
}

func NewRenderer(maxWidth, maxHeight int, fontSize float64) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	return &Renderer{
		maxWidth:  maxWidth,
		maxHeight: maxHeight,
		fontSize:  fontSize,
		font:      f,
	}, nil
}

// Label is the progress text for a step.
func Label(step session.Step) string {
	percent := 0
	if step.Total > 0 {
		percent = step.Index * 100 / step.Total
	}
	return fmt.Sprintf("Positioning: %d%% (%d/%d)", percent, step.Index, step.Total)
}

// Render fits target into the preview bounds without enlarging it. logo is
// the logo already resized for the full size target; it is scaled by the
// same factor as the target. A hover point places the logo centred on it,
// kept fully inside the preview.
func (r *Renderer) Render(target, logo image.Image, step session.Step, hover *domain.Point) (*image.NRGBA, error) {
	display := imaging.Fit(target, r.maxWidth, r.maxHeight, imaging.Lanczos)

	if hover != nil && logo != nil {
		scaled := scaleLogo(logo, target.Bounds().Dx(), display.Bounds().Dx())
		display = imaging.Overlay(display, scaled, hoverPosition(*hover, display.Bounds().Size(), scaled.Bounds().Size()), 1.0)
	}

	if err := r.drawLabel(display, Label(step)); err != nil {
		return nil, err
	}

	return display, nil
}

func (r *Renderer) Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(encodeQuality)); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

func scaleLogo(logo image.Image, targetWidth, displayWidth int) image.Image {
	if targetWidth <= 0 || targetWidth == displayWidth {
		return logo
	}

	scale := float64(displayWidth) / float64(targetWidth)
	w := max(int(float64(logo.Bounds().Dx())*scale), 1)
	h := max(int(float64(logo.Bounds().Dy())*scale), 1)
	return imaging.Resize(logo, w, h, imaging.Lanczos)
}

func hoverPosition(pt domain.Point, display, logo image.Point) image.Point {
	x := int(pt.X*float64(display.X)) - logo.X/2
	y := int(pt.Y*float64(display.Y)) - logo.Y/2
	x = max(0, min(x, display.X-logo.X))
	y = max(0, min(y, display.Y-logo.Y))
	return image.Pt(x, y)
}

func (r *Renderer) drawLabel(dst *image.NRGBA, text string) error {
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(r.font)
	c.SetFontSize(r.fontSize)
	c.SetClip(dst.Bounds())
	c.SetDst(dst)
	c.SetSrc(image.White)
	c.SetHinting(font.HintingFull)

	textWidth := int(float64(len(text)) * r.fontSize * 0.6)
	textHeight := int(r.fontSize * 1.2)

	strip := image.Rect(0, 0, textWidth+labelMargin*2, textHeight+labelMargin)
	draw.Draw(dst, strip, image.NewUniform(labelBackground), image.Point{}, draw.Over)

	if _, err := c.DrawString(text, freetype.Pt(labelMargin, labelMargin/2+int(r.fontSize))); err != nil {
		return fmt.Errorf("failed to draw label: %w", err)
	}

	return nil
}
