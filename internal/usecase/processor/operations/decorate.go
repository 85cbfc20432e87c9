package operations

import (
	"image"
	"image/color"
	"image/draw"

	"logo-applier/internal/domain"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"
)

// bandRatio is the height of the oval and rectangle backgrounds relative to
// the padded canvas.
const bandRatio = 0.8

// kappa places cubic control points so four curves approximate a quarter
// ellipse each.
const kappa = 0.5522847498

type Decorator struct{}

func NewDecorator() *Decorator {
	return &Decorator{}
}

// Decorate returns logo unchanged when bg has no colour. Otherwise it draws
// the background shape on a transparent canvas grown by bg.Padding on every
// side and overlays the logo at (padding, padding).
func (d *Decorator) Decorate(logo image.Image, bg domain.Background) image.Image {
	if !bg.Enabled() {
		return logo
	}

	padding := bg.Padding
	if padding < 0 {
		padding = 0
	}

	lb := logo.Bounds()
	w := lb.Dx() + padding*2
	h := lb.Dy() + padding*2

	canvas := image.NewNRGBA(image.Rect(0, 0, w, h))

	switch bg.Shape {
	case domain.ShapeCircle:
		diameter := max(w, h)
		offX := floorDiv(diameter-w, 2)
		offY := floorDiv(diameter-h, 2)
		fillEllipse(canvas, image.Rect(-offX, -offY, diameter-offX, diameter-offY), bg.Color)
	case domain.ShapeOval:
		fillEllipse(canvas, bandRect(w, h), bg.Color)
	case domain.ShapeRectangle:
		r := bandRect(w, h)
		// both corners of the band are inclusive
		r.Max = r.Max.Add(image.Pt(1, 1))
		draw.Draw(canvas, r, image.NewUniform(bg.Color), image.Point{}, draw.Over)
	}

	return imaging.Overlay(canvas, logo, image.Pt(padding, padding), 1.0)
}

// bandRect spans the full canvas width and bandRatio of its height, centred.
func bandRect(w, h int) image.Rectangle {
	bandH := int(float64(h) * bandRatio)
	offY := floorDiv(bandH-h, 2)
	return image.Rect(0, -offY, w, bandH-offY)
}

// fillEllipse fills the ellipse inscribed in r. Parts of r outside dst are
// clipped.
func fillEllipse(dst draw.Image, r image.Rectangle, c color.Color) {
	bw, bh := r.Dx(), r.Dy()
	if bw <= 0 || bh <= 0 {
		return
	}

	rx, ry := float32(bw)/2, float32(bh)/2
	kx, ky := rx*kappa, ry*kappa

	z := vector.NewRasterizer(bw, bh)
	z.MoveTo(rx+rx, ry)
	z.CubeTo(rx+rx, ry+ky, rx+kx, ry+ry, rx, ry+ry)
	z.CubeTo(rx-kx, ry+ry, 0, ry+ky, 0, ry)
	z.CubeTo(0, ry-ky, rx-kx, 0, rx, 0)
	z.CubeTo(rx+kx, 0, rx+rx, ry-ky, rx+rx, ry)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, bw, bh))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}

// floorDiv rounds towards negative infinity, unlike Go's integer division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
