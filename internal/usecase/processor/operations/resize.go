package operations

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

type Resizer struct {
	filter imaging.ResampleFilter
}

func NewResizer() *Resizer {
	return &Resizer{filter: imaging.Lanczos}
}

// LogoSize scales logo so that it covers sizePercent of the target's
// dominant side, keeping the logo's aspect ratio. Landscape and square
// targets are keyed on width, portrait targets on height.
func LogoSize(logo, target image.Point, sizePercent int) image.Point {
	if logo.X <= 0 || logo.Y <= 0 {
		return image.Point{}
	}

	var w, h int
	if target.X >= target.Y {
		w = int(math.Round(float64(target.X) * float64(sizePercent) / 100))
		h = int(math.Round(float64(logo.Y) * float64(w) / float64(logo.X)))
	} else {
		h = int(math.Round(float64(target.Y) * float64(sizePercent) / 100))
		w = int(math.Round(float64(logo.X) * float64(h) / float64(logo.Y)))
	}

	return image.Pt(max(w, 1), max(h, 1))
}

// ResizeLogo resamples logo to LogoSize for the given target dimensions.
func (r *Resizer) ResizeLogo(logo image.Image, target image.Point, sizePercent int) image.Image {
	size := LogoSize(logo.Bounds().Size(), target, sizePercent)
	if size == logo.Bounds().Size() {
		return logo
	}
	return imaging.Resize(logo, size.X, size.Y, r.filter)
}
