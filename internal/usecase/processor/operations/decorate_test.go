package operations

import (
	"image"
	"image/color"
	"testing"

	"logo-applier/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = &color.NRGBA{R: 0xff, A: 0xff}

func solidLogo(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestDecorate_NoColorIsIdentity(t *testing.T) {
	logo := solidLogo(40, 20, color.NRGBA{B: 0xff, A: 0xff})

	got := NewDecorator().Decorate(logo, domain.Background{Shape: domain.ShapeCircle, Padding: 15})

	assert.True(t, got == image.Image(logo), "expected the same image value back")
}

func TestDecorate_SizeForEveryShape(t *testing.T) {
	shapes := []domain.Shape{domain.ShapeCircle, domain.ShapeOval, domain.ShapeRectangle, domain.ShapeNone}
	sizes := []image.Point{{100, 100}, {160, 40}, {30, 90}, {1, 1}}
	paddings := []int{0, 10, 15}

	d := NewDecorator()
	for _, shape := range shapes {
		for _, size := range sizes {
			for _, p := range paddings {
				logo := solidLogo(size.X, size.Y, color.NRGBA{G: 0xff, A: 0xff})
				got := d.Decorate(logo, domain.Background{Color: red, Shape: shape, Padding: p})
				assert.Equal(t, image.Pt(size.X+2*p, size.Y+2*p), got.Bounds().Size(),
					"shape=%s size=%v padding=%d", shape, size, p)
			}
		}
	}
}

func TestDecorate_OpaqueLogoCoversCentre(t *testing.T) {
	logo := solidLogo(100, 50, color.NRGBA{B: 0xff, A: 0xff})

	got := NewDecorator().Decorate(logo, domain.Background{Color: red, Shape: domain.ShapeCircle, Padding: 10})

	assert.Equal(t, color.NRGBAModel.Convert(color.NRGBA{B: 0xff, A: 0xff}), color.NRGBAModel.Convert(got.At(60, 35)))
}

func TestDecorate_ShapeGeometry(t *testing.T) {
	// A fully transparent logo leaves only the background visible.
	logo := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	bg := func(shape domain.Shape) image.Image {
		return NewDecorator().Decorate(logo, domain.Background{Color: red, Shape: shape, Padding: 10})
	}
	alphaAt := func(img image.Image, x, y int) uint8 {
		return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA).A
	}

	// Canvas is 120x70. The oval and rectangle span rows 7..63.
	t.Run("circle", func(t *testing.T) {
		img := bg(domain.ShapeCircle)
		assert.Equal(t, uint8(0xff), alphaAt(img, 60, 35))
		assert.Equal(t, uint8(0xff), alphaAt(img, 60, 1))
		assert.Equal(t, uint8(0), alphaAt(img, 0, 0))
		assert.Equal(t, uint8(0), alphaAt(img, 119, 69))
	})

	t.Run("oval", func(t *testing.T) {
		img := bg(domain.ShapeOval)
		assert.Equal(t, uint8(0xff), alphaAt(img, 60, 35))
		assert.Equal(t, uint8(0), alphaAt(img, 60, 2))
		assert.Equal(t, uint8(0), alphaAt(img, 60, 67))
		assert.Equal(t, uint8(0), alphaAt(img, 1, 9))
	})

	t.Run("rectangle", func(t *testing.T) {
		img := bg(domain.ShapeRectangle)
		assert.Equal(t, uint8(0xff), alphaAt(img, 60, 35))
		assert.Equal(t, uint8(0xff), alphaAt(img, 0, 7))
		assert.Equal(t, uint8(0xff), alphaAt(img, 119, 63))
		assert.Equal(t, uint8(0), alphaAt(img, 60, 6))
		assert.Equal(t, uint8(0), alphaAt(img, 60, 64))
	})
}

func TestBandRect(t *testing.T) {
	// int(70*0.8) = 56, offset floor((56-70)/2) = -7
	assert.Equal(t, image.Rect(0, 7, 120, 63), bandRect(120, 70))
	// int(71*0.8) = 56, offset floor((56-71)/2) = -8
	assert.Equal(t, image.Rect(0, 8, 50, 64), bandRect(50, 71))
}

func TestFloorDiv(t *testing.T) {
	require.Equal(t, -8, floorDiv(-15, 2))
	require.Equal(t, -7, floorDiv(-14, 2))
	require.Equal(t, 7, floorDiv(15, 2))
	require.Equal(t, 0, floorDiv(0, 2))
}
