package domain

import "image/color"

type Shape string

const (
	ShapeNone      Shape = "none"
	ShapeCircle    Shape = "circle"
	ShapeOval      Shape = "oval"
	ShapeRectangle Shape = "rectangle"
)

type Corner string

const (
	CornerTopLeft     Corner = "top_left"
	CornerTopRight    Corner = "top_right"
	CornerBottomLeft  Corner = "bottom_left"
	CornerBottomRight Corner = "bottom_right"
)

type PositionMode string

const (
	ModeManual PositionMode = "manual"
	ModeFixed  PositionMode = "fixed"
)

// Background describes the optional shape drawn behind a logo.
// A nil Color means the logo is used as is.
type Background struct {
	Color   *color.NRGBA
	Shape   Shape
	Padding int
}

func (b Background) Enabled() bool {
	return b.Color != nil
}

// Point is a position relative to the target image, both axes in [0,1].
type Point struct {
	X float64 `json:"x" validate:"gte=0,lte=1"`
	Y float64 `json:"y" validate:"gte=0,lte=1"`
}

// Placement selects where a resized logo lands on a target image.
// Mode picks the variant: Point is used for ModeManual,
// Corner and MarginPercent for ModeFixed.
type Placement struct {
	Mode          PositionMode
	Point         Point
	Corner        Corner
	MarginPercent int
}

func ManualPlacement(p Point) Placement {
	return Placement{Mode: ModeManual, Point: p}
}

func FixedPlacement(corner Corner, marginPercent int) Placement {
	return Placement{Mode: ModeFixed, Corner: corner, MarginPercent: marginPercent}
}

// Options is the configuration surface of a run.
type Options struct {
	LogoSizePercent int          `json:"logo_size_percent" validate:"oneof=5 10 15 20"`
	MarginPercent   int          `json:"margin_percent" validate:"oneof=1 2 5 10 15"`
	PositionMode    PositionMode `json:"position_mode" validate:"oneof=manual fixed"`
	FixedPosition   Corner       `json:"fixed_position" validate:"oneof=top_left top_right bottom_left bottom_right"`
	BgColor         string       `json:"bg_color" validate:"required"`
	BgShape         Shape        `json:"bg_shape" validate:"oneof=circle oval rectangle"`
	Padding         int          `json:"padding" validate:"gte=0,lte=1000"`
}

func DefaultOptions() Options {
	return Options{
		LogoSizePercent: DefaultLogoSizePercent,
		MarginPercent:   DefaultMarginPercent,
		PositionMode:    ModeManual,
		FixedPosition:   CornerTopLeft,
		BgColor:         ColorNone,
		BgShape:         ShapeRectangle,
		Padding:         DefaultPadding,
	}
}

// Background resolves the colour name of the options into a Background.
func (o Options) Background() (Background, error) {
	c, err := ParseColor(o.BgColor)
	if err != nil {
		return Background{}, err
	}
	return Background{Color: c, Shape: o.BgShape, Padding: o.Padding}, nil
}

func (o Options) Placement(p Point) Placement {
	if o.PositionMode == ModeFixed {
		return FixedPlacement(o.FixedPosition, o.MarginPercent)
	}
	return ManualPlacement(p)
}

var (
	LogoSizeOptions = []int{5, 10, 15, 20}
	MarginOptions   = []int{1, 2, 5, 10, 15}
)

const (
	DefaultLogoSizePercent = 10
	DefaultMarginPercent   = 2
	DefaultPadding         = 15
	OutputQuality          = 100
	OutputExt              = ".jpg"
	OutputContentType      = "image/jpeg"
)

var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}
