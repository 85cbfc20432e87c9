package operations

import (
	"image"
	"math"

	"logo-applier/internal/domain"
)

// Position returns the top-left corner at which a logo of the given size is
// pasted on a target of the given size.
func Position(p domain.Placement, target, logo image.Point) image.Point {
	if p.Mode == domain.ModeFixed {
		return FixedPosition(target, logo, p.Corner, p.MarginPercent)
	}
	return ManualPosition(p.Point, target, logo)
}

// ManualPosition centres the logo on a relative point. The result is not
// clamped and may lie partly or fully outside the target.
func ManualPosition(pt domain.Point, target, logo image.Point) image.Point {
	x := int(math.Round(pt.X*float64(target.X))) - logo.X/2
	y := int(math.Round(pt.Y*float64(target.Y))) - logo.Y/2
	return image.Pt(x, y)
}

// FixedPosition anchors the logo in a corner, inset by marginPercent of the
// target's shorter side. Unknown corners fall back to the top-left one.
func FixedPosition(target, logo image.Point, corner domain.Corner, marginPercent int) image.Point {
	margin := int(math.Round(float64(min(target.X, target.Y)) * float64(marginPercent) / 100))

	switch corner {
	case domain.CornerTopRight:
		return image.Pt(target.X-logo.X-margin, margin)
	case domain.CornerBottomLeft:
		return image.Pt(margin, target.Y-logo.Y-margin)
	case domain.CornerBottomRight:
		return image.Pt(target.X-logo.X-margin, target.Y-logo.Y-margin)
	default:
		return image.Pt(margin, margin)
	}
}
