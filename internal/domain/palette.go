package domain

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

const ColorNone = "none"

var ErrUnknownColor = errors.New("unknown background color")

// Palette maps the selectable background colour names to their hex values.
var Palette = map[string]string{
	"white":        "#FFFFFF",
	"light_gray":   "#D3D3D3",
	"pale_pink":    "#FFD1DC",
	"light_yellow": "#FFFACD",
	"yellow":       "#FFFF00",
	"light_orange": "#FFD580",
	"orange":       "#FFA500",
	"red":          "#FF0000",
	"pastel_blue":  "#ADD8E6",
	"sky_blue":     "#87CEEB",
	"mint_green":   "#98FB98",
}

func PaletteNames() []string {
	names := make([]string, 0, len(Palette)+1)
	for name := range Palette {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{ColorNone}, names...)
}

// ParseColor accepts a palette name, a #RRGGBB value, or "none".
// It returns nil for "none" and for the empty string.
func ParseColor(s string) (*color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == ColorNone {
		return nil, nil
	}
	if hex, ok := Palette[s]; ok {
		s = hex
	}
	if !strings.HasPrefix(s, "#") || len(s) != 7 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	return &color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
