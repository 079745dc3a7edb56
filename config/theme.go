package config

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Palette is the set of colors the viewer renders with. Link colors are
// ordered proximal to distal, one per link. All values are hex strings.
type Palette struct {
	Name       string   `json:"name"`
	Background string   `json:"background"`
	Ground     string   `json:"ground"`
	Pedestal   string   `json:"pedestal"`
	Links      []string `json:"links"`
	Accent     string   `json:"accent"`
}

// linkColors spreads evenly-spaced hues across the five links so adjacent
// segments stay distinguishable at any pose.
func linkColors(saturation, lightness float64) []string {
	out := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		h := 200 + float64(i)*32 // blue toward magenta
		out = append(out, colorful.Hsl(h, saturation, lightness).Clamped().Hex())
	}
	return out
}

// ThemePalette returns the palette for a named theme. Only "dark" and
// "light" exist.
func ThemePalette(name string) (Palette, error) {
	switch name {
	case "dark":
		return Palette{
			Name:       "dark",
			Background: colorful.Hsl(220, 0.25, 0.10).Clamped().Hex(),
			Ground:     colorful.Hsl(220, 0.15, 0.16).Clamped().Hex(),
			Pedestal:   colorful.Hsl(220, 0.10, 0.35).Clamped().Hex(),
			Links:      linkColors(0.55, 0.55),
			Accent:     colorful.Hsl(30, 0.90, 0.60).Clamped().Hex(),
		}, nil
	case "light":
		return Palette{
			Name:       "light",
			Background: colorful.Hsl(210, 0.30, 0.95).Clamped().Hex(),
			Ground:     colorful.Hsl(210, 0.20, 0.88).Clamped().Hex(),
			Pedestal:   colorful.Hsl(210, 0.10, 0.55).Clamped().Hex(),
			Links:      linkColors(0.60, 0.45),
			Accent:     colorful.Hsl(20, 0.85, 0.50).Clamped().Hex(),
		}, nil
	default:
		return Palette{}, errors.Errorf("unknown theme %q", name)
	}
}
