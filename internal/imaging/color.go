package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

// RGBAColor is a non-premultiplied color with 8-bit components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = fully opaque
}

// HSLColor is a color in HSL space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees
	S int `json:"s"` // Saturation: 0-100 percent
	L int `json:"l"` // Lightness: 0-100 percent
}

// ColorResult describes a sampled pixel and how the background classifier
// sees it.
type ColorResult struct {
	Hex  string    `json:"hex"` // "#RRGGBB", alpha excluded
	RGBA RGBAColor `json:"rgba"`
	HSL  HSLColor  `json:"hsl"`

	// Background is true when the default classifier treats the color as
	// white or checkerboard background.
	Background bool `json:"background"`

	// Light is true when the pixel would be shaved as halo if it bordered a
	// transparent pixel.
	Light bool `json:"light"`
}

// SampleColor reads the pixel at (x, y).
//
// Color channels are reported without alpha premultiplication, so the RGB of
// a transparent pixel is whatever the file stores.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	h, s, l := cf.Hsl()
	if math.IsNaN(h) {
		h = 0
	}

	return &ColorResult{
		Hex:        strings.ToUpper(cf.Hex()),
		RGBA:       RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:        HSLColor{H: int(math.Round(h)) % 360, S: int(math.Round(s * 100)), L: int(math.Round(l * 100))},
		Background: transparency.IsBackground(c.R, c.G, c.B),
		Light:      transparency.IsLight(c.R, c.G, c.B),
	}, nil
}

// LabeledPoint is a coordinate with an optional label such as "corner" or
// "halo".
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult pairs a sample with its location.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult holds samples in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti samples every point. Any out-of-bounds point fails the
// whole call.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// parseHexColor parses "#RRGGBB" into an opaque color.
func parseHexColor(s string) (color.NRGBA, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := cf.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
