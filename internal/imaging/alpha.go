package imaging

import (
	"image"
	"math"
)

// AlphaStats counts pixels by alpha value.
type AlphaStats struct {
	Transparent int `json:"transparent"` // alpha == 0
	Partial     int `json:"partial"`     // 0 < alpha < 255
	Opaque      int `json:"opaque"`      // alpha == 255

	// TransparentPercent is Transparent as a percentage of all pixels,
	// rounded to one decimal place.
	TransparentPercent float64 `json:"transparent_percent"`

	// BorderTransparent is true when every pixel on the outermost ring is
	// fully transparent, the usual sign of an icon that was already cleaned.
	BorderTransparent bool `json:"border_transparent"`
}

// AlphaCoverage scans img and counts its pixels by alpha.
func AlphaCoverage(img image.Image) AlphaStats {
	var stats AlphaStats
	b := img.Bounds()
	if b.Empty() {
		return stats
	}

	stats.BorderTransparent = true
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := alphaAt(img, x, y)
			switch a {
			case 0:
				stats.Transparent++
			case 255:
				stats.Opaque++
			default:
				stats.Partial++
			}
			onBorder := x == b.Min.X || x == b.Max.X-1 || y == b.Min.Y || y == b.Max.Y-1
			if onBorder && a != 0 {
				stats.BorderTransparent = false
			}
		}
	}

	total := float64(b.Dx() * b.Dy())
	stats.TransparentPercent = math.Round(float64(stats.Transparent)/total*1000) / 10
	return stats
}

func alphaAt(img image.Image, x, y int) uint8 {
	if n, ok := img.(*image.NRGBA); ok {
		return n.Pix[n.PixOffset(x, y)+3]
	}
	_, _, _, a := img.At(x, y).RGBA()
	return uint8(a >> 8)
}
