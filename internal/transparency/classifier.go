package transparency

// isBackground reports whether a color looks like part of a white or
// checkerboard background. Alpha is not consulted.
func (o Options) isBackground(r, g, b uint8) bool {
	if r > o.WhiteMin && g > o.WhiteMin && b > o.WhiteMin {
		return true
	}

	d := int(o.GreyMaxDiff)
	lowSaturation := absDiff(r, g) < d && absDiff(g, b) < d && absDiff(r, b) < d
	return lowSaturation && r > o.GreyMin
}

// isLight reports whether a boundary pixel is light enough to be halo.
func (o Options) isLight(r, g, b uint8) bool {
	return r > o.LightMin && g > o.LightMin && b > o.LightMin
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// IsBackground reports whether (r, g, b) is classified as background under the
// default thresholds: near white (all channels > 240) or light grey (pairwise
// channel differences < 20 and red > 180).
func IsBackground(r, g, b uint8) bool {
	return DefaultOptions().isBackground(r, g, b)
}

// IsLight reports whether (r, g, b) would be shaved as halo under the default
// threshold (all channels > 100).
func IsLight(r, g, b uint8) bool {
	return DefaultOptions().isLight(r, g, b)
}
