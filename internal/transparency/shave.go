package transparency

import "image"

// Shave erodes light pixels that border transparent ones, for at most
// iterations passes. It returns the total number of pixels cleared and the
// number of passes that were scanned.
//
// Only interior pixels are considered; the outermost row and column belong to
// the flood fill. Within a pass all candidates are collected before any is
// cleared, so a pixel exposed by this pass is not examined until the next one.
// Shaving stops early once a pass finds nothing to clear.
//
// img is modified in place.
func (s *Stripper) Shave(img *image.NRGBA, iterations int) (removed, passes int) {
	if img == nil || iterations <= 0 {
		return 0, 0
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w < 3 || h < 3 {
		return 0, 0
	}
	stride := img.Stride
	pix := img.Pix

	var scheduled []int
	for passes < iterations {
		passes++
		scheduled = scheduled[:0]

		for y := 1; y < h-1; y++ {
			row := y * stride
			for x := 1; x < w-1; x++ {
				o := row + x*4
				if pix[o+3] == 0 {
					continue
				}
				if !s.opts.isLight(pix[o], pix[o+1], pix[o+2]) {
					continue
				}
				if pix[o-4+3] == 0 || pix[o+4+3] == 0 ||
					pix[o-stride+3] == 0 || pix[o+stride+3] == 0 {
					scheduled = append(scheduled, o)
				}
			}
		}

		if len(scheduled) == 0 {
			break
		}
		for _, o := range scheduled {
			pix[o], pix[o+1], pix[o+2], pix[o+3] = 0, 0, 0, 0
		}
		removed += len(scheduled)
	}

	return removed, passes
}
