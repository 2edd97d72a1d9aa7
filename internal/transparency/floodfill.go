package transparency

import "image"

// FloodFill clears every pixel reachable from the image border through
// background-colored or already transparent pixels, and returns the number of
// pixels whose alpha went from non-zero to zero.
//
// Every border pixel is a seed, not just the corners, so an icon touching the
// edge only loses the border pixels that actually classify as background.
// Reachability is 4-connected. The traversal uses an explicit stack and a
// visited bitmap, so stack depth does not grow with image size.
//
// img is modified in place.
func (s *Stripper) FloodFill(img *image.NRGBA) int {
	if img == nil {
		return 0
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if w <= 0 || h <= 0 {
		return 0
	}

	visited := make([]bool, w*h)
	stack := make([]image.Point, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		stack = append(stack, image.Pt(x, 0), image.Pt(x, h-1))
	}
	for y := 0; y < h; y++ {
		stack = append(stack, image.Pt(0, y), image.Pt(w-1, y))
	}

	cleared := 0
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		i := p.Y*w + p.X
		if visited[i] {
			continue
		}
		visited[i] = true

		o := p.Y*img.Stride + p.X*4
		px := img.Pix[o : o+4 : o+4]
		if px[3] != 0 && !s.opts.isBackground(px[0], px[1], px[2]) {
			continue
		}

		if px[3] != 0 {
			cleared++
		}
		px[0], px[1], px[2], px[3] = 0, 0, 0, 0

		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}

	return cleared
}
