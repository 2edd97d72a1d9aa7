package transparency

import (
	"image"

	"github.com/disintegration/imaging"
)

// Stripper removes icon backgrounds using a fixed set of Options.
//
// A Stripper is immutable after construction and safe for concurrent use on
// distinct images.
type Stripper struct {
	opts Options
}

// New creates a Stripper with the given options. A negative ShaveIterations
// is treated as zero.
func New(opts Options) *Stripper {
	if opts.ShaveIterations < 0 {
		opts.ShaveIterations = 0
	}
	return &Stripper{opts: opts}
}

// NewDefault creates a Stripper using DefaultOptions.
func NewDefault() *Stripper {
	return New(DefaultOptions())
}

// Options returns the options the Stripper was created with.
func (s *Stripper) Options() Options {
	return s.opts
}

// IsBackground reports whether (r, g, b) is background under s's thresholds.
func (s *Stripper) IsBackground(r, g, b uint8) bool {
	return s.opts.isBackground(r, g, b)
}

// IsLight reports whether (r, g, b) is shaveable under s's threshold.
func (s *Stripper) IsLight(r, g, b uint8) bool {
	return s.opts.isLight(r, g, b)
}

// Report summarizes a single Process run.
type Report struct {
	// Width and Height of the processed image.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Filled counts pixels made transparent by the flood fill.
	Filled int `json:"filled"`

	// Shaved counts pixels made transparent by the edge shaver.
	Shaved int `json:"shaved"`

	// Passes is the number of shaver passes scanned, including a final pass
	// that found nothing to remove.
	Passes int `json:"passes"`

	// Remaining counts pixels with non-zero alpha after processing.
	Remaining int `json:"remaining"`
}

// Process strips the background from img and returns the result.
//
// If img is an *image.NRGBA it is modified in place and returned; otherwise it
// is converted to a new *image.NRGBA first. A nil image yields an empty one.
func (s *Stripper) Process(img image.Image) *image.NRGBA {
	out, _ := s.ProcessReport(img)
	return out
}

// ProcessReport is Process but also returns what each phase did.
func (s *Stripper) ProcessReport(img image.Image) (*image.NRGBA, Report) {
	dst := toNRGBA(img)

	r := Report{
		Width:  dst.Rect.Dx(),
		Height: dst.Rect.Dy(),
	}
	r.Filled = s.FloodFill(dst)
	r.Shaved, r.Passes = s.Shave(dst, s.opts.ShaveIterations)
	r.Remaining = countOpaque(dst)

	return dst, r
}

// Process strips the background from img using DefaultOptions.
func Process(img image.Image) *image.NRGBA {
	return NewDefault().Process(img)
}

func toNRGBA(img image.Image) *image.NRGBA {
	switch src := img.(type) {
	case nil:
		return image.NewNRGBA(image.Rectangle{})
	case *image.NRGBA:
		if src == nil {
			return image.NewNRGBA(image.Rectangle{})
		}
		return src
	}
	return imaging.Clone(img)
}

func countOpaque(img *image.NRGBA) int {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 3; i < len(row); i += 4 {
			if row[i] != 0 {
				n++
			}
		}
	}
	return n
}
