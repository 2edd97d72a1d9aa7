package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/nfnt/resize"
)

const (
	// DefaultPreviewSize is the longest side of a preview when none is given.
	DefaultPreviewSize = 256

	// BackdropChecker renders transparency as a grey checkerboard.
	BackdropChecker = "checker"

	checkerCell = 8
)

var (
	checkerLight = color.NRGBA{255, 255, 255, 255}
	checkerDark  = color.NRGBA{204, 204, 204, 255}
)

// PreviewResult is a thumbnail of an image composited over a backdrop so that
// transparent areas and leftover halo are visible.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Backdrop    string `json:"backdrop"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview scales img to fit within maxSize x maxSize (never upscaling) and
// draws it over backdrop, which is either BackdropChecker or a "#RRGGBB"
// color. An empty backdrop means BackdropChecker; maxSize <= 0 means
// DefaultPreviewSize.
//
// A dark solid backdrop such as "#000000" makes a white halo stand out.
func Preview(img image.Image, maxSize int, backdrop string) (*PreviewResult, error) {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}
	if backdrop == "" {
		backdrop = BackdropChecker
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot preview an empty image")
	}

	thumb := resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
	tb := thumb.Bounds()

	canvas := image.NewNRGBA(image.Rect(0, 0, tb.Dx(), tb.Dy()))
	if backdrop == BackdropChecker {
		fillChecker(canvas)
	} else {
		c, err := parseHexColor(backdrop)
		if err != nil {
			return nil, err
		}
		draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	}
	draw.Draw(canvas, canvas.Bounds(), thumb, tb.Min, draw.Over)

	encoded, err := EncodePNGBase64(canvas)
	if err != nil {
		return nil, err
	}

	return &PreviewResult{
		Width:       tb.Dx(),
		Height:      tb.Dy(),
		Backdrop:    backdrop,
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}

func fillChecker(img *image.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := checkerLight
			if (x/checkerCell+y/checkerCell)%2 == 1 {
				c = checkerDark
			}
			img.SetNRGBA(x, y, c)
		}
	}
}
