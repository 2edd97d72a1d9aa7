package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropResult contains a cropped region encoded as base64 PNG.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts the region (x1,y1)-(x2,y2) and scales it by scale.
//
// Enlargements use nearest-neighbor sampling so individual fringe pixels stay
// crisp; reductions use Lanczos. Alpha is preserved.
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))

	if scale > 0 && scale != 1.0 {
		filter := imaging.Lanczos
		if scale > 1.0 {
			filter = imaging.NearestNeighbor
		}
		w := int(float64(cropped.Bounds().Dx()) * scale)
		h := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, w, h, filter)
	}

	encoded, err := EncodePNGBase64(cropped)
	if err != nil {
		return nil, err
	}

	return &CropResult{
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: encoded,
		MimeType:    "image/png",
	}, nil
}
