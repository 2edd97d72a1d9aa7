package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createInMemoryImage creates an NRGBA image filled with c.
func createInMemoryImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createIconImage creates a white-background icon with a dark square in the
// middle, the typical input of the background stripper.
func createIconImage(size int) *image.NRGBA {
	img := createInMemoryImage(size, size, color.White)
	for y := size / 4; y < size*3/4; y++ {
		for x := size / 4; x < size*3/4; x++ {
			img.Set(x, y, color.NRGBA{30, 30, 120, 255})
		}
	}
	return img
}

// writeTestPNG encodes img into dir/name and returns the path.
func writeTestPNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}
