package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "icon.png", createInMemoryImage(100, 80, color.NRGBA{255, 0, 0, 255}))

	img1, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if b := img1.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x80", b.Dx(), b.Dy())
	}

	img2, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Fatal("Load should fail for non-existent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := NewImageCache().Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "icon.png", createInMemoryImage(10, 10, color.White))

	first, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Rewrite the file with different dimensions.
	writeTestPNG(t, dir, "icon.png", createInMemoryImage(20, 20, color.White))
	cache.Evict(path)

	second, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load after Evict failed: %v", err)
	}
	if first == second {
		t.Error("Load after Evict returned the stale image")
	}
	if second.Bounds().Dx() != 20 {
		t.Errorf("Load after Evict: got width %d, want 20", second.Bounds().Dx())
	}

	// Evicting an unknown path is a no-op.
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := writeTestPNG(t, t.TempDir(), "icon.png", createInMemoryImage(50, 50, color.Gray{128}))

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	img := createInMemoryImage(20, 10, color.NRGBA{0, 0, 0, 0})
	for x := 0; x < 5; x++ {
		img.Set(x+5, 5, color.NRGBA{255, 255, 255, 255})
	}
	img.Set(12, 5, color.NRGBA{255, 255, 255, 128})
	path := writeTestPNG(t, t.TempDir(), "icon.png", img)

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 20 || info.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if !info.HasAlpha {
		t.Error("HasAlpha should be true for an NRGBA PNG")
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
	if info.Alpha.Opaque != 5 || info.Alpha.Partial != 1 || info.Alpha.Transparent != 194 {
		t.Errorf("Alpha: got %+v, want 5 opaque, 1 partial, 194 transparent", info.Alpha)
	}
	if !info.Alpha.BorderTransparent {
		t.Error("BorderTransparent should be true")
	}
}

func TestLoadImageInfo_FormatFromDecoder(t *testing.T) {
	// A JPEG saved with a .png extension is still reported as jpeg.
	path := filepath.Join(t.TempDir(), "misnamed.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	f.Close()

	info, err := LoadImageInfo(NewImageCache(), path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "jpeg" {
		t.Errorf("Format: got %s, want jpeg", info.Format)
	}
	if info.HasAlpha {
		t.Error("HasAlpha should be false for JPEG")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	_, err := LoadImageInfo(NewImageCache(), "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestCloneNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 10, 10))
	src.Set(5, 5, color.RGBA{10, 20, 30, 255})

	clone := CloneNRGBA(src)

	if clone.Bounds() != image.Rect(0, 0, 5, 5) {
		t.Errorf("bounds: got %v, want origin-based 5x5", clone.Bounds())
	}
	if got := clone.NRGBAAt(0, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("pixel: got %v", got)
	}

	clone.SetNRGBA(0, 0, color.NRGBA{})
	if src.RGBAAt(5, 5).A != 255 {
		t.Error("modifying the clone changed the source")
	}
}

func TestDecode(t *testing.T) {
	path := writeTestPNG(t, t.TempDir(), "icon.png", createIconImage(16))

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 16 {
		t.Errorf("width: got %d, want 16", img.Bounds().Dx())
	}
}

func TestDecodeReader(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, createIconImage(12)); err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	img, format, err := DecodeReader(&buf)
	if err != nil {
		t.Fatalf("DecodeReader failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format: got %s, want png", format)
	}
	if img.Bounds().Dx() != 12 {
		t.Errorf("width: got %d, want 12", img.Bounds().Dx())
	}

	if _, _, err := DecodeReader(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for garbage input")
	}
}
