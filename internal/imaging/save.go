package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// ErrNotPNG is returned when an in-place replacement targets a file that is
// not a PNG. Writing PNG bytes under another extension would confuse every
// later consumer of the file.
var ErrNotPNG = errors.New("target is not a .png file")

// ErrBackupExists is returned by ReplaceWithBackup when path+BackupSuffix is
// already present. Replacing again would lose the untouched original.
var ErrBackupExists = errors.New("backup already exists")

// BackupSuffix is appended to the original file name by ReplaceWithBackup.
const BackupSuffix = ".backup"

// pngEncoder returns a lossless, best-compression PNG encoder.
func pngEncoder() imgio.Encoder {
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	return func(w io.Writer, img image.Image) error {
		return enc.Encode(w, img)
	}
}

// SavePNG writes img to path as PNG, creating or truncating the file.
func SavePNG(path string, img image.Image) error {
	if err := imgio.Save(path, img, pngEncoder()); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := pngEncoder()(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodePNGBase64 returns img as base64-encoded PNG bytes.
func EncodePNGBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ReplaceWithBackup replaces the PNG at path with img, keeping the original.
//
// The new image is first written next to the original as "<name>_fixed.png".
// Only after that succeeds is the original renamed to path+BackupSuffix and
// the fixed file renamed into place. If a backup already exists nothing is
// written and ErrBackupExists is returned. On failure the original file is
// left at path whenever possible.
//
// Returns the backup path.
func ReplaceWithBackup(path string, img image.Image) (string, error) {
	ext := filepath.Ext(path)
	if !strings.EqualFold(ext, ".png") {
		return "", fmt.Errorf("%w: %s", ErrNotPNG, path)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	backup := path + BackupSuffix
	if _, err := os.Lstat(backup); err == nil {
		return "", fmt.Errorf("%w: %s", ErrBackupExists, backup)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat backup: %w", err)
	}

	fixed := strings.TrimSuffix(path, ext) + "_fixed" + ext
	if err := SavePNG(fixed, img); err != nil {
		return "", err
	}

	if err := os.Rename(path, backup); err != nil {
		_ = os.Remove(fixed)
		return "", fmt.Errorf("failed to back up original: %w", err)
	}
	if err := os.Rename(fixed, path); err != nil {
		_ = os.Rename(backup, path)
		_ = os.Remove(fixed)
		return "", fmt.Errorf("failed to move fixed image into place: %w", err)
	}

	return backup, nil
}
