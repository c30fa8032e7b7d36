// Package imageio loads, saves and resizes images for the nativeblur command.
//
// Decoding goes through github.com/disintegration/imaging so that JPEG
// EXIF orientation is applied on load. PNG, JPEG, GIF, BMP and TIFF can be
// read and written; WebP can be read.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an output extension has no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")

	// ErrInvalidSize is returned for non-positive resize dimensions.
	ErrInvalidSize = errors.New("imageio: invalid size")
)

// DefaultJPEGQuality is used when Save or Encode is given quality <= 0.
const DefaultJPEGQuality = 95

// Load decodes the image at path, auto-detecting the format from content
// and applying EXIF orientation.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(filepath.Clean(path), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageio: load %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return img, nil
}

// DecodeBytes decodes an image from a byte slice.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// FormatFor returns the encoder format for a file name or bare extension
// ("out.png", ".jpg", "tiff").
func FormatFor(name string) (imaging.Format, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = name
	}
	f, err := imaging.FormatFromExtension(strings.ToLower(strings.TrimPrefix(ext, ".")))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// Save encodes img to path, choosing the format from the extension and
// creating missing parent directories. quality applies to JPEG only.
func Save(img image.Image, path string, quality int) error {
	if _, err := FormatFor(path); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	if err := imaging.Save(img, filepath.Clean(path), imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return fmt.Errorf("imageio: save %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the format named by ext.
func Encode(w io.Writer, img image.Image, ext string, quality int) error {
	f, err := FormatFor(ext)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(jpegQuality(quality))); err != nil {
		return fmt.Errorf("imageio: encode %s: %w", f, err)
	}
	return nil
}

// Resize scales img to exactly width x height with a Catmull-Rom filter.
func Resize(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// ParseSize parses "WxH" (e.g. "1920x1080").
func ParseSize(s string) (width, height int, err error) {
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &width, &height); err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return width, height, nil
}

// jpegQuality clamps quality to [1, 100], mapping <= 0 to the default.
func jpegQuality(q int) int {
	if q <= 0 {
		return DefaultJPEGQuality
	}
	if q > 100 {
		return 100
	}
	return q
}
