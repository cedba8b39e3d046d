// SPDX-License-Identifier: MIT

// Package imageio loads and saves raster images for the filter pipeline.
//
// Supported formats:
//   - PNG, JPEG, GIF (standard library codecs);
//   - BMP, TIFF (golang.org/x/image);
//   - WebP (golang.org/x/image, decode only).
//
// The format for Save is chosen from the file extension; Decode detects the
// format from content.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when the image format is not supported.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("imageio: empty data")
)

// Format names an image encoding, matching the names image.Decode reports.
type Format string

// Known formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

// CanEncode reports whether Encode supports f.
func (f Format) CanEncode() bool {
	switch f {
	case PNG, JPEG, GIF, BMP, TIFF:
		return true
	default:
		return false
	}
}

// FormatFromPath maps a file extension to a Format.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".jpg", ".jpeg":
		return JPEG, nil
	case ".gif":
		return GIF, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("imageio: extension of %q: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads and decodes the image at path, detecting the format from content.
func Load(path string) (image.Image, Format, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, "", fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes an in-memory image.
func LoadBytes(data []byte) (image.Image, Format, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}

	return Decode(bytes.NewReader(data))
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("imageio: decode: %w: %w", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}

	return img, Format(name), nil
}

// Save encodes img into path using the format implied by its extension.
// A failed encode leaves no partial file behind.
func Save(path string, img image.Image, opts ...Option) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !format.CanEncode() {
		return fmt.Errorf("imageio: encode %s: %w", format, ErrUnsupportedFormat)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(f, format, img, opts...); err != nil {
		_ = f.Close()
		_ = os.Remove(filepath.Clean(path))
		return err
	}

	return f.Close()
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, format Format, img image.Image, opts ...Option) error {
	if img == nil {
		return fmt.Errorf("imageio: encode %s: nil image: %w", format, ErrEmptyData)
	}
	o := gatherOptions(opts...)

	var err error
	switch format {
	case PNG:
		enc := png.Encoder{CompressionLevel: o.pngCompression}
		err = enc.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: o.jpegQuality})
	case GIF:
		err = gif.Encode(w, img, &gif.Options{NumColors: o.gifColors})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: o.tiffCompression, Predictor: o.tiffCompression != tiff.Uncompressed})
	default:
		return fmt.Errorf("imageio: encode %s: %w", format, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", format, err)
	}

	return nil
}
