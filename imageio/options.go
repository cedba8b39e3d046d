// SPDX-License-Identifier: MIT

package imageio

import (
	"image/jpeg"
	"image/png"

	"golang.org/x/image/tiff"
)

// Encoder defaults.
const (
	DefaultJPEGQuality = jpeg.DefaultQuality
	DefaultGIFColors   = 256
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective encoder configuration.
type Options struct {
	jpegQuality     int
	gifColors       int
	pngCompression  png.CompressionLevel
	tiffCompression tiff.CompressionType
}

// WithJPEGQuality sets JPEG quality, clamped to [1,100].
func WithJPEGQuality(q int) Option {
	return func(o *Options) { o.jpegQuality = min(max(q, 1), 100) }
}

// WithGIFColors sets the GIF palette size, clamped to [1,256].
func WithGIFColors(n int) Option {
	return func(o *Options) { o.gifColors = min(max(n, 1), 256) }
}

// WithBestCompression favors size over speed for PNG and switches TIFF to Deflate.
func WithBestCompression() Option {
	return func(o *Options) {
		o.pngCompression = png.BestCompression
		o.tiffCompression = tiff.Deflate
	}
}

// gatherOptions resolves opts on top of defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{
		jpegQuality:     DefaultJPEGQuality,
		gifColors:       DefaultGIFColors,
		pngCompression:  png.DefaultCompression,
		tiffCompression: tiff.Uncompressed,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
