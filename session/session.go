// SPDX-License-Identifier: MIT

// Package session holds the state of one open image and runs filters on it.
//
// A Document replaces process-wide "current image" state: callers own it and
// pass it explicitly. Every filter reads the source image as loaded by Open,
// never a previous result, and stores its output as the new result; Save
// writes that result.
//
// A Document is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/katalvlaran/lvfilter"
	"github.com/katalvlaran/lvfilter/convolve"
	"github.com/katalvlaran/lvfilter/imageio"
	"github.com/katalvlaran/lvfilter/matrix"
	"github.com/katalvlaran/lvfilter/raster"
	"github.com/katalvlaran/lvfilter/tone"
)

var (
	// ErrNoImage is returned when no valid image is open.
	ErrNoImage = errors.New("session: invalid image or filename")

	// ErrNoResult is returned by Save before any filter produced a result.
	ErrNoResult = errors.New("session: no resulting image")
)

// Option configures a Document.
type Option func(*Document)

// WithFilterOptions forwards options to raster.ApplyFilter for kernel filters.
func WithFilterOptions(opts ...raster.Option) Option {
	return func(d *Document) { d.filterOpts = append(d.filterOpts, opts...) }
}

// WithSaveOptions forwards encoder options to imageio.Save.
func WithSaveOptions(opts ...imageio.Option) Option {
	return func(d *Document) { d.saveOpts = append(d.saveOpts, opts...) }
}

// Document is one image being edited.
type Document struct {
	filename string
	format   imageio.Format
	source   image.Image
	result   image.Image

	filterOpts []raster.Option
	saveOpts   []imageio.Option
}

// New returns an empty, invalid Document.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d
}

// Open loads path as the source image and clears any previous result.
// On failure the document becomes invalid but remembers the filename.
//
// Errors: ErrNoImage wrapping the load failure.
func (d *Document) Open(path string) error {
	d.filename, d.format, d.source, d.result = path, "", nil, nil
	if path == "" {
		return fmt.Errorf("Open: empty filename: %w", ErrNoImage)
	}

	img, format, err := imageio.Load(path)
	if err != nil {
		lvfilter.Logger().Info("session: open failed", "file", path, "err", err)
		return fmt.Errorf("Open(%q): %w: %w", path, ErrNoImage, err)
	}
	d.source, d.format = img, format
	b := img.Bounds()
	lvfilter.Logger().Info("session: opened", "file", path, "format", string(format),
		"width", b.Dx(), "height", b.Dy())

	return nil
}

// Valid reports whether a source image is loaded.
func (d *Document) Valid() bool { return d.source != nil }

// Filename returns the last path passed to Open.
func (d *Document) Filename() string { return d.filename }

// Format returns the detected format of the source image.
func (d *Document) Format() imageio.Format { return d.format }

// Source returns the loaded image, or nil.
func (d *Document) Source() image.Image { return d.source }

// Result returns the last filter output, or nil.
func (d *Document) Result() image.Image { return d.result }

// SetResult replaces the result, e.g. with an externally edited image.
// Passing nil clears it.
func (d *Document) SetResult(img image.Image) {
	d.result = img
}

// ApplyKernel convolves the source image with k.
func (d *Document) ApplyKernel(k *convolve.Kernel) (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("ApplyKernel: %w", ErrNoImage)
	}
	if k == nil {
		return nil, fmt.Errorf("ApplyKernel: nil kernel: %w", matrix.ErrNilMatrix)
	}
	lvfilter.Logger().Debug("session: kernel", "kernel", k.String())

	out, err := raster.ApplyFilter(d.source, k.Matrix(), d.filterOpts...)
	if err != nil {
		return nil, fmt.Errorf("ApplyKernel(%s): %w", k.Name(), err)
	}

	return d.commit("kernel:"+k.Name(), out), nil
}

// ApplyBuiltin runs one of convolve.BuiltinNames.
func (d *Document) ApplyBuiltin(name string) (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("ApplyBuiltin: %w", ErrNoImage)
	}
	k, err := convolve.Builtin(name)
	if err != nil {
		return nil, fmt.Errorf("ApplyBuiltin: %w", err)
	}

	return d.ApplyKernel(k)
}

// ApplyCustom parses input with convolve.ParseKernel and runs it.
// Validity is checked before the kernel text.
func (d *Document) ApplyCustom(input string) (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("ApplyCustom: %w", ErrNoImage)
	}
	k, err := convolve.ParseKernel(input)
	if err != nil {
		return nil, fmt.Errorf("ApplyCustom: %w", err)
	}

	return d.ApplyKernel(k)
}

// Negative inverts the source image.
func (d *Document) Negative() (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("Negative: %w", ErrNoImage)
	}
	out, err := tone.Negative(d.source)
	if err != nil {
		return nil, err
	}

	return d.commit("negative", out), nil
}

// Grayscale converts the source image with the given mode.
func (d *Document) Grayscale(mode tone.Mode) (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("Grayscale: %w", ErrNoImage)
	}
	out, err := tone.Grayscale(d.source, mode)
	if err != nil {
		return nil, err
	}

	return d.commit("grayscale:"+mode.String(), out), nil
}

// Toning tints the Luma grayscale of the source image.
func (d *Document) Toning(tint color.Color) (image.Image, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("Toning: %w", ErrNoImage)
	}
	out, err := tone.Toning(d.source, tint)
	if err != nil {
		return nil, err
	}

	return d.commit("toning", out), nil
}

// Save writes the result to path; the format follows the extension.
//
// Errors: ErrNoResult, imageio errors.
func (d *Document) Save(path string) error {
	if d.result == nil {
		return fmt.Errorf("Save(%q): %w", path, ErrNoResult)
	}
	if err := imageio.Save(path, d.result, d.saveOpts...); err != nil {
		return fmt.Errorf("Save(%q): %w", path, err)
	}
	lvfilter.Logger().Info("session: saved", "file", path)

	return nil
}

// commit stores out as the result and logs the filter.
func (d *Document) commit(filter string, out image.Image) image.Image {
	d.result = out
	lvfilter.Logger().Info("session: filter applied", "filter", filter, "file", d.filename)

	return out
}
