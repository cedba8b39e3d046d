// SPDX-License-Identifier: MIT

// Package tone provides per-pixel color filters that need no kernel:
// negative, grayscale and toning.
//
// All filters work on straight-alpha samples normalized to [0,1], leave alpha
// untouched and return a new *image.NRGBA64; the source image is not modified.
package tone

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvfilter/matrix"
	"github.com/katalvlaran/lvfilter/raster"
)

var (
	// ErrUnknownMode is returned by ParseMode for an unrecognized grayscale mode.
	ErrUnknownMode = errors.New("tone: unknown grayscale mode")

	// ErrBadColor is returned by ParseColor for malformed hex colors.
	ErrBadColor = errors.New("tone: invalid color")
)

// Mode selects how Grayscale combines red, green and blue.
type Mode int

const (
	// Average weighs the three channels equally (0.333 each).
	Average Mode = iota
	// Luma uses the Rec. 601 weights 0.299, 0.587, 0.114.
	Luma
	// Desaturate takes the midpoint of the smallest and largest channel.
	Desaturate
)

var modeNames = [...]string{Average: "average", Luma: "luma", Desaturate: "desaturate"}

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	if m < Average || m > Desaturate {
		return fmt.Sprintf("mode(%d)", int(m))
	}

	return modeNames[m]
}

// ParseMode maps "average", "luma" or "desaturate" (any case) to a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Mode(m), nil
		}
	}

	return 0, fmt.Errorf("ParseMode(%q): %w", s, ErrUnknownMode)
}

// Negative returns img with every color sample v replaced by 1-v.
func Negative(img image.Image) (*image.NRGBA64, error) {
	out, err := raster.Map(img, func(_ raster.Channel, v float32) float32 { return 1 - v })
	if err != nil {
		return nil, fmt.Errorf("Negative: %w", err)
	}

	return out, nil
}

// Grayscale returns img with r=g=b set to the mode's mix of the source channels.
// Unknown modes fall back to Luma.
func Grayscale(img image.Image, mode Mode) (*image.NRGBA64, error) {
	ch, err := raster.Split(img)
	if err != nil {
		return nil, fmt.Errorf("Grayscale: %w", err)
	}
	if err = gray(ch, mode); err != nil {
		return nil, fmt.Errorf("Grayscale: %w", err)
	}

	return raster.Merge(ch)
}

// Toning converts img to Luma grayscale and multiplies each channel by the
// matching component of tint.
func Toning(img image.Image, tint color.Color) (*image.NRGBA64, error) {
	if tint == nil {
		return nil, fmt.Errorf("Toning: nil tint: %w", ErrBadColor)
	}
	ch, err := raster.Split(img)
	if err != nil {
		return nil, fmt.Errorf("Toning: %w", err)
	}
	if err = gray(ch, Luma); err != nil {
		return nil, fmt.Errorf("Toning: %w", err)
	}

	t, _ := color.NRGBA64Model.Convert(tint).(color.NRGBA64)
	factors := [3]float32{float32(t.R) / 0xffff, float32(t.G) / 0xffff, float32(t.B) / 0xffff}
	for c := raster.Red; c <= raster.Blue; c++ {
		f := factors[c]
		if err = ch.Channel(c).Apply(func(_, _ int, v float32) float32 { return f * v }); err != nil {
			return nil, fmt.Errorf("Toning: %w", err)
		}
	}

	return raster.Merge(ch)
}

// gray overwrites the three color planes of ch with their mode mix.
func gray(ch *raster.Channels, mode Mode) error {
	r, g, b := ch.Channel(raster.Red), ch.Channel(raster.Green), ch.Channel(raster.Blue)
	mixed, err := matrix.NewDense(r.Rows(), r.Cols())
	if err != nil {
		return err
	}

	rv, gv, bv := r.Flat(), g.Flat(), b.Flat()
	err = mixed.Apply(func(i, j int, _ float32) float32 {
		idx := i*r.Cols() + j
		return mix(mode, rv[idx], gv[idx], bv[idx])
	})
	if err != nil {
		return err
	}

	ch.Color[raster.Red] = mixed
	ch.Color[raster.Green], _ = mixed.Clone().(*matrix.Dense)
	ch.Color[raster.Blue], _ = mixed.Clone().(*matrix.Dense)

	return nil
}

// mix combines one pixel's channels.
func mix(mode Mode, r, g, b float32) float32 {
	switch mode {
	case Average:
		return float32(r*0.333) + float32(g*0.333) + float32(b*0.333)
	case Desaturate:
		return (min(r, g, b) + max(r, g, b)) / 2
	default:
		return float32(r*0.299) + float32(g*0.587) + float32(b*0.114)
	}
}

// ParseColor reads "#rrggbb", "rrggbb" or the short "#rgb" form as an opaque color.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("ParseColor(%q): %w", s, ErrBadColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("ParseColor(%q): %w", s, ErrBadColor)
	}

	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
