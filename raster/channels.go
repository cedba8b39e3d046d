// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/katalvlaran/lvfilter"
	"github.com/katalvlaran/lvfilter/matrix"
)

// Channel selects one color component.
type Channel int

// Color channels in pixel order.
const (
	Red Channel = iota
	Green
	Blue
)

// String returns the lower-case channel name.
func (c Channel) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// maxSample is the 16-bit full-scale value used for normalization.
const maxSample = 0xffff

// Channels is an image decomposed into normalized float32 planes.
// Every plane is Height×Width; element (y,x) is pixel (Min.X+x, Min.Y+y).
type Channels struct {
	Bounds image.Rectangle
	Color  [3]*matrix.Dense // indexed by Channel
	Alpha  *matrix.Dense
}

// Channel returns the plane for c, or nil for an unknown channel.
func (ch *Channels) Channel(c Channel) *matrix.Dense {
	if c < Red || c > Blue {
		return nil
	}

	return ch.Color[c]
}

// Split decomposes img into red, green, blue and alpha planes.
// MAIN DESCRIPTION:
//   - Each pixel is converted with color.NRGBA64Model (straight alpha) and
//     every 16-bit sample s becomes float32(s)/65535.
//
// Errors:
//   - ErrNilImage, matrix.ErrInvalidDimensions (empty bounds).
//
// Complexity:
//   - Time O(W·H), Space O(4·W·H).
func Split(img image.Image) (*Channels, error) {
	if img == nil {
		return nil, fmt.Errorf("Split: %w", ErrNilImage)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	ch := &Channels{Bounds: b}
	var err error
	for c := range ch.Color {
		if ch.Color[c], err = matrix.NewDense(h, w); err != nil {
			return nil, fmt.Errorf("Split: %w", err)
		}
	}
	if ch.Alpha, err = matrix.NewDense(h, w); err != nil {
		return nil, fmt.Errorf("Split: %w", err)
	}

	// Fast path for the pipeline's own output type.
	if n, ok := img.(*image.NRGBA64); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := n.NRGBA64At(b.Min.X+x, b.Min.Y+y)
				if err = ch.set(y, x, px); err != nil {
					return nil, fmt.Errorf("Split: %w", err)
				}
			}
		}

		return ch, nil
	}

	// 8-bit straight alpha: widen without a premultiply round trip.
	if n, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				px := n.NRGBAAt(b.Min.X+x, b.Min.Y+y)
				wide := color.NRGBA64{
					R: uint16(px.R) * 0x101, G: uint16(px.G) * 0x101,
					B: uint16(px.B) * 0x101, A: uint16(px.A) * 0x101,
				}
				if err = ch.set(y, x, wide); err != nil {
					return nil, fmt.Errorf("Split: %w", err)
				}
			}
		}

		return ch, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, _ := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			if err = ch.set(y, x, px); err != nil {
				return nil, fmt.Errorf("Split: %w", err)
			}
		}
	}

	return ch, nil
}

// set stores one pixel's normalized samples at (y,x).
func (ch *Channels) set(y, x int, px color.NRGBA64) error {
	samples := [4]uint16{px.R, px.G, px.B, px.A}
	planes := [4]*matrix.Dense{ch.Color[Red], ch.Color[Green], ch.Color[Blue], ch.Alpha}
	for k, p := range planes {
		if err := p.Set(y, x, float32(samples[k])/maxSample); err != nil {
			return err
		}
	}

	return nil
}

// Merge assembles the planes back into a 16-bit straight-alpha image.
// MAIN DESCRIPTION:
//   - Inverse of Split. Values outside [0,1] are clamped; the number of
//     clamped samples is logged at Warn level.
//
// Errors:
//   - ErrNilImage (nil set or plane), matrix.ErrDimensionMismatch (plane shape
//     differs from Bounds).
//
// Complexity:
//   - Time O(W·H), Space O(W·H).
func Merge(ch *Channels) (*image.NRGBA64, error) {
	if ch == nil || ch.Alpha == nil {
		return nil, fmt.Errorf("Merge: %w", ErrNilImage)
	}
	w, h := ch.Bounds.Dx(), ch.Bounds.Dy()
	planes := [4]*matrix.Dense{ch.Color[Red], ch.Color[Green], ch.Color[Blue], ch.Alpha}
	flats := [4][]float32{}
	for k, p := range planes {
		if p == nil {
			return nil, fmt.Errorf("Merge: plane %d: %w", k, ErrNilImage)
		}
		if p.Rows() != h || p.Cols() != w {
			return nil, fmt.Errorf("Merge: plane %d is %dx%d, bounds %dx%d: %w",
				k, p.Rows(), p.Cols(), h, w, matrix.ErrDimensionMismatch)
		}
		flats[k] = p.Flat()
	}

	out := image.NewNRGBA64(ch.Bounds)
	clamped := 0
	var s [4]uint16
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			for k := range flats {
				v, c := quantize(flats[k][idx])
				s[k] = v
				if c {
					clamped++
				}
			}
			out.SetNRGBA64(ch.Bounds.Min.X+x, ch.Bounds.Min.Y+y,
				color.NRGBA64{R: s[0], G: s[1], B: s[2], A: s[3]})
		}
	}
	if clamped > 0 {
		lvfilter.Logger().Warn("raster: samples clamped into [0,1]",
			"clamped", clamped, "pixels", w*h)
	}

	return out, nil
}

// quantize maps v∈[0,1] to a 16-bit sample, reporting whether v was clamped.
// NaN maps to 0 and counts as clamped.
func quantize(v float32) (uint16, bool) {
	switch {
	case math.IsNaN(float64(v)):
		return 0, true
	case v <= 0:
		return 0, v < 0
	case v >= 1:
		return maxSample, v > 1
	default:
		return uint16(v*maxSample + 0.5), false
	}
}
