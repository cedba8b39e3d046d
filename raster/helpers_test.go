// SPDX-License-Identifier: MIT

package raster_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/katalvlaran/lvfilter/matrix"
)

// gradient builds a w×h opaque NRGBA image whose channels differ per pixel.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(17 * (x + y)),
				G: uint8(255 - 23*x),
				B: uint8(31 * y),
				A: 255,
			})
		}
	}

	return img
}

// kernelOf builds an n×n Dense kernel from row-major weights or fails the test.
func kernelOf(tb testing.TB, n int, vals []float32) *matrix.Dense {
	tb.Helper()
	k, err := matrix.NewDenseFromFlat(n, n, vals)
	if err != nil {
		tb.Fatalf("kernel: %v", err)
	}

	return k
}

// identity3 leaves every channel unchanged.
var identity3 = []float32{0, 0, 0, 0, 1, 0, 0, 0, 0}

// blur3 is a 3×3 box blur that sums to 1 exactly.
var blur3 = []float32{
	0.0625, 0.125, 0.0625,
	0.125, 0.25, 0.125,
	0.0625, 0.125, 0.0625,
}

// wide widens an 8-bit straight-alpha color without premultiplying.
func wide(c color.NRGBA) color.NRGBA64 {
	return color.NRGBA64{
		R: uint16(c.R) * 0x101, G: uint16(c.G) * 0x101,
		B: uint16(c.B) * 0x101, A: uint16(c.A) * 0x101,
	}
}
