// SPDX-License-Identifier: MIT

package raster_test

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/convolve"
	"github.com/katalvlaran/lvfilter/matrix"
	"github.com/katalvlaran/lvfilter/raster"
)

// TestApplyFilterIdentity keeps every pixel, alpha and bounds.
func TestApplyFilterIdentity(t *testing.T) {
	src := gradient(6, 5)
	src.SetNRGBA(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	out, err := raster.ApplyFilter(src, kernelOf(t, 3, identity3))
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), out.Bounds())
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			require.Equal(t, wide(src.NRGBAAt(x, y)), out.NRGBA64At(x, y))
		}
	}
}

// TestApplyFilterChannelIndependence compares every output plane with a
// standalone convolution of the matching input plane.
func TestApplyFilterChannelIndependence(t *testing.T) {
	src := gradient(7, 6)
	k := kernelOf(t, 3, blur3)

	out, err := raster.ApplyFilter(src, k)
	require.NoError(t, err)

	in, err := raster.Split(src)
	require.NoError(t, err)
	want := &raster.Channels{Bounds: in.Bounds, Alpha: in.Alpha}
	for c := raster.Red; c <= raster.Blue; c++ {
		want.Color[c], err = convolve.Convolve(in.Channel(c), k)
		require.NoError(t, err)
	}
	expected, err := raster.Merge(want)
	require.NoError(t, err)
	require.Equal(t, expected.Pix, out.Pix)

	// Changing green must not move red or blue.
	other := gradient(7, 6)
	for i := 1; i < len(other.Pix); i += 4 {
		other.Pix[i] = 255 - other.Pix[i]
	}
	out2, err := raster.ApplyFilter(other, k)
	require.NoError(t, err)
	for i := 0; i < len(out.Pix); i += 8 {
		require.Equal(t, out.Pix[i:i+2], out2.Pix[i:i+2], "red at %d", i)
		require.Equal(t, out.Pix[i+4:i+6], out2.Pix[i+4:i+6], "blue at %d", i)
	}
}

// TestApplyFilterParallel produces the same bits as the sequential path.
func TestApplyFilterParallel(t *testing.T) {
	src := gradient(16, 9)
	k := kernelOf(t, 5, []float32{
		1, 0, 0, 0, -1,
		0, 1, 0, -1, 0,
		0, 0, 1, 0, 0,
		0, -1, 0, 1, 0,
		-1, 0, 0, 0, 1,
	})

	for _, extra := range [][]raster.Option{
		nil,
		{raster.WithConvolveOptions(convolve.WithFullCoverage())},
	} {
		seq, err := raster.ApplyFilter(src, k, extra...)
		require.NoError(t, err)
		par, err := raster.ApplyFilter(src, k, append(extra, raster.WithParallel(true))...)
		require.NoError(t, err)
		require.Equal(t, seq.Pix, par.Pix)
	}
}

// TestApplyFilterStrideOption forwards convolve options per channel.
func TestApplyFilterStrideOption(t *testing.T) {
	src := gradient(4, 4)
	vals := make([]float32, 25)
	vals[12] = 0.5
	k := kernelOf(t, 5, vals)

	offset, err := raster.ApplyFilter(src, k)
	require.NoError(t, err)
	full, err := raster.ApplyFilter(src, k, raster.WithConvolveOptions(convolve.WithFullCoverage()))
	require.NoError(t, err)

	// (1,1) is skipped by the offset stride and keeps its value.
	require.Equal(t, wide(src.NRGBAAt(1, 1)), offset.NRGBA64At(1, 1))
	require.NotEqual(t, offset.At(1, 1), full.At(1, 1))
	// (0,0) is visited by both.
	require.Equal(t, offset.At(0, 0), full.At(0, 0))
}

// TestApplyFilterAbortBeforeCommit fails on red only and returns no image.
func TestApplyFilterAbortBeforeCommit(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255   // red saturated
		src.Pix[i+3] = 255 // opaque
	}
	k := kernelOf(t, 3, []float32{0, 0, 0, 0, math.MaxFloat32, math.MaxFloat32, 0, 0, 0})

	for _, par := range []bool{false, true} {
		out, err := raster.ApplyFilter(src, k, raster.WithParallel(par))
		require.ErrorIs(t, err, matrix.ErrNaNInf)
		require.ErrorContains(t, err, "red channel")
		require.Nil(t, out)
	}
}

// TestApplyFilterErrors covers nil inputs and non-square kernels.
func TestApplyFilterErrors(t *testing.T) {
	_, err := raster.ApplyFilter(gradient(2, 2), nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = raster.ApplyFilter(nil, kernelOf(t, 3, identity3))
	require.ErrorIs(t, err, raster.ErrNilImage)

	rect, err := matrix.NewDense(3, 1)
	require.NoError(t, err)
	_, err = raster.ApplyFilter(gradient(2, 2), rect)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestMap inverts colors and keeps alpha.
func TestMap(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 51, A: 7})

	out, err := raster.Map(src, func(_ raster.Channel, v float32) float32 { return 1 - v })
	require.NoError(t, err)
	require.Equal(t, color.NRGBA64{R: 0, G: 0xffff, B: 0xffff - 51*0x101, A: 7 * 0x101}, out.NRGBA64At(0, 0))

	_, err = raster.Map(src, func(raster.Channel, float32) float32 { return float32(math.Inf(1)) })
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
