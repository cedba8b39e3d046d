// SPDX-License-Identifier: MIT
// Package convolve_test contains shared fixtures for the engine tests.

package convolve_test

import (
	"testing"

	"github.com/katalvlaran/lvfilter/matrix"
)

// imgArr is the 4×4 reference channel.
var imgArr = []float32{
	25, 80, 110, 5,
	80, 100, 120, 7,
	92, 60, 30, 25,
	93, 97, 23, 6,
}

// kernel3 is the 3×3 sharpen kernel used by the reference fixture.
var kernel3 = []float32{0, -1, 0, -1, 5, -1, 0, -1, 0}

// sharpened is the expected Convolve(imgArr, kernel3) output.
var sharpened = []float32{
	-35, 165, 345, -92,
	183, 160, 353, -115,
	227, -19, -78, 82,
	276, 309, -18, -18,
}

// hide masks the concrete *Dense type to force generic code paths.
type hide struct{ matrix.Matrix }

// mustFlat builds an r×c *Dense from a row-major slice or fails the test.
func mustFlat(tb testing.TB, r, c int, vals []float32) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromFlat(r, c, vals)
	if err != nil {
		tb.Fatalf("NewDenseFromFlat(%d,%d): %v", r, c, err)
	}

	return m
}

// at reads (i,j) or fails the test.
func at(tb testing.TB, m matrix.Matrix, i, j int) float32 {
	tb.Helper()
	v, err := m.At(i, j)
	if err != nil {
		tb.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// centerOnly returns an n×n kernel with weight w at the center, 0 elsewhere.
func centerOnly(n int, w float32) []float32 {
	vals := make([]float32, n*n)
	vals[(n/2)*n+n/2] = w

	return vals
}

// ones returns n*n ones.
func ones(n int) []float32 {
	vals := make([]float32, n*n)
	for i := range vals {
		vals[i] = 1
	}

	return vals
}
