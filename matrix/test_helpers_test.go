// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures and utilities.
//   • Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvfilter/matrix"
)

// imgArr is the 4×4 reference image used across the engine's fixtures.
var imgArr = []float32{
	25, 80, 110, 5,
	80, 100, 120, 7,
	92, 60, 30, 25,
	93, 97, 23, 6,
}

// hide WRAPS any Matrix to hide its concrete type from type assertions.
// Use hide{X} in tests to force the non-*Dense (fallback) paths.
type hide struct{ matrix.Matrix }

// mustDense ALLOCATES an r×c *Dense or fails the test (fatal on error).
func mustDense(tb testing.TB, r, c int) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		tb.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// mustFlat builds an r×c *Dense from a row-major slice or fails the test.
func mustFlat(tb testing.TB, r, c int, vals []float32) *matrix.Dense {
	tb.Helper()
	m, err := matrix.NewDenseFromFlat(r, c, vals)
	if err != nil {
		tb.Fatalf("NewDenseFromFlat(%d,%d): %v", r, c, err)
	}

	return m
}

// fillDenseRand fills m with deterministic values in [0,1).
func fillDenseRand(tb testing.TB, m *matrix.Dense, seed int64) {
	tb.Helper()
	rng := rand.New(rand.NewSource(seed))
	err := m.Apply(func(_, _ int, _ float32) float32 { return rng.Float32() })
	if err != nil {
		tb.Fatalf("Apply: %v", err)
	}
}
