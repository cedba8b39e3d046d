// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise product (Hadamard) and full reduction (Total) used by the
//     convolution reducer: Σ window[i][j]*kernel[i][j].
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1, which coincide for row-major data).
//   - Products are materialized as float32 before accumulation, so no fused
//     multiply-add can change rounding between architectures.
//
// AI-Hints:
//   - Prefer passing *Dense to unlock the flat-slice fast path.

package matrix

import "fmt"

const (
	opHadamard = "Hadamard"
	opTotal    = "Total"
)

// matrixErrorf wraps an error with an operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Hadamard returns a new matrix with out[i,j] = a[i,j] * b[i,j].
// MAIN DESCRIPTION:
//   - Element-wise product of two equally shaped matrices; operands untouched.
//
// Implementation:
//   - Stage 1: ValidateBinarySameShape(a, b); allocate result Dense.
//   - Stage 2: Fast-path if both are *Dense - single flat loop 0..n-1.
//     Otherwise, fallback At/Set with fixed i→j order.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (result policy).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Hadamard(a, b Matrix) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	rows, cols := a.Rows(), a.Cols()
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opHadamard, err)
	}

	// Fast-path: both operands are *Dense → operate on flat slices directly.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var p float32
			for idx := range res.data {
				p = float32(da.data[idx] * db.data[idx]) // explicit rounding, no FMA
				if res.validateNaNInf && isNonFinite(p) {
					return nil, matrixErrorf(opHadamard, denseErrorf(ctxSet, idx/cols, idx%cols, ErrNaNInf))
				}
				res.data[idx] = p
			}

			return res, nil
		}
	}

	// Fallback: generic interface loop using At/Set (shape already validated).
	var i, j int
	var av, bv float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
			if err = res.Set(i, j, float32(av*bv)); err != nil {
				return nil, matrixErrorf(opHadamard, err)
			}
		}
	}

	return res, nil
}

// Total returns Σ m[i,j] accumulated in float32, row-major, left-to-right,
// top-to-bottom. The order is part of the contract: fixtures compare results
// bit-for-bit.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(1).
func Total(m Matrix) (float32, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opTotal, err)
	}

	var sum float32
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			sum += v
		}

		return sum, nil
	}

	var i, j int
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, err := m.At(i, j)
			if err != nil {
				return 0, matrixErrorf(opTotal, err)
			}
			sum += v
		}
	}

	return sum, nil
}
