// SPDX-License-Identifier: MIT

// Package matrix: converters between Dense (float32) and gonum's mat.Dense (float64).
// Use them to hand a channel or kernel to gonum routines (norms, SVD, plotting
// pipelines) and bring results back.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ToGonum widens m into a new gonum *mat.Dense with the same shape.
//
// Errors: ErrNilMatrix.
// Complexity: Time O(r*c), Space O(r*c).
func ToGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToGonum", err)
	}
	r, c := m.Rows(), m.Cols()
	data := make([]float64, r*c)
	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			data[idx] = float64(v)
		}
	} else {
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, matrixErrorf("ToGonum", err)
				}
				data[i*c+j] = float64(v)
			}
		}
	}

	return mat.NewDense(r, c, data), nil
}

// FromGonum narrows any gonum matrix into a new Dense, rounding each value to
// the nearest float32.
//
// Errors: ErrNilMatrix, ErrInvalidDimensions (empty source), ErrNaNInf (policy).
// Complexity: Time O(r*c), Space O(r*c).
func FromGonum(src mat.Matrix, opts ...Option) (*Dense, error) {
	if src == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := src.Dims()
	out, err := NewDense(r, c, opts...)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if err = out.Set(i, j, float32(src.At(i, j))); err != nil {
				return nil, fmt.Errorf("FromGonum: %w", err)
			}
		}
	}

	return out, nil
}
