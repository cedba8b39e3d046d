// SPDX-License-Identifier: MIT

// Package convolve - padding, windowing, reduction and the per-channel driver.
//
// Determinism:
//   - Fixed loop orders everywhere (rows outer, columns inner).
//   - Reduce materializes the product matrix before summing it row-major, so
//     results are reproducible bit-for-bit across architectures.
//
// Complexity quicksheet (R×C channel, k×k kernel, stride s):
//   - Pad: O((R+2o)(C+2o)); ExtractWindow: O(k²); Reduce: O(k²);
//   - Convolve: O(⌈R/s⌉·⌈C/s⌉·k²) time, O((R+2o)(C+2o) + R·C) space.

package convolve

import (
	"fmt"

	"github.com/katalvlaran/lvfilter/matrix"
)

const (
	opPad      = "Pad"
	opWindow   = "ExtractWindow"
	opReduce   = "Reduce"
	opConvolve = "Convolve"
)

// convolveErrorf wraps an error with an operation tag.
func convolveErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Pad returns a new matrix with a zero frame of width offset around source.
// MAIN DESCRIPTION:
//   - Result is (R+2·offset)×(C+2·offset); result[i][j] = source[i-offset][j-offset]
//     for i∈[offset, offset+R), j∈[offset, offset+C); every other cell is 0.
//
// Implementation:
//   - Stage 1: validate source non-nil and offset ≥ 0.
//   - Stage 2: allocate a zero-initialized Dense of the enlarged shape.
//   - Stage 3: copy source into the centered region (Dense fast-path via Do).
//
// Behavior highlights:
//   - source is never modified.
//   - offset is meant to be kernelSide/2; only odd sides give a centered pad.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrInvalidDimensions (negative offset).
//
// Complexity:
//   - Time O((R+2o)(C+2o)), Space O((R+2o)(C+2o)).
func Pad(source matrix.Matrix, offset int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(source); err != nil {
		return nil, convolveErrorf(opPad, err)
	}
	if offset < 0 {
		return nil, convolveErrorf(opPad, fmt.Errorf("offset %d: %w", offset, matrix.ErrInvalidDimensions))
	}

	rows, cols := source.Rows(), source.Cols()
	padded, err := matrix.NewDense(rows+2*offset, cols+2*offset)
	if err != nil {
		return nil, convolveErrorf(opPad, err)
	}

	// Dense fast-path: visit the flat buffer once, no bounds checks on reads.
	if d, ok := source.(*matrix.Dense); ok {
		d.Do(func(i, j int, v float32) bool {
			err = padded.Set(i+offset, j+offset, v)
			return err == nil
		})
		if err != nil {
			return nil, convolveErrorf(opPad, err)
		}

		return padded, nil
	}

	// Generic fallback via At/Set.
	var i, j int
	var v float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = source.At(i, j); err != nil {
				return nil, convolveErrorf(opPad, err)
			}
			if err = padded.Set(i+offset, j+offset, v); err != nil {
				return nil, convolveErrorf(opPad, err)
			}
		}
	}

	return padded, nil
}

// ExtractWindow copies the size×size neighborhood anchored at (anchorRow, anchorCol).
// MAIN DESCRIPTION:
//   - result[a][b] = padded[anchorRow+a][anchorCol+b] for a,b ∈ [0,size).
//
// Implementation:
//   - Stage 1: validate padded non-nil.
//   - Stage 2: Dense fast-path via Dense.Window; otherwise At-based copy.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrInvalidDimensions (size < 1),
//     matrix.ErrIndexOutOfBounds (window reaches past padded).
//
// Complexity:
//   - Time O(size²), Space O(size²).
func ExtractWindow(padded matrix.Matrix, anchorRow, anchorCol, size int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(padded); err != nil {
		return nil, convolveErrorf(opWindow, err)
	}
	if d, ok := padded.(*matrix.Dense); ok {
		w, err := d.Window(anchorRow, anchorCol, size, size)
		if err != nil {
			return nil, convolveErrorf(opWindow, err)
		}

		return w, nil
	}

	w, err := matrix.NewDense(size, size)
	if err != nil {
		return nil, convolveErrorf(opWindow, err)
	}
	var a, b int
	var v float32
	for a = 0; a < size; a++ {
		for b = 0; b < size; b++ {
			if v, err = padded.At(anchorRow+a, anchorCol+b); err != nil {
				return nil, convolveErrorf(opWindow, err)
			}
			if err = w.Set(a, b, v); err != nil {
				return nil, convolveErrorf(opWindow, err)
			}
		}
	}

	return w, nil
}

// Reduce returns Σ window[i][j]*kernel[i][j].
// MAIN DESCRIPTION:
//   - Element-wise product matrix, then a row-major float32 sum of it.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (shapes differ),
//     matrix.ErrNaNInf (a product overflowed).
//
// Complexity:
//   - Time O(k²), Space O(k²) for the product matrix.
func Reduce(window, kernel matrix.Matrix) (float32, error) {
	prod, err := matrix.Hadamard(window, kernel)
	if err != nil {
		return 0, convolveErrorf(opReduce, err)
	}
	sum, err := matrix.Total(prod)
	if err != nil {
		return 0, convolveErrorf(opReduce, err)
	}

	return sum, nil
}

// Convolve filters one channel with kernel and returns a new channel of the same shape.
// MAIN DESCRIPTION:
//   - Pads the channel once, then for every visited (i,j) writes
//     Reduce(ExtractWindow(padded, i, j, k), kernel) into a copy of the channel.
//
// Implementation:
//   - Stage 1: validate image non-nil and kernel square; offset = kernel.Rows()/2.
//   - Stage 2: padded = Pad(image, offset); out = deep copy of image.
//   - Stage 3: visit i, j from 0 with stride = offset (1 when offset is 0 or
//     WithFullCoverage is set); reduce and store into out.
//
// Behavior highlights:
//   - image is never modified; positions not visited keep their source value.
//   - The first failure aborts the pass and is returned; no partial result.
//   - A non-square kernel is rejected up front with matrix.ErrDimensionMismatch.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, matrix.ErrIndexOutOfBounds,
//     matrix.ErrNaNInf (non-finite result).
//
// Complexity:
//   - Time O(⌈R/s⌉·⌈C/s⌉·k²), Space O((R+2o)(C+2o)).
//
// AI-Hints:
//   - Channels are independent; run the three color channels concurrently
//     (see raster.WithParallel).
func Convolve(image, kernel matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(image); err != nil {
		return nil, convolveErrorf(opConvolve, err)
	}
	if err := matrix.ValidateSquareNonNil(kernel); err != nil {
		return nil, convolveErrorf(opConvolve, err)
	}
	o := gatherOptions(opts...)

	size := kernel.Rows()
	offset := size / 2
	step := offset
	if o.fullCoverage || step < 1 {
		step = 1
	}

	padded, err := Pad(image, offset)
	if err != nil {
		return nil, convolveErrorf(opConvolve, err)
	}
	out, err := denseCopy(image)
	if err != nil {
		return nil, convolveErrorf(opConvolve, err)
	}

	rows, cols := image.Rows(), image.Cols()
	var i, j int
	var w *matrix.Dense
	var v float32
	for i = 0; i < rows; i += step {
		for j = 0; j < cols; j += step {
			if w, err = ExtractWindow(padded, i, j, size); err != nil {
				return nil, fmt.Errorf("%s(%d,%d): %w", opConvolve, i, j, err)
			}
			if v, err = Reduce(w, kernel); err != nil {
				return nil, fmt.Errorf("%s(%d,%d): %w", opConvolve, i, j, err)
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("%s(%d,%d): %w", opConvolve, i, j, err)
			}
		}
	}

	return out, nil
}

// denseCopy returns an independent *Dense with the contents of m.
func denseCopy(m matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := m.(*matrix.Dense); ok {
		if cp, ok := d.Clone().(*matrix.Dense); ok {
			return cp, nil
		}
	}

	rows, cols := m.Rows(), m.Cols()
	out, err := matrix.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, err
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
