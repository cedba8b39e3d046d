// SPDX-License-Identifier: MIT

// Package convolve - Kernel: validated odd square convolution filter.
package convolve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/lvfilter/matrix"
)

// Kernel side bounds (inclusive).
const (
	MinKernelSize = 3
	MaxKernelSize = 15
)

// Kernel is an immutable, named, odd-sided square matrix of weights.
// The zero value is not usable; build kernels with NewKernel, Builtin,
// ParseKernel or LoadPresets.
type Kernel struct {
	name string
	side int
	m    *matrix.Dense
}

// NewKernel validates values as an N×N row-major kernel and returns it.
// MAIN DESCRIPTION:
//   - Single source of truth for kernel shape: len(values) must be N² with
//     N odd and MinKernelSize ≤ N ≤ MaxKernelSize.
//
// Implementation:
//   - Stage 1: N = integer square root of len(values); check N² == len.
//   - Stage 2: check bounds and oddness.
//   - Stage 3: copy into a Dense (rejects NaN/±Inf).
//
// Errors:
//   - ErrKernelSize (shape), ErrKernelParse (non-finite weight).
//
// Complexity:
//   - Time O(N²), Space O(N²).
func NewKernel(name string, values []float32) (*Kernel, error) {
	side, err := kernelSide(len(values))
	if err != nil {
		return nil, fmt.Errorf("NewKernel(%q): %w", name, err)
	}
	m, err := matrix.NewDenseFromFlat(side, side, values)
	if err != nil {
		return nil, fmt.Errorf("NewKernel(%q): %w: %w", name, ErrKernelParse, err)
	}

	return &Kernel{name: name, side: side, m: m}, nil
}

// kernelSide returns N for a perfect-square count N² within bounds and odd.
func kernelSide(n int) (int, error) {
	side := int(math.Sqrt(float64(n)))
	for side*side > n { // guard against sqrt rounding up
		side--
	}
	for (side+1)*(side+1) <= n {
		side++
	}
	if side*side != n {
		return 0, fmt.Errorf("%d values is not a square: %w", n, ErrKernelSize)
	}
	if side < MinKernelSize || side > MaxKernelSize {
		return 0, fmt.Errorf("side %d outside [%d,%d]: %w", side, MinKernelSize, MaxKernelSize, ErrKernelSize)
	}
	if side%2 == 0 {
		return 0, fmt.Errorf("side %d is even: %w", side, ErrKernelSize)
	}

	return side, nil
}

// Name returns the kernel name ("custom" for parsed input).
func (k *Kernel) Name() string { return k.name }

// Size returns the side length N.
func (k *Kernel) Size() int { return k.side }

// Offset returns the padding radius N/2, which is also the driver stride.
func (k *Kernel) Offset() int { return k.side / 2 }

// Matrix returns a copy of the weights as a Dense; callers may mutate it freely.
func (k *Kernel) Matrix() *matrix.Dense {
	cp, _ := k.m.Clone().(*matrix.Dense)
	return cp
}

// Values returns the weights in row-major order.
func (k *Kernel) Values() []float32 { return k.m.Flat() }

// Weight returns the sum of all weights, computed in float64.
// Blur kernels weigh about 1, edge detectors 0, sharpen kernels 1.
func (k *Kernel) Weight() float64 {
	return floats.Sum(k.float64s())
}

// Normalized returns a kernel scaled so its weights sum to 1.
// Kernels with zero weight (edge detectors) are returned unchanged.
//
// Errors: ErrKernelParse if scaling produced a non-finite value.
func (k *Kernel) Normalized() (*Kernel, error) {
	w := k.Weight()
	if w == 0 {
		return k, nil
	}
	vals := k.float64s()
	floats.Scale(1/w, vals)

	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = float32(v)
	}

	return NewKernel(k.name, out)
}

// Apply convolves one channel with the kernel.
func (k *Kernel) Apply(channel matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	return Convolve(channel, k.m, opts...)
}

// String renders the kernel name and weights for diagnostics.
func (k *Kernel) String() string {
	return fmt.Sprintf("%s %dx%d\n%s", k.name, k.side, k.side, k.m.String())
}

// float64s widens the weights for gonum routines.
func (k *Kernel) float64s() []float64 {
	vals := k.m.Flat()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}

	return out
}
