// SPDX-License-Identifier: MIT

package convolve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CustomKernelName names kernels built from user input.
const CustomKernelName = "custom"

// ParseKernel reads a comma-separated list of N² numbers into a kernel.
// MAIN DESCRIPTION:
//   - "0,-1,0, -1,5,-1, 0,-1,0" → 3×3 sharpen.
//
// Implementation:
//   - Stage 1: split on ',', trim spaces, drop empty fields.
//   - Stage 2: validate the count (perfect square, odd side in bounds)
//     before parsing any number.
//   - Stage 3: parse each field as a float and build the kernel.
//
// Errors:
//   - ErrKernelSize (count), ErrKernelParse (not a finite number).
//
// Complexity:
//   - Time O(len(input)).
func ParseKernel(input string) (*Kernel, error) {
	raw := strings.Split(input, ",")
	fields := raw[:0]
	for _, f := range raw {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}

	if _, err := kernelSide(len(fields)); err != nil {
		return nil, fmt.Errorf("ParseKernel: %w", err)
	}

	vals := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(float64(float32(v)), 0) {
			return nil, fmt.Errorf("ParseKernel: field %d %q: %w", i, f, ErrKernelParse)
		}
		vals[i] = float32(v)
	}

	return NewKernel(CustomKernelName, vals)
}
