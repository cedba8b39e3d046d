// SPDX-License-Identifier: MIT

package convolve

import (
	"fmt"
	"sort"
)

// Built-in kernel names.
const (
	Emboss       = "emboss"
	Sharpen      = "sharpen"
	BoxBlur      = "box-blur"
	GaussianBlur = "gaussian-blur"
	Laplacian    = "laplacian"
	SobelLeft    = "sobel-left"
)

// builtins holds the 3×3 weight tables, row-major.
var builtins = map[string][]float32{
	Emboss:  {-2, -1, 0, -1, 1, 1, 0, 1, 2},
	Sharpen: {0, -1, 0, -1, 5, -1, 0, -1, 0},
	BoxBlur: {
		0.111, 0.111, 0.111,
		0.111, 0.111, 0.111,
		0.111, 0.111, 0.111,
	},
	GaussianBlur: {
		1.0 / 16, 2.0 / 16, 1.0 / 16,
		2.0 / 16, 4.0 / 16, 2.0 / 16,
		1.0 / 16, 2.0 / 16, 1.0 / 16,
	},
	Laplacian: {-1, -1, -1, -1, 8, -1, -1, -1, -1},
	SobelLeft: {1, 0, -1, 2, 0, -2, 1, 0, -1},
}

// Builtin returns a fresh copy of the named built-in kernel.
//
// Errors: ErrUnknownKernel.
func Builtin(name string) (*Kernel, error) {
	vals, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("Builtin(%q): %w", name, ErrUnknownKernel)
	}

	return NewKernel(name, vals)
}

// BuiltinNames lists the built-in kernel names in lexical order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
