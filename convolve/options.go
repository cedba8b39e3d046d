// SPDX-License-Identifier: MIT

// Package convolve: functional configuration for Convolve.
package convolve

// DefaultFullCoverage keeps the offset stride of the driver.
const DefaultFullCoverage = false

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	fullCoverage bool // DefaultFullCoverage
}

// WithFullCoverage makes the driver visit every position (stride 1).
//
// Behavior highlights:
//   - Identical output for 3×3 kernels.
//   - Changes every 5×5+ result: skipped positions are now convolved too.
func WithFullCoverage() Option {
	return func(o *Options) { o.fullCoverage = true }
}

// WithOffsetStride restores the default offset stride.
func WithOffsetStride() Option {
	return func(o *Options) { o.fullCoverage = false }
}

// gatherOptions resolves opts on top of defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{fullCoverage: DefaultFullCoverage}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
