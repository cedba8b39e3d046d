// SPDX-License-Identifier: MIT

// Package raster: functional configuration for ApplyFilter.
package raster

import "github.com/katalvlaran/lvfilter/convolve"

// DefaultParallel keeps channel convolutions on the calling goroutine.
const DefaultParallel = false

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	parallel bool              // DefaultParallel
	convolve []convolve.Option // forwarded to convolve.Convolve
}

// WithParallel toggles one goroutine per color channel.
func WithParallel(on bool) Option {
	return func(o *Options) { o.parallel = on }
}

// WithConvolveOptions forwards options to every per-channel convolve.Convolve call.
//
// AI-Hints:
//   - raster.WithConvolveOptions(convolve.WithFullCoverage()) for unit stride.
func WithConvolveOptions(opts ...convolve.Option) Option {
	return func(o *Options) { o.convolve = append(o.convolve, opts...) }
}

// gatherOptions resolves opts on top of defaults. Nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := Options{parallel: DefaultParallel}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
