// SPDX-License-Identifier: MIT

package raster

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvfilter"
	"github.com/katalvlaran/lvfilter/convolve"
	"github.com/katalvlaran/lvfilter/matrix"
)

const opApplyFilter = "ApplyFilter"

// ApplyFilter convolves the red, green and blue channels of img with kernel.
// MAIN DESCRIPTION:
//   - Split → convolve.Convolve per color channel (same kernel, no
//     cross-channel interaction) → Merge. Alpha passes through.
//
// Implementation:
//   - Stage 1: validate kernel; Split img.
//   - Stage 2: convolve the three planes into a separate result buffer,
//     sequentially or one goroutine per channel (WithParallel).
//   - Stage 3: only when all three succeeded, Merge the buffered results.
//
// Errors:
//   - ErrNilImage, matrix.ErrNilMatrix, and any convolve.Convolve error,
//     prefixed with the failing channel name.
//
// Complexity:
//   - Time O(3·⌈H/s⌉·⌈W/s⌉·k²), Space O(W·H) per channel.
func ApplyFilter(img image.Image, kernel matrix.Matrix, opts ...Option) (*image.NRGBA64, error) {
	if err := matrix.ValidateNotNil(kernel); err != nil {
		return nil, fmt.Errorf("%s: %w", opApplyFilter, err)
	}
	o := gatherOptions(opts...)

	ch, err := Split(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApplyFilter, err)
	}

	log := lvfilter.Logger()
	start := time.Now()
	var results [3]*matrix.Dense
	run := func(c Channel) error {
		t0 := time.Now()
		res, err := convolve.Convolve(ch.Color[c], kernel, o.convolve...)
		if err != nil {
			return fmt.Errorf("%s channel: %w", c, err)
		}
		results[c] = res
		log.Debug("raster: channel convolved", "channel", c.String(), "elapsed", time.Since(t0))

		return nil
	}

	if o.parallel {
		var g errgroup.Group
		for c := Red; c <= Blue; c++ {
			c := c
			g.Go(func() error { return run(c) })
		}
		err = g.Wait()
	} else {
		for c := Red; c <= Blue && err == nil; c++ {
			err = run(c)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApplyFilter, err)
	}

	ch.Color = results
	out, err := Merge(ch)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opApplyFilter, err)
	}
	log.Debug("raster: filter applied",
		"width", ch.Bounds.Dx(), "height", ch.Bounds.Dy(),
		"kernel", fmt.Sprintf("%dx%d", kernel.Rows(), kernel.Cols()),
		"parallel", o.parallel, "elapsed", time.Since(start))

	return out, nil
}

// Map applies f to every color sample of img and reassembles the result.
// Alpha passes through. Used by per-pixel filters that do not need a kernel.
//
// Errors: ErrNilImage, matrix.ErrNaNInf if f returns a non-finite value.
func Map(img image.Image, f func(c Channel, v float32) float32) (*image.NRGBA64, error) {
	ch, err := Split(img)
	if err != nil {
		return nil, fmt.Errorf("Map: %w", err)
	}
	for c := Red; c <= Blue; c++ {
		c := c
		if err = ch.Color[c].Apply(func(_, _ int, v float32) float32 { return f(c, v) }); err != nil {
			return nil, fmt.Errorf("Map: %s channel: %w", c, err)
		}
	}

	return Merge(ch)
}
