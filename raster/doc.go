// SPDX-License-Identifier: MIT

// Package raster is the channel pipeline between decoded images and the
// convolution engine.
//
// What:
//   - Split: image.Image → three height×width channel matrices (R, G, B) with
//     non-premultiplied values normalized to [0,1], plus alpha.
//   - Merge: channels → *image.NRGBA64, clamping each value into [0,1].
//   - ApplyFilter: Split, convolve each color channel with the same kernel,
//     Merge. Alpha is passed through untouched.
//
// Why:
//   - The convolution core knows nothing about colors or pixel formats; this
//     package owns that translation in one place.
//
// Guarantees:
//   - Output bounds equal input bounds (origin preserved).
//   - Channels never interact: the red result depends on red input only.
//   - Abort-before-commit: all three channel results are buffered before
//     anything is assembled; any channel error yields (nil, err).
//   - The convolution core never clamps. Merge is the single clamping point
//     and reports how many samples it clamped at slog Warn level.
//
// Concurrency:
//   - WithParallel(true) convolves the three channels on separate goroutines
//     (golang.org/x/sync/errgroup). Results are bit-identical to the
//     sequential path.
package raster
