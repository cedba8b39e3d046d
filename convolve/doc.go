// Package convolve is the convolution engine: zero padding, kernel-sized
// window extraction, window·kernel reduction and the driver that runs them
// over one image channel.
//
// Algorithm:
//
//	offset  = kernel.Rows() / 2            (integer division)
//	padded  = Pad(channel, offset)         (zero frame of width offset)
//	for i := 0; i < rows; i += offset      (stride = offset, see below)
//	  for j := 0; j < cols; j += offset
//	    out[i][j] = Reduce(ExtractWindow(padded, i, j, kernel.Rows()), kernel)
//
// Stride:
//
//	The driver steps by the offset, not by one. With a 3×3 kernel every
//	position is visited. With 5×5 and larger kernels the positions stepped
//	over keep their source values. This is the engine's established output
//	and fixtures depend on it; WithFullCoverage switches to a unit stride.
//	An offset of 0 (1×1 kernels) always uses a unit stride.
//
// Values:
//
//	Results are not clamped; a sharpen kernel applied to [0,1] data can
//	produce values outside [0,1]. Quantisation back to color is the caller's
//	job (raster.Merge clamps).
//
// Kernels:
//
//	Kernel is the single place where kernel shape is validated: square,
//	odd side in [MinKernelSize, MaxKernelSize]. Built-in kernels, user input
//	(ParseKernel) and JSON presets (LoadPresets) all go through NewKernel.
//	The low-level functions (Pad, ExtractWindow, Reduce, Convolve) accept any
//	matrix.Matrix and report shape problems through matrix sentinels.
package convolve
