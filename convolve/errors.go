// SPDX-License-Identifier: MIT
// Package convolve: sentinel error set.
// Matrix-level failures (InvalidDimensions, IndexOutOfBounds, DimensionMismatch)
// are the matrix package sentinels, propagated with context; this file only
// adds kernel-level conditions.

package convolve

import "errors"

var (
	// ErrKernelSize is returned when a kernel is not an odd square with a side
	// in [MinKernelSize, MaxKernelSize], or a flat list is not a perfect square.
	ErrKernelSize = errors.New("convolve: invalid kernel size")

	// ErrKernelParse is returned when a custom kernel value is not a finite number.
	ErrKernelParse = errors.New("convolve: kernel parsing error")

	// ErrUnknownKernel is returned by Builtin for an unregistered name.
	ErrUnknownKernel = errors.New("convolve: unknown kernel")

	// ErrPresetFormat is returned by LoadPresets for malformed preset documents.
	ErrPresetFormat = errors.New("convolve: invalid preset file")
)
