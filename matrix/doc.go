// Package matrix provides the dense numeric grid used by the convolution engine.
//
// What & Why:
//
//	Dense is a row-major buffer of float32 values with explicit dimensions.
//	Image channels, padded frames, kernel windows and kernels themselves are
//	all Dense values. Every public accessor is bounds-checked and returns a
//	sentinel error instead of panicking, so the engine can propagate
//	InvalidDimensions / IndexOutOfBounds / DimensionMismatch to its caller.
//
// Numeric policy:
//
//	By default NewDense, NewDenseFromFlat, Set and Apply also reject NaN and
//	±Inf with ErrNaNInf, so an overflowing reduction fails instead of
//	reaching an image. WithNoValidateNaNInf disables the check and leaves
//	InvalidDimensions / IndexOutOfBounds as the only failures of these calls.
//
// Ownership:
//
//	A Dense is owned by the scope that created it. Clone produces an
//	independent deep copy; mutating the copy never affects the original.
//
// Complexity:
//
//	Rows/Cols/At/Set run in O(1). Clone, Equal, Flat, Hadamard and Total run
//	in O(rows*cols).
package matrix
