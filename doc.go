// Package lvfilter applies spatial filters to raster images via 2D convolution
// and simple per-pixel color transforms.
//
// What is inside?
//
//	A small, deterministic image-filtering toolkit:
//		• matrix/   — Dense float32 grid with bounds-checked access
//		• convolve/ — zero padding, window extraction, reduction, the driver,
//		              odd square kernels (built-in, parsed, JSON presets)
//		• raster/   — per-channel pipeline: image → R,G,B matrices → image
//		• tone/     — negative, grayscale and toning transforms
//		• imageio/  — load/save PNG, JPEG, GIF, BMP, TIFF (WebP decode)
//		• session/  — one open document at a time, explicit state
//
// Convolution stride:
//
//	The driver advances by the kernel offset (side/2), not by one pixel.
//	For 3×3 kernels every pixel is visited; for larger kernels the skipped
//	pixels keep their source values. convolve.WithFullCoverage opts into a
//	unit stride.
//
// Logging:
//
//	Silent by default; call SetLogger with any *slog.Logger to enable it.
//
//	go install github.com/katalvlaran/lvfilter/cmd/lvfilter@latest
package lvfilter
