// Package imaging provides the raster stages of the character-art pipeline.
//
// This package decodes uploaded payloads, rescales them to a character grid,
// reduces them to a single brightness channel and applies the optional tonal
// adjustments offered to callers. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the
// top-left corner, X increases rightward, and Y increases downward.
//
// # Immutability
//
// Every stage returns a freshly allocated image. No function in this package
// mutates its input, so the stages may be called concurrently on the same
// source image from different requests.
//
// # Aspect-Ratio Correction
//
// A monospace character cell is taller than it is wide. Resize compensates by
// dividing the target height by a correction factor (1.65 by default), so a
// square photo comes out roughly square when printed:
//
//	targetHeight = round(targetWidth * srcHeight / srcWidth / correction)
//
// A computed height of zero is raised to one row. Zero-sized sources and
// non-positive target widths are rejected as degenerate geometry.
//
// # Luminance
//
// ToGrayscale supports three formulas (see LuminanceMode). The default,
// LuminanceBT601, is the ITU-R 601-2 weighting 0.299R + 0.587G + 0.114B.
// Transparent pixels are composited over white first, so transparent regions
// read as blank space.
//
// # Error Handling
//
// Functions return *domain.OpError values for invalid inputs such as:
//   - Payloads that are not a supported image format
//   - Source images with zero width or height
//   - Non-positive target widths or oversize targets
//   - Unknown filter or luminance names
package imaging
