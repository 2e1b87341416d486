// Package ascii maps grayscale images onto a grid of characters.
//
// The pipeline is Resize → Luminance → Quantize → Assemble. The raster stages
// live in package imaging; this package owns the character side: the ordered
// Palette, the threshold-aware Quantizer, the line assembler and the
// Converter that drives a whole conversion.
//
// # Quantization Policy
//
// A pixel p is blank (a space) when p >= threshold. Otherwise it maps to
//
//	palette[p*(N-1)/255]
//
// using integer floor division, so 0 selects the darkest glyph and the
// lightest glyph is only reached by p == 255 when the threshold is disabled
// (256). The default threshold of 255 turns pure white into blank space.
//
// Every value a Converter uses is passed in explicitly; there is no
// package-level mutable state, and Catalog is read-only once built.
package ascii
