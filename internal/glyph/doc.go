// Package glyph renders text as large multi-line character art.
//
// Two font families are supported:
//
//   - FIGlet fonts (.flf), rendered by github.com/mbndr/figlet4go. The
//     built-in "standard" and "larry3d" fonts are always available; any
//     *.flf file in the configured font directory is added under its base
//     name.
//   - Raster fonts ("basic", "gomono", "goregular"), drawn with
//     golang.org/x/image/font onto a bitmap and folded into half-block
//     characters (▀ ▄ █), two pixel rows per output row.
//
// Font names are matched case-insensitively. An unknown font is always
// reported as domain.KindInvalidFont; the renderer never falls back to a
// default on its own.
package glyph
