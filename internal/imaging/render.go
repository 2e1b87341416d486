package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/textart-server/internal/domain"
)

// Default colors for RenderPNG, light text on a near-black page.
const (
	DefaultForeground = "#DDDDDD"
	DefaultBackground = "#0B0B0B"
)

// RenderOptions controls RenderPNG. Empty colors select the defaults.
type RenderOptions struct {
	Foreground string
	Background string
}

// RenderPNG draws text rows onto a PNG using the fixed 7x13 bitmap face.
//
// Each row becomes one 13-pixel line; the canvas is as wide as the longest
// row. Runes missing from the face render as blank cells.
func RenderPNG(rows []string, opts RenderOptions) ([]byte, error) {
	const op = "imaging.render_png"

	if opts.Foreground == "" {
		opts.Foreground = DefaultForeground
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}
	fg, err := parseHexColor(opts.Foreground)
	if err != nil {
		return nil, domain.Errorf(op, domain.KindInvalidInput, "foreground color %q: %v", opts.Foreground, err)
	}
	bg, err := parseHexColor(opts.Background)
	if err != nil {
		return nil, domain.Errorf(op, domain.KindInvalidInput, "background color %q: %v", opts.Background, err)
	}

	face := basicfont.Face7x13
	cols := 0
	for _, row := range rows {
		if n := utf8.RuneCountInString(row); n > cols {
			cols = n
		}
	}
	if cols == 0 || len(rows) == 0 {
		return nil, domain.Errorf(op, domain.KindInvalidInput, "nothing to render")
	}

	width := cols * face.Advance
	height := len(rows) * face.Height
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  canvas,
		Src:  &image.Uniform{C: fg},
		Face: face,
	}
	for i, row := range rows {
		d.Dot = fixed.P(0, i*face.Height+face.Ascent)
		d.DrawString(row)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
