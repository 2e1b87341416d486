package glyph

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// rasterSize is the point size used for the scalable Go fonts.
const rasterSize = 16

// inkThreshold is the coverage above which a pixel counts as ink.
const inkThreshold = 127

// loadRasterFaces returns the bitmap and TrueType faces keyed by name.
func loadRasterFaces() (map[string]font.Face, error) {
	faces := map[string]font.Face{
		"basic": basicfont.Face7x13,
	}

	ttfs := map[string][]byte{
		"gomono":    gomono.TTF,
		"goregular": goregular.TTF,
	}
	for name, data := range ttfs {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    rasterSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create face %s: %w", name, err)
		}
		faces[name] = face
	}
	return faces, nil
}

// renderRaster draws one line of text with face and folds the bitmap into
// half-block rows. The output is rectangular: every row has the same
// number of runes.
func renderRaster(text string, face font.Face) string {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 || height <= 0 {
		return ""
	}
	if height%2 == 1 {
		height++
	}

	canvas := image.NewGray(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	return halfBlocks(canvas)
}

// halfBlocks converts a coverage mask into rows of ▀ ▄ █ and spaces. Each
// output row covers two pixel rows; the image height must be even.
func halfBlocks(img *image.Gray) string {
	b := img.Bounds()
	rows := make([]string, 0, b.Dy()/2)

	var sb strings.Builder
	for y := b.Min.Y; y+1 < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.GrayAt(x, y).Y > inkThreshold
			bottom := img.GrayAt(x, y+1).Y > inkThreshold
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}
