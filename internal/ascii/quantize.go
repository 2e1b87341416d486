package ascii

import (
	"image"

	"github.com/ironsheep/textart-server/internal/domain"
)

const (
	// DefaultThreshold blanks pure white only.
	DefaultThreshold = 255

	// ThresholdDisabled never blanks; pixel 255 maps to the lightest glyph.
	ThresholdDisabled = 256
)

// Blank is emitted for pixels at or above the threshold.
const Blank = ' '

// Quantizer maps brightness values onto a palette.
type Quantizer struct {
	palette   Palette
	threshold int
}

// NewQuantizer validates its inputs; threshold must be within [0, 256].
func NewQuantizer(p Palette, threshold int) (*Quantizer, error) {
	if p.Len() < 2 {
		return nil, domain.Errorf("ascii.quantizer", domain.KindInvalidInput,
			"palette needs at least 2 characters, got %d", p.Len())
	}
	if threshold < 0 || threshold > ThresholdDisabled {
		return nil, domain.Errorf("ascii.quantizer", domain.KindInvalidInput,
			"threshold must be within [0,%d], got %d", ThresholdDisabled, threshold)
	}
	return &Quantizer{palette: p, threshold: threshold}, nil
}

// Index returns the palette index for pixel, or -1 when the pixel is blank.
func (q *Quantizer) Index(pixel uint8) int {
	if int(pixel) >= q.threshold {
		return -1
	}
	n := q.palette.Len()
	i := int(pixel) * (n - 1) / 255
	if i < 0 {
		i = 0
	} else if i > n-1 {
		i = n - 1
	}
	return i
}

// Quantize returns the glyph for pixel, or Blank.
func (q *Quantizer) Quantize(pixel uint8) rune {
	i := q.Index(pixel)
	if i < 0 {
		return Blank
	}
	return q.palette.At(i)
}

// QuantizeImage quantizes every pixel of gray in row-major scan order.
func (q *Quantizer) QuantizeImage(gray *image.Gray) []rune {
	b := gray.Bounds()
	out := make([]rune, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := gray.Pix[gray.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, q.Quantize(row[x]))
		}
	}
	return out
}
