package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
)

// Adjustments are the optional tonal tweaks applied before resizing.
// Brightness and Contrast are percentages in [-100, 100]; zero is a no-op.
type Adjustments struct {
	Brightness float64
	Contrast   float64
	Invert     bool
	Sharpen    bool
}

// IsZero reports whether the adjustments would leave the image unchanged.
func (a Adjustments) IsZero() bool {
	return a == Adjustments{}
}

// Apply returns a copy of img with the adjustments applied, in the order
// brightness, contrast, sharpen, invert. When nothing is requested img
// itself is returned.
func Apply(img image.Image, a Adjustments) image.Image {
	if a.IsZero() {
		return img
	}

	out := img
	if a.Brightness != 0 {
		out = adjust.Brightness(out, a.Brightness/100)
	}
	if a.Contrast != 0 {
		out = adjust.Contrast(out, a.Contrast/100)
	}
	if a.Sharpen {
		out = effect.UnsharpMask(out, 1.0, 0.6)
	}
	if a.Invert {
		out = effect.Invert(out)
	}
	return out
}
