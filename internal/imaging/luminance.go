package imaging

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/textart-server/internal/domain"
)

// LuminanceMode selects the formula that collapses color to brightness.
type LuminanceMode string

const (
	// LuminanceBT601 is Y = 0.299R + 0.587G + 0.114B, rounded. Default.
	LuminanceBT601 LuminanceMode = "bt601"

	// LuminanceRec709 is Y = 0.2126R + 0.7152G + 0.0722B.
	LuminanceRec709 LuminanceMode = "rec709"

	// LuminanceLightness is CIE L* scaled to [0,255].
	LuminanceLightness LuminanceMode = "lightness"
)

// LuminanceModes lists the supported modes, default first.
func LuminanceModes() []LuminanceMode {
	return []LuminanceMode{LuminanceBT601, LuminanceRec709, LuminanceLightness}
}

// ParseLuminanceMode resolves a mode name. The empty string selects the default.
func ParseLuminanceMode(name string) (LuminanceMode, error) {
	if name == "" {
		return LuminanceBT601, nil
	}
	mode := LuminanceMode(strings.ToLower(name))
	for _, m := range LuminanceModes() {
		if m == mode {
			return m, nil
		}
	}
	return "", domain.Errorf("imaging.luminance", domain.KindInvalidInput, "unknown luminance mode %q", name)
}

// ToGrayscale reduces img to one brightness channel in [0,255].
//
// Transparent and translucent pixels are composited over opaque white before
// reduction. The result has the same size as img with its origin at (0,0).
func ToGrayscale(img image.Image, mode LuminanceMode) (*image.Gray, error) {
	if mode == "" {
		mode = LuminanceBT601
	}

	flat := flattenAlpha(img)

	switch mode {
	case LuminanceBT601:
		g := imaging.Grayscale(flat)
		return grayFromChannel(g.Pix, g.Stride, g.Bounds()), nil
	case LuminanceRec709:
		g := effect.GrayscaleWithWeights(flat, 0.2126, 0.7152, 0.0722)
		return grayFromChannel(g.Pix, g.Stride, g.Bounds()), nil
	case LuminanceLightness:
		return lightness(flat), nil
	}
	return nil, domain.Errorf("imaging.luminance", domain.KindInvalidInput, "unknown luminance mode %q", mode)
}

// flattenAlpha composites img over an opaque white canvas of the same size.
func flattenAlpha(img image.Image) *image.NRGBA {
	b := img.Bounds()
	bg := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// grayFromChannel copies the first channel of an already-gray 4-byte
// pixel buffer (NRGBA or RGBA) covering b into a Gray image at the origin.
func grayFromChannel(pix []uint8, stride int, b image.Rectangle) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := y * stride
		di := dst.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			dst.Pix[di+x] = pix[si+x*4]
		}
	}
	return dst
}

func lightness(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c, _ := colorful.MakeColor(src.NRGBAAt(b.Min.X+x, b.Min.Y+y))
			l, _, _ := c.Lab()
			v := math.Round(l * 255)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(v)
		}
	}
	return dst
}
