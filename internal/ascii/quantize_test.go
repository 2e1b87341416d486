package ascii

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/textart-server/internal/domain"
)

func mustPalette(t *testing.T, chars string) Palette {
	t.Helper()
	p, err := NewPalette("test", chars)
	require.NoError(t, err)
	return p
}

func TestQuantizer_StandardPalette(t *testing.T) {
	q, err := NewQuantizer(mustPalette(t, "@#$%&*+=-:."), DefaultThreshold)
	require.NoError(t, err)

	tests := []struct {
		pixel uint8
		want  rune
	}{
		{0, '@'},
		{25, '@'},
		{26, '#'},
		{128, '*'},
		{254, ':'},
		{255, ' '},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, q.Quantize(tt.pixel), "pixel %d", tt.pixel)
	}
}

func TestQuantizer_IndexInBounds(t *testing.T) {
	const glyphs = "abcdefghijklmnopqrst"

	for n := 2; n <= len(glyphs); n++ {
		p := mustPalette(t, glyphs[:n])
		for _, threshold := range []int{0, 128, 255, ThresholdDisabled} {
			q, err := NewQuantizer(p, threshold)
			require.NoError(t, err)

			prev := -1
			for v := 0; v <= 255; v++ {
				i := q.Index(uint8(v))
				if v >= threshold {
					assert.Equal(t, -1, i, "n=%d threshold=%d pixel=%d", n, threshold, v)
					assert.Equal(t, Blank, q.Quantize(uint8(v)))
					continue
				}
				require.GreaterOrEqual(t, i, 0)
				require.Less(t, i, n)
				require.GreaterOrEqual(t, i, prev, "index must not decrease")
				prev = i

				r := q.Quantize(uint8(v))
				assert.True(t, p.Contains(r), "glyph %q not in palette", r)
			}
		}
	}
}

func TestQuantizer_Thresholds(t *testing.T) {
	p := mustPalette(t, "@#$%&*+=-:.")

	q, err := NewQuantizer(p, ThresholdDisabled)
	require.NoError(t, err)
	assert.Equal(t, '.', q.Quantize(255), "disabled threshold maps white to the lightest glyph")

	q, err = NewQuantizer(p, 254)
	require.NoError(t, err)
	assert.Equal(t, ':', q.Quantize(253))
	assert.Equal(t, Blank, q.Quantize(254))

	q, err = NewQuantizer(p, 0)
	require.NoError(t, err)
	assert.Equal(t, Blank, q.Quantize(0))
}

func TestNewQuantizer_Errors(t *testing.T) {
	p := mustPalette(t, "#.")

	_, err := NewQuantizer(p, -1)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = NewQuantizer(p, 257)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))

	_, err = NewQuantizer(Palette{}, 255)
	assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
}

func TestQuantizeImage_ScanOrder(t *testing.T) {
	q, err := NewQuantizer(mustPalette(t, "#."), DefaultThreshold)
	require.NoError(t, err)

	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	copy(gray.Pix, []uint8{0, 200, 255, 255, 0, 10})

	flat := q.QuantizeImage(gray)
	assert.Equal(t, "## ", string(flat[:3]))
	assert.Equal(t, " ##", string(flat[3:]))
}

func TestQuantizeImage_SubImage(t *testing.T) {
	q, err := NewQuantizer(mustPalette(t, "#."), ThresholdDisabled)
	require.NoError(t, err)

	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range gray.Pix {
		gray.Pix[i] = 255
	}
	gray.SetGray(2, 2, color.Gray{Y: 0})

	sub := gray.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	out := string(q.QuantizeImage(sub))
	assert.Equal(t, 4, len([]rune(out)))
	assert.Equal(t, 1, strings.Count(out, "#"))
}
