package ascii

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/textart-server/internal/domain"
	"github.com/ironsheep/textart-server/internal/imaging"
)

func newTestConverter(t *testing.T) *Converter {
	t.Helper()
	catalog, err := NewCatalog(nil)
	require.NoError(t, err)
	return NewConverter(catalog, DefaultDefaults(), nil)
}

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func defaultOptions(t *testing.T, c *Converter) Options {
	t.Helper()
	opts, err := c.Options(domain.ConversionRequest{})
	require.NoError(t, err)
	return opts
}

func TestConvert_MidGray(t *testing.T) {
	c := newTestConverter(t)
	img := solidImage(200, 330, color.Gray{Y: 128})

	grid, err := c.Convert(context.Background(), img, defaultOptions(t, c))
	require.NoError(t, err)

	assert.Equal(t, 100, grid.Width)
	assert.Equal(t, 100, grid.Height)
	require.Len(t, grid.Rows, 100)
	for i, row := range grid.Rows {
		require.Equal(t, strings.Repeat("*", 100), row, "row %d", i)
	}
}

func TestConvert_WhiteIsBlank(t *testing.T) {
	c := newTestConverter(t)
	img := solidImage(40, 40, color.White)

	opts := defaultOptions(t, c)
	opts.Width = 10
	grid, err := c.Convert(context.Background(), img, opts)
	require.NoError(t, err)

	assert.Equal(t, 6, grid.Height)
	assert.Equal(t, strings.Repeat(" ", 10), grid.Rows[0])
}

func TestConvert_Invert(t *testing.T) {
	c := newTestConverter(t)
	img := solidImage(40, 40, color.White)

	opts := defaultOptions(t, c)
	opts.Width = 8
	opts.Adjust.Invert = true
	grid, err := c.Convert(context.Background(), img, opts)
	require.NoError(t, err)

	assert.Equal(t, strings.Repeat("@", 8), grid.Rows[0])
}

func TestConvert_CircleMask(t *testing.T) {
	c := newTestConverter(t)
	img := solidImage(100, 100, color.Black)

	opts := defaultOptions(t, c)
	opts.Width = 20
	opts.CircleMask = true
	grid, err := c.Convert(context.Background(), img, opts)
	require.NoError(t, err)

	require.Equal(t, 12, grid.Height)
	first := []rune(grid.Rows[0])
	assert.Equal(t, Blank, first[0], "corner cells are outside the circle")
	assert.Equal(t, Blank, first[19])

	middle := []rune(grid.Rows[grid.Height/2])
	assert.Equal(t, '@', middle[10], "center cell keeps its glyph")
}

func TestConvert_Edges(t *testing.T) {
	c := newTestConverter(t)

	img := solidImage(120, 120, color.White)
	draw.Draw(img, image.Rect(30, 30, 90, 90), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	opts := defaultOptions(t, c)
	opts.Width = 60
	grid, err := c.Convert(context.Background(), img, opts)
	require.NoError(t, err)
	solid := strings.Count(grid.String(), "@")

	opts.Edges = true
	grid, err = c.Convert(context.Background(), img, opts)
	require.NoError(t, err)
	outline := strings.Count(grid.String(), "@")

	assert.Greater(t, outline, 0, "edges produce ink")
	assert.Less(t, outline, solid, "edge mode only draws outlines")
}

func TestConvert_Cancelled(t *testing.T) {
	c := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	grid, err := c.Convert(ctx, solidImage(10, 10, color.Black), defaultOptions(t, c))
	assert.Nil(t, grid)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvert_DegenerateGeometry(t *testing.T) {
	c := newTestConverter(t)

	opts := defaultOptions(t, c)
	_, err := c.Convert(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0)), opts)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))

	opts.Width = 0
	_, err = c.Convert(context.Background(), solidImage(10, 10, color.Black), opts)
	assert.True(t, domain.IsKind(err, domain.KindDegenerateGeometry))
}

func TestOptions_Defaults(t *testing.T) {
	c := newTestConverter(t)
	opts := defaultOptions(t, c)

	assert.Equal(t, 100, opts.Width)
	assert.Equal(t, DefaultThreshold, opts.Threshold)
	assert.Equal(t, "standard", opts.Palette.Name())
	assert.Equal(t, imaging.LuminanceBT601, opts.Luminance)
	assert.Equal(t, imaging.DefaultFilter, opts.Resize.Filter)
	assert.Equal(t, imaging.DefaultAspectCorrection, opts.Resize.AspectCorrection)
	assert.True(t, opts.Adjust.IsZero())
	assert.False(t, opts.Edges)
	assert.False(t, opts.CircleMask)
}

func TestOptions_Overrides(t *testing.T) {
	c := newTestConverter(t)
	width, threshold := 40, 200

	opts, err := c.Options(domain.ConversionRequest{
		Width:      &width,
		Threshold:  &threshold,
		Palette:    "Blocks",
		Luminance:  "rec709",
		Filter:     "nearest",
		Brightness: 10,
		Circle:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, opts.Width)
	assert.Equal(t, 200, opts.Threshold)
	assert.Equal(t, "blocks", opts.Palette.Name())
	assert.Equal(t, imaging.LuminanceRec709, opts.Luminance)
	assert.Equal(t, "nearest", opts.Resize.Filter)
	assert.Equal(t, 10.0, opts.Adjust.Brightness)
	assert.True(t, opts.CircleMask)
}

func TestOptions_Errors(t *testing.T) {
	c := newTestConverter(t)

	intp := func(v int) *int { return &v }

	tests := []struct {
		name string
		req  domain.ConversionRequest
	}{
		{"too wide", domain.ConversionRequest{Width: intp(1001)}},
		{"negative width", domain.ConversionRequest{Width: intp(-1)}},
		{"explicit zero width", domain.ConversionRequest{Width: intp(0)}},
		{"unknown palette", domain.ConversionRequest{Palette: "sparkles"}},
		{"unknown luminance", domain.ConversionRequest{Luminance: "hsv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Options(tt.req)
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
		})
	}
}
