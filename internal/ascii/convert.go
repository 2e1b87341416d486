package ascii

import (
	"context"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/ironsheep/textart-server/internal/domain"
	"github.com/ironsheep/textart-server/internal/imaging"
)

// Defaults are the configured fallbacks for fields a request leaves empty,
// plus the hard limits every request must respect.
type Defaults struct {
	Width            int
	MaxWidth         int
	MaxHeight        int
	Threshold        int
	Palette          string
	Luminance        string
	Filter           string
	AspectCorrection float64
}

// DefaultDefaults mirrors the reference behavior: 100 columns, the standard
// palette and pure white rendered blank.
func DefaultDefaults() Defaults {
	return Defaults{
		Width:            100,
		MaxWidth:         1000,
		MaxHeight:        1000,
		Threshold:        DefaultThreshold,
		Palette:          DefaultPalette,
		Luminance:        string(imaging.LuminanceBT601),
		Filter:           imaging.DefaultFilter,
		AspectCorrection: imaging.DefaultAspectCorrection,
	}
}

// Options is a fully resolved conversion.
type Options struct {
	Width      int
	Threshold  int
	Palette    Palette
	Luminance  imaging.LuminanceMode
	Resize     imaging.ResizeOptions
	Adjust     imaging.Adjustments
	Edges      bool
	CircleMask bool
}

// Converter runs the image → character grid pipeline. It holds only
// read-only configuration and may be shared between goroutines.
type Converter struct {
	palettes *Catalog
	defaults Defaults
	logger   *slog.Logger
}

// NewConverter builds a Converter. A nil logger discards output.
func NewConverter(palettes *Catalog, defaults Defaults, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{palettes: palettes, defaults: defaults, logger: logger}
}

// Palettes exposes the catalog the converter resolves names against.
func (c *Converter) Palettes() *Catalog { return c.palettes }

// Options resolves a request against the converter's defaults and limits.
func (c *Converter) Options(req domain.ConversionRequest) (Options, error) {
	const op = "ascii.options"

	if err := req.Validate(); err != nil {
		return Options{}, err
	}

	width := c.defaults.Width
	if req.Width != nil {
		width = *req.Width
	}
	if c.defaults.MaxWidth > 0 && width > c.defaults.MaxWidth {
		return Options{}, domain.Errorf(op, domain.KindInvalidInput,
			"width %d exceeds the limit of %d columns", width, c.defaults.MaxWidth)
	}

	threshold := c.defaults.Threshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	paletteName := req.Palette
	if paletteName == "" {
		paletteName = c.defaults.Palette
	}
	palette, err := c.palettes.Lookup(paletteName)
	if err != nil {
		return Options{}, err
	}

	lumName := req.Luminance
	if lumName == "" {
		lumName = c.defaults.Luminance
	}
	lum, err := imaging.ParseLuminanceMode(lumName)
	if err != nil {
		return Options{}, err
	}

	filter := req.Filter
	if filter == "" {
		filter = c.defaults.Filter
	}

	return Options{
		Width:     width,
		Threshold: threshold,
		Palette:   palette,
		Luminance: lum,
		Resize: imaging.ResizeOptions{
			Filter:           filter,
			AspectCorrection: c.defaults.AspectCorrection,
			MaxHeight:        c.defaults.MaxHeight,
		},
		Adjust: imaging.Adjustments{
			Brightness: req.Brightness,
			Contrast:   req.Contrast,
			Invert:     req.Invert,
			Sharpen:    req.Sharpen,
		},
		Edges:      req.Edges,
		CircleMask: req.Circle,
	}, nil
}

// Convert runs the whole pipeline on img. The context is checked between
// stages; cancellation aborts with ctx.Err() and no partial grid.
func (c *Converter) Convert(ctx context.Context, img image.Image, opts Options) (*Grid, error) {
	start := time.Now()

	q, err := NewQuantizer(opts.Palette, opts.Threshold)
	if err != nil {
		return nil, err
	}

	src := imaging.Apply(img, opts.Adjust)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resized, err := imaging.Resize(src, opts.Width, opts.Resize)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	gray, err := imaging.ToGrayscale(resized, opts.Luminance)
	if err != nil {
		return nil, err
	}
	if opts.Edges {
		gray = imaging.DetectEdges(gray, imaging.DefaultEdgeLow, imaging.DefaultEdgeHigh)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	flat := q.QuantizeImage(gray)
	if opts.CircleMask {
		applyEllipseMask(flat, gray.Bounds().Dx(), gray.Bounds().Dy())
	}

	grid, err := NewGrid(flat, gray.Bounds().Dx())
	if err != nil {
		return nil, err
	}

	c.logger.Debug("ascii.convert",
		"columns", grid.Width,
		"rows", grid.Height,
		"palette", opts.Palette.Name(),
		"luminance", string(opts.Luminance),
		"duration", time.Since(start),
	)
	return grid, nil
}

// applyEllipseMask blanks every cell outside the ellipse inscribed in a
// width x height grid. Because rows are already aspect-corrected this is a
// circle for square sources.
func applyEllipseMask(flat []rune, width, height int) {
	rx, ry := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		dy := (float64(y) + 0.5 - ry) / ry
		for x := 0; x < width; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			if dx*dx+dy*dy > 1 {
				flat[y*width+x] = Blank
			}
		}
	}
}
