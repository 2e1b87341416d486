package imaging

import (
	"image"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/textart-server/internal/domain"
)

// DefaultAspectCorrection compensates for monospace cells being roughly 1.65
// times taller than they are wide.
const DefaultAspectCorrection = 1.65

// DefaultFilter is the resampling filter used when none is requested.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"catmullrom": imaging.CatmullRom,
	"lanczos":    imaging.Lanczos,
}

// Filters returns the names of the supported resampling filters, sorted.
func Filters() []string {
	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResizeOptions controls Resize. Zero values select the defaults.
type ResizeOptions struct {
	// Filter names the resampling filter (see Filters). Default "lanczos".
	Filter string

	// AspectCorrection divides the proportional height. Default 1.65.
	AspectCorrection float64

	// MaxHeight bounds the number of output rows. Zero means unbounded.
	MaxHeight int
}

func (o ResizeOptions) withDefaults() ResizeOptions {
	if o.Filter == "" {
		o.Filter = DefaultFilter
	}
	if o.AspectCorrection == 0 {
		o.AspectCorrection = DefaultAspectCorrection
	}
	return o
}

// TargetSize computes the character-grid dimensions for a source image.
//
// The height is rounded half away from zero and raised to 1 when the
// rounded value is 0, so a very wide banner still yields a single row.
// Zero-sized sources, non-positive widths, a non-positive correction factor
// and heights above maxHeight (when maxHeight > 0) are reported as
// domain.KindDegenerateGeometry.
func TargetSize(srcWidth, srcHeight, targetWidth int, correction float64, maxHeight int) (int, int, error) {
	const op = "imaging.target_size"

	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, domain.Errorf(op, domain.KindDegenerateGeometry,
			"source image has zero area (%dx%d)", srcWidth, srcHeight)
	}
	if targetWidth <= 0 {
		return 0, 0, domain.Errorf(op, domain.KindDegenerateGeometry,
			"target width must be positive, got %d", targetWidth)
	}
	if correction <= 0 || math.IsNaN(correction) || math.IsInf(correction, 0) {
		return 0, 0, domain.Errorf(op, domain.KindDegenerateGeometry,
			"aspect correction must be positive, got %g", correction)
	}

	aspect := float64(srcHeight) / float64(srcWidth)
	h := math.Round(float64(targetWidth) * aspect / correction)
	if h < 1 {
		h = 1
	}
	if maxHeight > 0 && h > float64(maxHeight) {
		return 0, 0, domain.Errorf(op, domain.KindDegenerateGeometry,
			"target height %.0f exceeds the limit of %d rows", h, maxHeight)
	}

	return targetWidth, int(h), nil
}

// Resize rescales img to targetWidth columns with aspect-ratio correction.
//
// The returned image is always exactly targetWidth pixels wide and at least
// one pixel tall. Exact pixel values depend on the chosen filter.
func Resize(img image.Image, targetWidth int, opts ResizeOptions) (*image.NRGBA, error) {
	opts = opts.withDefaults()

	filter, ok := filters[strings.ToLower(opts.Filter)]
	if !ok {
		return nil, domain.Errorf("imaging.resize", domain.KindInvalidInput,
			"unknown resample filter %q", opts.Filter)
	}

	bounds := img.Bounds()
	w, h, err := TargetSize(bounds.Dx(), bounds.Dy(), targetWidth, opts.AspectCorrection, opts.MaxHeight)
	if err != nil {
		return nil, err
	}

	return imaging.Resize(img, w, h, filter), nil
}
