package domain

// Output formats for an image conversion.
const (
	FormatText = "text"
	FormatPNG  = "png"
)

// ConversionRequest carries the caller-supplied knobs for one image conversion.
// It is built from an inbound request, consumed synchronously and discarded.
// Zero values and nil pointers mean "use the configured default".
type ConversionRequest struct {
	Filename string

	Width     *int
	Threshold *int

	Palette   string
	Luminance string
	Filter    string

	// Brightness and Contrast are percentages in [-100, 100].
	Brightness float64
	Contrast   float64

	Invert  bool
	Sharpen bool
	Edges   bool
	Circle  bool

	Format string
}

// Validate checks the ranges that do not depend on configuration.
func (r ConversionRequest) Validate() error {
	const op = "request.validate"

	if r.Width != nil && *r.Width <= 0 {
		return Errorf(op, KindInvalidInput, "width must be positive, got %d", *r.Width)
	}
	if r.Threshold != nil && (*r.Threshold < 0 || *r.Threshold > 256) {
		return Errorf(op, KindInvalidInput, "threshold must be within [0,256], got %d", *r.Threshold)
	}
	if r.Brightness < -100 || r.Brightness > 100 {
		return Errorf(op, KindInvalidInput, "brightness must be within [-100,100], got %g", r.Brightness)
	}
	if r.Contrast < -100 || r.Contrast > 100 {
		return Errorf(op, KindInvalidInput, "contrast must be within [-100,100], got %g", r.Contrast)
	}
	switch r.Format {
	case "", FormatText, FormatPNG:
	default:
		return Errorf(op, KindInvalidInput, "unknown format %q", r.Format)
	}
	return nil
}
