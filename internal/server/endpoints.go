package server

import (
	"github.com/ironsheep/textart-server/internal/imaging"
)

// Endpoint describes one route for the GET /api catalog.
type Endpoint struct {
	Method      string  `json:"method"`
	Path        string  `json:"path"`
	Description string  `json:"description"`
	Body        string  `json:"body,omitempty"`
	Params      []Param `json:"params,omitempty"`
	Produces    string  `json:"produces"`
}

// Param describes a request parameter.
type Param struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Required    bool     `json:"required,omitempty"`
	Default     any      `json:"default,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Endpoints returns the route catalog. Palette and font names are passed in
// so the enums reflect what this process actually loaded.
func Endpoints(palettes, fonts []string) []Endpoint {
	lumModes := make([]string, 0, 3)
	for _, m := range imaging.LuminanceModes() {
		lumModes = append(lumModes, string(m))
	}

	return []Endpoint{
		{
			Method:      "POST",
			Path:        "/api/image-to-ascii",
			Description: "Convert an uploaded image into character art. Brightness is mapped onto a palette ordered darkest to lightest; pixels at or above the threshold render as spaces.",
			Body:        "multipart/form-data",
			Produces:    "text/plain or image/png",
			Params: []Param{
				{Name: "image", Type: "file", Description: "Image to convert (PNG, JPEG, GIF, BMP, TIFF or WebP)", Required: true},
				{Name: "width", Type: "integer", Description: "Output width in characters", Default: 100},
				{Name: "threshold", Type: "integer", Description: "Brightness at or above which a cell is blank, 0 to 256 (256 disables blanking)", Default: 255},
				{Name: "palette", Type: "string", Description: "Named palette", Default: "standard", Enum: palettes},
				{Name: "luminance", Type: "string", Description: "Formula used to reduce colour to brightness", Default: "bt601", Enum: lumModes},
				{Name: "filter", Type: "string", Description: "Resampling filter", Default: imaging.DefaultFilter, Enum: imaging.Filters()},
				{Name: "brightness", Type: "number", Description: "Brightness adjustment in percent, -100 to 100"},
				{Name: "contrast", Type: "number", Description: "Contrast adjustment in percent, -100 to 100"},
				{Name: "invert", Type: "boolean", Description: "Invert the image before mapping"},
				{Name: "sharpen", Type: "boolean", Description: "Apply an unsharp mask before mapping"},
				{Name: "edges", Type: "boolean", Description: "Draw only detected edges"},
				{Name: "circle", Type: "boolean", Description: "Blank every cell outside the inscribed circle"},
				{Name: "format", Type: "string", Description: "Response format", Default: "text", Enum: []string{"text", "png"}},
			},
		},
		{
			Method:      "POST",
			Path:        "/api/text-to-ascii",
			Description: "Render text as large banner art.",
			Body:        "application/json",
			Produces:    "text/plain",
			Params: []Param{
				{Name: "text", Type: "string", Description: "Text to render; newlines start a new banner line"},
				{Name: "font", Type: "string", Description: "Font name, matched case-insensitively", Default: "standard", Enum: fonts},
			},
		},
		{Method: "GET", Path: "/api/fonts", Description: "List the available font names.", Produces: "application/json"},
		{Method: "GET", Path: "/api/palettes", Description: "List the available palettes and their characters.", Produces: "application/json"},
		{Method: "GET", Path: "/api", Description: "Describe the API.", Produces: "application/json"},
		{Method: "GET", Path: "/healthz", Description: "Liveness probe.", Produces: "text/plain"},
	}
}
