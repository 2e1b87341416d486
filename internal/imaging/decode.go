package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/textart-server/internal/domain"
)

// ImageInfo contains metadata about a decoded payload.
type ImageInfo struct {
	// Width is the image width in pixels, after EXIF orientation is applied.
	Width int `json:"width"`

	// Height is the image height in pixels, after EXIF orientation is applied.
	Height int `json:"height"`

	// Format is the format name reported by the registered decoder
	// ("png", "jpeg", "gif", "bmp", "tiff" or "webp").
	Format string `json:"format"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`
}

// Decode reads a whole payload from r and decodes it.
//
// The reader is consumed but not closed; closing it is the caller's job.
// See DecodeBytes for the decoding rules.
func Decode(r io.Reader) (image.Image, *ImageInfo, error) {
	return DecodeLimited(r, 0)
}

// DecodeLimited is Decode with a cap on the pixel count declared in the
// image header. A maxPixels of zero or less disables the cap.
func DecodeLimited(r io.Reader, maxPixels int64) (image.Image, *ImageInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, domain.NewError("imaging.decode", domain.KindDecodeFailure,
			fmt.Errorf("failed to read image: %w", err))
	}
	return decodeBytes(data, maxPixels)
}

// DecodeBytes decodes an in-memory image payload.
//
// The format is sniffed from the payload contents; the upload's filename is
// never consulted. JPEG payloads carrying an EXIF orientation tag are rotated
// upright so the character grid matches what a viewer would show.
//
// # Errors
//
// Every failure is reported as a domain.KindDecodeFailure error:
//   - empty payload
//   - unrecognized format
//   - corrupt image data
func DecodeBytes(data []byte) (image.Image, *ImageInfo, error) {
	return decodeBytes(data, 0)
}

func decodeBytes(data []byte, maxPixels int64) (image.Image, *ImageInfo, error) {
	const op = "imaging.decode"

	if len(data) == 0 {
		return nil, nil, domain.NewError(op, domain.KindDecodeFailure, errors.New("empty image payload"))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, domain.NewError(op, domain.KindDecodeFailure,
			fmt.Errorf("failed to decode image: %w", err))
	}

	// The header is checked before the full bitmap is allocated.
	if pixels := int64(cfg.Width) * int64(cfg.Height); maxPixels > 0 && pixels > maxPixels {
		return nil, nil, domain.Errorf(op, domain.KindInvalidInput,
			"image is %dx%d, more than the limit of %d pixels", cfg.Width, cfg.Height, maxPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, domain.NewError(op, domain.KindDecodeFailure,
			fmt.Errorf("failed to decode image: %w", err))
	}

	bounds := img.Bounds()

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	return img, &ImageInfo{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Format:   format,
		HasAlpha: hasAlpha,
	}, nil
}
