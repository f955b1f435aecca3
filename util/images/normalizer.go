// Package images normalizes uploaded report photos before they reach
// blob storage: anything the map popups cannot render is transcoded to
// JPEG, oversized photos are downscaled and re-encoded, and anything
// still above the hard ceiling is rejected with an explicit error.
package images

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension caps either side of the stored photo.
	MaxDimension = 1920
	// JPEGQuality is the re-encode quality factor.
	JPEGQuality = 80
	// MaxBytes is the hard size ceiling after normalization.
	MaxBytes = 5 << 20
)

var (
	// ErrUnsupportedFormat is returned for encodings that cannot be
	// decoded server-side (HEIC/HEIF most commonly, from iOS cameras).
	ErrUnsupportedFormat = errors.New("unsupported image format, please upload a JPEG or PNG photo")
	// ErrTooLarge is returned when the photo still exceeds MaxBytes
	// after downscaling and re-encoding.
	ErrTooLarge = errors.New("photo too large, even after compression")
)

// Normalize returns storable JPEG bytes for an uploaded photo. Input
// that is already a JPEG within the dimension and size limits is
// returned unchanged, so feeding the output back in is a no-op.
func Normalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty photo upload")
	}

	mtype := mimetype.Detect(data)
	if mtype.Is("image/heic") || mtype.Is("image/heif") {
		return nil, ErrUnsupportedFormat
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}

	if format == "jpeg" && cfg.Width <= MaxDimension && cfg.Height <= MaxDimension && len(data) <= MaxBytes {
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(ErrUnsupportedFormat, err.Error())
	}

	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		img = imaging.Fit(img, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode photo: %w", err)
	}

	if buf.Len() > MaxBytes {
		return nil, ErrTooLarge
	}

	return buf.Bytes(), nil
}
