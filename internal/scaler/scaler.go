package scaler

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	log "github.com/sirupsen/logrus"

	// Register decoders for the upload formats the service accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/howardginsburg/ImageAIProcessor/internal/faults"
	"github.com/howardginsburg/ImageAIProcessor/internal/storage"
)

// ============================================================================
// Image Normalization
// ============================================================================
//
// Uploads arrive in whatever format and size the user chose. Downstream
// model services want a bounded-size image, so everything is normalized to
// PNG and scaled down when the decoded pixel payload exceeds the limit.
// ============================================================================

// bytesPerPixel is the decoded payload cost used for the size check (RGBA).
const bytesPerPixel = 4

// Scaler normalizes uploaded images into the resized container.
type Scaler struct {
	store             storage.Store
	originalContainer string
	resizedContainer  string
	maxBytes          int64
}

// New creates a Scaler reading from originalContainer and writing normalized
// PNGs to resizedContainer.
func New(store storage.Store, originalContainer, resizedContainer string, maxBytes int64) *Scaler {
	return &Scaler{
		store:             store,
		originalContainer: originalContainer,
		resizedContainer:  resizedContainer,
		maxBytes:          maxBytes,
	}
}

// Resize normalizes the named upload: decode, honor EXIF orientation, scale
// down if the decoded payload exceeds the byte limit, re-encode as PNG and
// store it under the original name's stem. Returns the resized blob name.
func (s *Scaler) Resize(ctx context.Context, filename string) (string, error) {
	data, err := s.store.Get(ctx, s.originalContainer, filename)
	if err != nil {
		return "", fmt.Errorf("fetch original %s: %v: %w", filename, err, faults.ErrResize)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode %s: %v: %w", filename, err, faults.ErrResize)
	}
	log.Debugf("Resize: decoded %s as %s (%dx%d)", filename, format, img.Bounds().Dx(), img.Bounds().Dy())

	img = applyOrientation(img, readOrientation(data))

	bounds := img.Bounds()
	rawBytes := int64(bounds.Dx()) * int64(bounds.Dy()) * bytesPerPixel
	if rawBytes > s.maxBytes {
		factor := math.Sqrt(float64(s.maxBytes) / float64(rawBytes))
		newWidth := int(float64(bounds.Dx()) * factor)
		newHeight := int(float64(bounds.Dy()) * factor)
		log.Infof("Resize: %s exceeds %d bytes (%d), scaling to %dx%d", filename, s.maxBytes, rawBytes, newWidth, newHeight)
		img = imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode %s as png: %v: %w", filename, err, faults.ErrResize)
	}

	resizedName := stem(filename) + ".png"
	if err := s.store.Put(ctx, s.resizedContainer, resizedName, buf.Bytes()); err != nil {
		return "", fmt.Errorf("store resized %s: %v: %w", resizedName, err, faults.ErrResize)
	}

	log.Infof("Resize: %s normalized to %s/%s", filename, s.resizedContainer, resizedName)
	return resizedName, nil
}

// readOrientation extracts the EXIF orientation tag, defaulting to 1
// (upright) when the image carries no usable EXIF block.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation < 1 || orientation > 8 {
		return 1
	}
	return orientation
}

// applyOrientation bakes the EXIF orientation into the pixels so the
// normalized PNG renders upright everywhere.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

// stem strips the extension from a blob name.
func stem(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}
