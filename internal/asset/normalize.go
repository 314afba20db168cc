package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"

	"docgen/internal/logger"
	"docgen/pkg/models"
)

var fpdfTypes = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"gif":  "gif",
}

// Normalize decodes data and computes its display size. It returns false when
// data is empty, not a supported image, or cannot be embedded in a PDF.
func Normalize(data []byte) (*Image, bool) {
	img, err := decode(data)
	if err != nil {
		return nil, false
	}
	return img, true
}

func decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}
	// A header can be valid while the pixel data is cut short.
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	typ, ok := fpdfTypes[format]
	bounds := decoded.Bounds()
	if !ok || bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrUnsupportedImage
	}
	if err := embeddable(data, typ); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	w, h := FitSize(bounds.Dx(), bounds.Dy())
	return &Image{
		Data:        data,
		Type:        typ,
		PixelWidth:  bounds.Dx(),
		PixelHeight: bounds.Dy(),
		Width:       w,
		Height:      h,
	}, nil
}

// embeddable registers data on a scratch PDF document. The PDF backend parses
// image streams itself and may panic on bytes the image package accepted.
func embeddable(data []byte, typ string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf image parser: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.RegisterImageOptionsReader("logo", fpdf.ImageOptions{ImageType: typ}, bytes.NewReader(data))
	return pdf.Error()
}

// FitSize scales a pixel size to MaxHeight, then to MaxWidth if the result is too wide.
func FitSize(pixelWidth, pixelHeight int) (width, height float64) {
	ratio := float64(pixelWidth) / float64(pixelHeight)

	height = MaxHeight
	width = MaxHeight * ratio
	if width > MaxWidth {
		width = MaxWidth
		height = MaxWidth / ratio
	}
	return width, height
}

// Resolve returns the logo for doc, or nil. Inline bytes take precedence over the URL.
// Errors are logged and swallowed.
func Resolve(ctx context.Context, fetcher Fetcher, doc *models.Document) *Image {
	log := logger.WithDocument("asset", string(doc.Kind), doc.Number)

	data := doc.Logo
	if len(data) == 0 {
		if doc.LogoURL == "" || fetcher == nil {
			return nil
		}
		fetched, err := fetcher.Fetch(ctx, doc.LogoURL)
		if err != nil {
			log.Warn().Err(err).Str("logo_url", doc.LogoURL).Msg("Logo unavailable, rendering without it")
			return nil
		}
		data = fetched
	}

	img, err := decode(data)
	if err != nil {
		log.Warn().Err(WrapAssetError("Normalize", doc.LogoURL, err)).Msg("Logo unreadable, rendering without it")
		return nil
	}

	log.Debug().
		Str("type", img.Type).
		Int("px_width", img.PixelWidth).
		Int("px_height", img.PixelHeight).
		Float64("width_mm", img.Width).
		Float64("height_mm", img.Height).
		Msg("Logo resolved")
	return img
}
