// Package asset turns an optional logo reference into an embeddable image.
//
// A logo is always optional. Every failure along the way (timeout, non-2xx
// response, oversize body, undecodable bytes) resolves to "no logo" and the
// document is rendered with a title-only header.
//
// Display geometry:
//   - the logo is first scaled to MaxHeight, preserving aspect ratio;
//   - if that makes it wider than MaxWidth, it is rescaled to MaxWidth instead.
package asset

import (
	"context"
	"time"
)

const (
	// MaxHeight is the display height cap in millimetres.
	MaxHeight = 25.0

	// MaxWidth is the display width cap in millimetres.
	MaxWidth = 40.0

	// MaxLogoBytes bounds the downloaded logo size (5MB).
	MaxLogoBytes = 5 * 1024 * 1024

	// DefaultTimeout bounds the single fetch attempt.
	DefaultTimeout = 10 * time.Second
)

// Fetcher retrieves raw logo bytes from a remote reference.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Image is a decoded logo ready to embed.
type Image struct {
	// Data holds the original encoded bytes.
	Data []byte

	// Type is the encoding as understood by the PDF backend: "png", "jpg" or "gif".
	Type string

	PixelWidth  int
	PixelHeight int

	// Width and Height are the display size in millimetres.
	Width  float64
	Height float64
}

// MIMEType returns the media type of the encoded bytes.
func (i *Image) MIMEType() string {
	switch i.Type {
	case "jpg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
