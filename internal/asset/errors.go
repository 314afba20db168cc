package asset

import (
	"errors"
	"fmt"
)

// Logo resolution errors. None of them reaches the document pipeline: the
// caller logs them and renders without a logo.
var (
	// ErrBadStatus is returned when the logo server answers with a non-2xx status.
	ErrBadStatus = errors.New("logo server returned a non-success status")

	// ErrTooLarge is returned when the logo body exceeds MaxLogoBytes.
	ErrTooLarge = errors.New("logo exceeds the maximum size")

	// ErrUnsupportedImage is returned when the bytes are not a PNG, JPEG or GIF image.
	ErrUnsupportedImage = errors.New("unsupported or malformed logo image")
)

// AssetError wraps errors with the operation and logo reference that failed.
type AssetError struct {
	// Op is the operation that failed (e.g., "Fetch").
	Op string

	// Ref is the logo URL, when there is one.
	Ref string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AssetError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("asset: %s %s failed: %v", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("asset: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AssetError) Unwrap() error {
	return e.Err
}

// WrapAssetError wraps an error as an AssetError if it isn't already one.
func WrapAssetError(op, ref string, err error) error {
	if err == nil {
		return nil
	}

	var assetErr *AssetError
	if errors.As(err, &assetErr) {
		return err
	}

	return &AssetError{Op: op, Ref: ref, Err: err}
}
