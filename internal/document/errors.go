package document

import (
	"errors"
	"fmt"

	"docgen/internal/render"
)

// Common generation errors
var (
	// ErrUnsupportedFormat is returned when the requested output format is neither pdf nor html.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrRenderFailed is returned when the rendering backend cannot produce output bytes.
	ErrRenderFailed = render.ErrRenderFailed
)

// GenerationError wraps errors with the operation that failed.
type GenerationError struct {
	// Op is the operation that failed (e.g., "GenerateQuotePDF").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("document: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("document: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *GenerationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(op string, err error, details string) *GenerationError {
	return &GenerationError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapGenerationError wraps an error as a GenerationError if it isn't already one.
func WrapGenerationError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}

	return NewGenerationError(op, err, details)
}
