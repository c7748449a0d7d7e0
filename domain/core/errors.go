package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions.
//
// Only structurally invalid input terminates an analysis. Malformed
// content (odd values, ambiguous headers, empty sheets) is recovered
// locally and surfaced as report warnings, never as errors.
var (
	ErrNilSource         = errors.New("sheet source is nil")
	ErrSheetNotFound     = errors.New("worksheet not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidBounds     = errors.New("invalid sheet bounds")
)

// Error constructors with context
func NewSheetNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
}

func NewInvalidBoundsError(maxRow, maxCol int) error {
	return fmt.Errorf("%w: %dx%d", ErrInvalidBounds, maxRow, maxCol)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrNilSource) ||
		errors.Is(err, ErrSheetNotFound) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInvalidBounds)
}
