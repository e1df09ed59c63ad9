// Package common provides shared constants and types for internal packages.
// These constants must match the public API in the monogfx package.
package common

import "errors"

// Pixel values (must match public API in monogfx package)
const (
	// PixelOff clears a pixel
	PixelOff = 0
	// PixelOn sets a pixel
	PixelOn = 1
	// PixelInvert toggles a pixel
	PixelInvert = 2
)

// Common errors, re-exported by the monogfx package
var (
	// ErrNoFont is returned by Print when the canvas has no font
	ErrNoFont = errors.New("no font configured")
	// ErrInvalidSize is returned when a canvas dimension is not positive
	ErrInvalidSize = errors.New("invalid canvas size")
	// ErrNilWriter is returned when an unbuffered canvas has no pixel writer
	ErrNilWriter = errors.New("nil pixel writer")
	// ErrBadFontFormat is returned when font data has an invalid structure
	ErrBadFontFormat = errors.New("bad font format")
)
