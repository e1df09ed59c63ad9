package monogfx

import (
	"fmt"

	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/common"
)

// Pixel is the value written to a single pixel.
type Pixel uint8

// Pixel values. Any other non-zero value behaves like PixelOn.
const (
	// PixelOff clears a pixel
	PixelOff Pixel = common.PixelOff
	// PixelOn sets a pixel
	PixelOn Pixel = common.PixelOn
	// PixelInvert toggles a pixel on a buffered canvas. Unbuffered canvases
	// forward it to the device unchanged.
	PixelInvert Pixel = common.PixelInvert
)

// String returns "off", "on" or "invert".
func (p Pixel) String() string {
	switch p {
	case PixelOff:
		return "off"
	case PixelInvert:
		return "invert"
	default:
		return "on"
	}
}

// Common errors returned by the monogfx package
var (
	// ErrNoFont is returned by Print when no font has been configured
	ErrNoFont = common.ErrNoFont

	// ErrInvalidSize is returned when a canvas is created with a non-positive dimension
	ErrInvalidSize = common.ErrInvalidSize

	// ErrNilWriter is returned when an unbuffered canvas is created without a pixel writer
	ErrNilWriter = common.ErrNilWriter

	// ErrBadFontFormat is returned when font data has an invalid structure
	ErrBadFontFormat = common.ErrBadFontFormat
)

// PixelWriter is the pixel output capability of an unbuffered canvas. It is
// typically implemented by a display driver. The canvas only calls it with
// in-bounds coordinates.
type PixelWriter interface {
	WritePixel(c *Canvas, x, y int, v Pixel) error
}

// PixelWriterFunc adapts a function to the PixelWriter interface.
type PixelWriterFunc func(c *Canvas, x, y int, v Pixel) error

// WritePixel calls f(c, x, y, v).
func (f PixelWriterFunc) WritePixel(c *Canvas, x, y int, v Pixel) error {
	return f(c, x, y, v)
}

// PixelReader is an optional capability of a PixelWriter that lets
// PixelAt read pixels back from a device.
type PixelReader interface {
	ReadPixel(c *Canvas, x, y int) (Pixel, error)
}

// Bitmap is a read-only view of 1-bpp packed pixel data: row-major, MSB
// first.
//
// DrawBitmap advances its byte index with a running counter across the
// whole bitmap while taking the bit index from the column, so Width should
// be a multiple of 8 with each row occupying Width/8 bytes.
type Bitmap struct {
	Data   []byte
	Width  int
	Height int
}

// Glyph holds the metrics of one character and the location of its bitmap
// in Font.Bitmap.
type Glyph struct {
	// BitmapOffset is the byte offset of the glyph's bitmap in Font.Bitmap
	BitmapOffset int

	// Width and Height are the bitmap dimensions in pixels
	Width, Height uint8

	// XAdvance is the horizontal distance to the next cursor position
	XAdvance uint8

	// XOffset and YOffset are the distance from the cursor to the
	// glyph's top-left corner
	XOffset, YOffset int8
}

// Font is a glyph table covering the contiguous character range
// [First, Last]. Fonts are never modified by the canvas and can be shared
// across goroutines.
type Font struct {
	// Name is the font name (e.g., "FreeMono9pt7b")
	Name string

	// Bitmap holds the concatenated glyph bitmaps
	Bitmap []byte

	// Glyphs holds one entry per character code, starting at First
	Glyphs []Glyph

	// First and Last are the character code extents
	First, Last byte

	// YAdvance is the newline distance
	YAdvance uint8
}

// Glyph returns the glyph for a character code, or false if the code is
// outside [First, Last] or has no glyph record.
func (f *Font) Glyph(code byte) (Glyph, bool) {
	if f == nil || code < f.First || code > f.Last {
		return Glyph{}, false
	}
	idx := int(code - f.First)
	if idx >= len(f.Glyphs) {
		return Glyph{}, false
	}
	return f.Glyphs[idx], true
}

// Validate checks that the glyph table covers [First, Last] and that every
// glyph bitmap lies within Bitmap.
func (f *Font) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil font", ErrBadFontFormat)
	}
	if f.First > f.Last {
		return fmt.Errorf("%w: first code 0x%02X after last code 0x%02X", ErrBadFontFormat, f.First, f.Last)
	}
	want := int(f.Last) - int(f.First) + 1
	if len(f.Glyphs) != want {
		return fmt.Errorf("%w: %d glyphs for range 0x%02X-0x%02X, want %d",
			ErrBadFontFormat, len(f.Glyphs), f.First, f.Last, want)
	}
	for i, g := range f.Glyphs {
		size := bits.Size(int(g.Width), int(g.Height))
		if g.BitmapOffset < 0 || g.BitmapOffset+size > len(f.Bitmap) {
			return fmt.Errorf("%w: glyph 0x%02X bitmap [%d,%d) outside %d bytes",
				ErrBadFontFormat, int(f.First)+i, g.BitmapOffset, g.BitmapOffset+size, len(f.Bitmap))
		}
	}
	return nil
}

// glyphBitmap returns the bitmap view of g inside the font's blob.
func (f *Font) glyphBitmap(g Glyph) Bitmap {
	var data []byte
	if g.BitmapOffset >= 0 && g.BitmapOffset <= len(f.Bitmap) {
		data = f.Bitmap[g.BitmapOffset:]
	}
	return Bitmap{
		Data:   data,
		Width:  int(g.Width),
		Height: int(g.Height),
	}
}
