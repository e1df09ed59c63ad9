// Package monogfx provides drawing primitives for monochrome (1-bit per
// pixel) embedded displays.
//
// A Canvas either owns a packed pixel buffer (buffered mode) or forwards
// every pixel to a device through a PixelWriter (unbuffered mode). The mode
// is fixed when the canvas is created. Pixels are stored row-major, MSB
// first: bit 0x80 of byte 0 is the top-left pixel.
//
// Drawing never fails. Coordinates outside the canvas are clipped silently
// and bulk writes that would leave their row are truncated, so callers on a
// real-time path do not have to branch on drawing results. The only error a
// drawing call reports is ErrNoFont from Print.
//
// A Canvas is not safe for concurrent use; callers sharing one across
// goroutines must serialise every call. Fonts are immutable and can be
// shared freely.
//
// Example:
//
//	c, err := monogfx.NewBuffered(128, 64, monogfx.WithFont(monogfx.DefaultFont()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.DrawRect(0, 0, 128, 16, monogfx.PixelOn)
//	c.Print(2, 12, "Hello", monogfx.PixelOff)
//	c.DrawLine(0, 63, 127, 20, monogfx.PixelOn)
package monogfx

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding"

	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/debug"
)

// Canvas is a monochrome drawing surface.
type Canvas struct {
	width      int
	height     int
	bufferSize int

	// buffer is nil on unbuffered canvases and after Close
	buffer   []byte
	buffered bool

	writer PixelWriter
	device any

	font     *Font
	encoding encoding.Encoding
	debug    *debug.Session

	closed   bool
	err      error
	errCount int
}

// Option configures a canvas at construction.
type Option func(*options)

type options struct {
	font     *Font
	encoding encoding.Encoding
	debug    *debug.Session
}

// WithFont sets the font used by Print. The font is borrowed, not copied.
func WithFont(f *Font) Option {
	return func(opts *options) {
		opts.font = f
	}
}

// WithEncoding makes Print encode its UTF-8 text into a single-byte
// character set before looking up glyphs, e.g. charmap.ISO8859_1 for a
// font laid out by Latin-1 code. Runes the encoding cannot represent are
// replaced by its substitute byte, which Print then skips like any other
// code outside the font.
func WithEncoding(enc encoding.Encoding) Option {
	return func(opts *options) {
		opts.encoding = enc
	}
}

// WithDebug attaches a debug session that traces drawing calls. A nil
// session disables tracing.
//
// WithDebug is for commands inside this module (cmd/monogfx and the scene
// renderer): the session type lives in an internal package, so callers
// outside the module can only pass nil. They enable tracing through the
// command line tool with --debug or MONOGFX_DEBUG=1.
func WithDebug(s *debug.Session) Option {
	return func(opts *options) {
		opts.debug = s
	}
}

// NewBuffered creates a canvas that owns a zeroed buffer of
// ceil(width*height/8) bytes.
func NewBuffered(width, height int, opts ...Option) (*Canvas, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}

	c := newCanvas(width, height, opts)
	c.buffer = make([]byte, c.bufferSize)
	c.buffered = true
	c.emitInit()
	return c, nil
}

// NewUnbuffered creates a canvas without a local buffer. Every pixel is
// passed to w together with the canvas; device is an opaque handle the
// writer can retrieve with Device. Both are borrowed for the lifetime of
// the canvas.
func NewUnbuffered(width, height int, w PixelWriter, device any, opts ...Option) (*Canvas, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	c := newCanvas(width, height, opts)
	c.writer = w
	c.device = device
	c.emitInit()
	return c, nil
}

// checkSize rejects non-positive dimensions and sizes whose pixel count,
// rounded up to whole bytes, does not fit in an int.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 || width > (math.MaxInt-(bits.PerByte-1))/height {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}

func newCanvas(width, height int, opts []Option) *Canvas {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Canvas{
		width:      width,
		height:     height,
		bufferSize: bits.Size(width, height),
		font:       o.font,
		encoding:   o.encoding,
		debug:      o.debug,
	}
}

func (c *Canvas) emitInit() {
	if c.debug == nil {
		return
	}
	d := debug.CanvasData{
		Width:      c.width,
		Height:     c.height,
		BufferSize: c.bufferSize,
		Mode:       "unbuffered",
	}
	if c.buffered {
		d.Mode = "buffered"
	}
	if c.font != nil {
		d.Font = c.font.Name
	}
	c.debug.Emit("canvas", "Init", d)
}

// Close releases the owned buffer. It is safe to call more than once; every
// drawing call after Close is a no-op. Close does not touch the device or
// the debug session, which belong to the caller.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.buffer = nil
	c.debug.Emit("canvas", "Close", map[string]interface{}{
		"device_errors": c.errCount,
	})
	return nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// BufferSize returns the size of the pixel buffer in bytes, whether or not
// the canvas owns one.
func (c *Canvas) BufferSize() int {
	return c.bufferSize
}

// Buffered reports whether the canvas owns its pixel buffer.
func (c *Canvas) Buffered() bool {
	return c.buffered
}

// Buffer returns the packed pixel buffer of a buffered canvas, or nil. The
// slice aliases the canvas memory and must not be retained past Close.
func (c *Canvas) Buffer() []byte {
	return c.buffer
}

// Device returns the device handle given to NewUnbuffered.
func (c *Canvas) Device() any {
	return c.device
}

// Font returns the font used by Print, or nil.
func (c *Canvas) Font() *Font {
	return c.font
}

// SetFont replaces the font used by Print. A nil font disables Print.
func (c *Canvas) SetFont(f *Font) {
	c.font = f
}

// Err returns the first error reported by the device pixel writer, if any.
// Drawing continues past device errors.
func (c *Canvas) Err() error {
	return c.err
}

// inBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}
