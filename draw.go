package monogfx

import (
	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/debug"
	"github.com/ryanlewis/monogfx/internal/raster"
)

// DrawLine draws a Bresenham line from (x0, y0) to (x1, y1), both ends
// included. Swapping the endpoints touches exactly the same pixels.
// Pixels off the canvas are clipped.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, v Pixel) {
	if c.closed {
		return
	}
	c.debug.Emit("draw", "Line", debug.LineData{
		X0:    x0,
		Y0:    y0,
		X1:    x1,
		Y1:    y1,
		Value: uint8(v),
		Steep: abs(y1-y0) > abs(x1-x0),
	})
	raster.Line(x0, y0, x1, y1, c.plotter(v))
}

// DrawRect fills the w x h rectangle whose top-left corner is (x, y).
// Pixels off the canvas are clipped; non-positive sizes draw nothing.
func (c *Canvas) DrawRect(x, y, w, h int, v Pixel) {
	if c.closed {
		return
	}
	c.debug.Emit("draw", "Rect", debug.RectData{X: x, Y: y, W: w, H: h, Value: uint8(v)})
	raster.Rect(x, y, w, h, c.plotter(v))
}

// DrawBitmap composites bmp with its top-left corner at (x, y). Set source
// bits write v; unset bits leave the canvas untouched.
//
// The source byte index runs continuously over the whole bitmap while the
// bit index restarts at every row, so bitmaps whose width is not a multiple
// of 8 must be padded by the caller. Fonts loaded by this package and
// bitmaps from BitmapFromImage are already padded.
func (c *Canvas) DrawBitmap(x, y int, bmp Bitmap, v Pixel) {
	if c.closed {
		return
	}
	c.debug.Emit("draw", "Bitmap", debug.BitmapData{
		X:       x,
		Y:       y,
		Width:   bmp.Width,
		Height:  bmp.Height,
		Bytes:   len(bmp.Data),
		Value:   uint8(v),
		Aligned: bmp.Width%bits.PerByte == 0,
	})
	c.blit(x, y, bmp, v)
}

// blit is DrawBitmap without tracing, used per glyph by Print.
func (c *Canvas) blit(x, y int, bmp Bitmap, v Pixel) {
	raster.Blit(bmp.Data, bmp.Width, bmp.Height, func(a, i int) {
		c.WritePixel(x+a, y+i, v)
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
