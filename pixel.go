package monogfx

import (
	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/debug"
)

// WritePixel writes one pixel. Coordinates outside the canvas are ignored.
//
// On a buffered canvas PixelOff clears the bit, PixelInvert toggles it and
// any other value sets it. On an unbuffered canvas the value is handed to
// the device writer unchanged.
func (c *Canvas) WritePixel(x, y int, v Pixel) {
	if c.closed || !c.inBounds(x, y) {
		return
	}

	if !c.buffered {
		c.forward(x, y, v)
		return
	}

	byteOffset, bitOffset := bits.Address(x, y, c.width)
	mask := bits.Mask(bitOffset)

	switch v {
	case PixelOff:
		c.buffer[byteOffset] &^= mask
	case PixelInvert:
		c.buffer[byteOffset] ^= mask
	default:
		c.buffer[byteOffset] |= mask
	}
}

// forward passes an in-bounds pixel to the device writer and records the
// first failure.
func (c *Canvas) forward(x, y int, v Pixel) {
	err := c.writer.WritePixel(c, x, y, v)
	if err == nil {
		return
	}

	c.errCount++
	if c.err == nil {
		c.err = err
	}
	c.debug.Emit("device", "Error", debug.DeviceErrorData{
		X:     x,
		Y:     y,
		Value: uint8(v),
		Error: err.Error(),
		Count: c.errCount,
	})
}

// plotter returns a raster.PlotFunc compatible closure writing v.
func (c *Canvas) plotter(v Pixel) func(x, y int) {
	return func(x, y int) {
		c.WritePixel(x, y, v)
	}
}

// PixelAt reads one pixel back. Coordinates outside the canvas read as
// PixelOff. On an unbuffered canvas the writer is asked if it implements
// PixelReader; otherwise the result is PixelOff.
func (c *Canvas) PixelAt(x, y int) Pixel {
	if c.closed || !c.inBounds(x, y) {
		return PixelOff
	}

	if !c.buffered {
		r, ok := c.writer.(PixelReader)
		if !ok {
			return PixelOff
		}
		v, err := r.ReadPixel(c, x, y)
		if err != nil {
			return PixelOff
		}
		return v
	}

	byteOffset, bitOffset := bits.Address(x, y, c.width)
	if c.buffer[byteOffset]&bits.Mask(bitOffset) != 0 {
		return PixelOn
	}
	return PixelOff
}

// Fill sets every byte of the buffer to pattern: 0x00 clears the canvas,
// 0xFF sets every pixel and other patterns produce vertical stripes on
// widths that are a multiple of 8.
//
// Fill is not implemented for unbuffered canvases and does nothing there.
func (c *Canvas) Fill(pattern byte) {
	if c.closed {
		return
	}
	if !c.buffered {
		c.debug.Emit("canvas", "Fill", debug.FillData{Pattern: pattern, Skipped: true})
		return
	}

	for i := range c.buffer {
		c.buffer[i] = pattern
	}
	c.debug.Emit("canvas", "Fill", debug.FillData{Pattern: pattern})
}

// Clear turns every pixel off. Like Fill it does nothing on an unbuffered
// canvas.
func (c *Canvas) Clear() {
	c.Fill(0x00)
}
