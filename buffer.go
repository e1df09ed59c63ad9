package monogfx

import (
	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/debug"
)

// WriteBuffer writes a horizontal run of packed source bytes starting at
// pixel (x, y). The source uses the canvas bit order: MSB first.
//
// The run length is limited by nextRow = width - (cursor mod width), where
// cursor = y*width + x. When wrap is false and data is longer than nextRow,
// only the first nextRow bytes are written and the rest are dropped. When
// wrap is true the run continues through the following bytes of the buffer
// and wraps from the last byte back to the first.
//
// On a byte-aligned cursor the bytes are copied. Otherwise they are shifted
// into place: the bits before the cursor in the first byte are preserved,
// and the last bitOffset bits of data are dropped so the run touches
// exactly n buffer bytes. A start position outside the canvas writes
// nothing.
//
// On an unbuffered canvas the run is sent to the device one pixel at a time,
// set and unset bits alike, wrapping from the last pixel to the first.
func (c *Canvas) WriteBuffer(x, y int, data []byte, wrap bool) {
	if c.closed {
		return
	}

	run := debug.RunData{
		X:         x,
		Y:         y,
		Requested: len(data),
		Wrap:      wrap,
	}

	if !c.inBounds(x, y) {
		run.Clipped = true
		c.debug.Emit("buffer", "Run", run)
		return
	}

	cursor := y*c.width + x
	n := len(data)

	nextRow := c.width - cursor%c.width
	if !wrap && nextRow < n {
		n = nextRow
		run.Truncated = true
	}

	run.Written = n
	run.ByteStart, run.BitOffset = cursor/bits.PerByte, cursor%bits.PerByte
	c.debug.Emit("buffer", "Run", run)

	if c.buffered {
		bits.CompositeRun(c.buffer, run.ByteStart, run.BitOffset, data[:n])
		return
	}

	total := c.width * c.height
	for _, b := range data[:n] {
		for k := 0; k < bits.PerByte; k++ {
			for cursor >= total {
				cursor -= total
			}
			v := PixelOff
			if b&bits.Mask(k) != 0 {
				v = PixelOn
			}
			c.forward(cursor%c.width, cursor/c.width, v)
			cursor++
		}
	}
}
