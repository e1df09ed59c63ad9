package monogfx

import (
	"bufio"
	"io"
	"strings"
)

// ASCII characters used by WriteASCII for set and unset pixels.
const (
	ASCIIOn  = '#'
	ASCIIOff = '.'
)

// WriteASCII writes the canvas as text, one line per row, with '#' for set
// pixels and '.' for unset ones. Every line, including the last, ends in a
// newline.
func (c *Canvas) WriteASCII(w io.Writer) error {
	bw := bufio.NewWriterSize(w, c.width+1)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			ch := byte(ASCIIOff)
			if c.PixelAt(x, y) != PixelOff {
				ch = ASCIIOn
			}
			if err := bw.WriteByte(ch); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the WriteASCII rendering of the canvas.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow((c.width + 1) * c.height)
	_ = c.WriteASCII(&sb)
	return sb.String()
}
