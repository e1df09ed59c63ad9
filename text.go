package monogfx

import (
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/ryanlewis/monogfx/internal/debug"
)

// Print draws text with the canvas font. (x, y) is the initial cursor;
// each glyph is drawn at the cursor plus its offsets, so for baseline-
// relative fonts y is the baseline of the first line.
//
// Text is processed byte by byte (after encoding, see WithEncoding) and
// stops at the first NUL byte. A newline moves the cursor down by the
// font's YAdvance and back to x. Codes outside the font range are skipped.
// After each glyph the cursor moves right by XOffset + XAdvance.
//
// Print returns ErrNoFont, without drawing, when no font is configured.
func (c *Canvas) Print(x, y int, text string, v Pixel) error {
	if c.font == nil {
		return ErrNoFont
	}
	if c.closed {
		return nil
	}

	font := c.font
	codes := c.encode(text)

	if c.debug != nil {
		c.debug.Emit("text", "PrintStart", debug.PrintStartData{
			Text:       text,
			Encoded:    len(codes),
			Encoding:   encodingName(c.encoding),
			X:          x,
			Y:          y,
			FontFirst:  font.First,
			FontLast:   font.Last,
			LineHeight: int(font.YAdvance),
		})
	}

	var end debug.PrintEndData
	cx, cy := x, y

	for i, code := range codes {
		if code == 0 {
			break
		}

		if code == '\n' {
			cy += int(font.YAdvance)
			cx = x
			end.Newlines++
			continue
		}

		g, ok := font.Glyph(code)
		if !ok {
			end.Skipped++
			c.emitGlyph(i, code, cx, cy, Glyph{}, "skip")
			continue
		}

		c.emitGlyph(i, code, cx, cy, g, "draw")
		c.blit(cx+int(g.XOffset), cy+int(g.YOffset), font.glyphBitmap(g), v)
		cx += int(g.XOffset) + int(g.XAdvance)
		end.Glyphs++
	}

	end.CursorX, end.CursorY = cx, cy
	c.debug.Emit("text", "PrintEnd", end)
	return nil
}

// MeasureText returns the width and height of the area the cursor walks
// over when printing text: the largest horizontal advance of any line and
// the number of lines times YAdvance. It returns ErrNoFont when no font is
// configured.
func (c *Canvas) MeasureText(text string) (width, height int, err error) {
	font := c.font
	if font == nil {
		return 0, 0, ErrNoFont
	}

	codes := c.encode(text)
	lines := 1
	cx := 0

	for _, code := range codes {
		if code == 0 {
			break
		}
		if code == '\n' {
			lines++
			cx = 0
			continue
		}
		g, ok := font.Glyph(code)
		if !ok {
			continue
		}
		cx += int(g.XOffset) + int(g.XAdvance)
		if cx > width {
			width = cx
		}
	}

	return width, lines * int(font.YAdvance), nil
}

// encode converts text to the character codes looked up in the font.
func (c *Canvas) encode(text string) []byte {
	if c.encoding == nil {
		return []byte(text)
	}

	out, err := encoding.ReplaceUnsupported(c.encoding.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		// Only malformed transformer state gets here; fall back to the raw
		// bytes, which Print treats like any other codes.
		return []byte(text)
	}
	return out
}

func (c *Canvas) emitGlyph(idx int, code byte, cx, cy int, g Glyph, action string) {
	if c.debug == nil {
		return
	}
	c.debug.Emit("text", "Glyph", debug.GlyphData{
		Index:   idx,
		Code:    code,
		CursorX: cx,
		CursorY: cy,
		Width:   int(g.Width),
		Height:  int(g.Height),
		Advance: int(g.XOffset) + int(g.XAdvance),
		Action:  action,
	})
}

func encodingName(enc encoding.Encoding) string {
	if enc == nil {
		return ""
	}
	if s, ok := enc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", enc)
}
