package monogfx

import (
	"bytes"
	"testing"
)

func TestDrawRectFixture(t *testing.T) {
	c, _ := NewBuffered(8, 8)
	c.DrawRect(1, 1, 6, 6, PixelOn)

	want := []byte{0x00, 0x7E, 0x7E, 0x7E, 0x7E, 0x7E, 0x7E, 0x00}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}
}

func TestDrawLineDiagonal(t *testing.T) {
	c, _ := NewBuffered(8, 8)
	c.DrawLine(0, 0, 7, 7, PixelOn)

	want := []byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}
}

func TestDrawLineSymmetric(t *testing.T) {
	lines := [][4]int{
		{0, 0, 15, 7},
		{2, 0, 5, 7},
		{15, 0, 0, 7},
		{3, 3, 12, 4},
		{7, 0, 7, 7},
		{0, 4, 15, 4},
		{1, 6, 14, 1},
		{-5, -3, 20, 9},
		{5, 5, 5, 5},
	}

	for _, l := range lines {
		fwd, _ := NewBuffered(16, 8)
		rev, _ := NewBuffered(16, 8)
		fwd.DrawLine(l[0], l[1], l[2], l[3], PixelOn)
		rev.DrawLine(l[2], l[3], l[0], l[1], PixelOn)

		if !bytes.Equal(fwd.Buffer(), rev.Buffer()) {
			t.Errorf("line %v differs when reversed:\n%s\n%s", l, fwd, rev)
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c, _ := NewBuffered(16, 8)
	c.DrawLine(1, 6, 14, 1, PixelOn)
	if c.PixelAt(1, 6) != PixelOn || c.PixelAt(14, 1) != PixelOn {
		t.Error("both endpoints should be drawn")
	}
}

func TestDrawLineClipped(t *testing.T) {
	c, _ := NewBuffered(8, 8)
	c.DrawLine(-10, -10, -1, -1, PixelOn)
	c.DrawLine(20, 0, 30, 7, PixelOn)
	if !bytes.Equal(c.Buffer(), make([]byte, 8)) {
		t.Errorf("off-canvas lines changed the buffer: % X", c.Buffer())
	}

	c.DrawLine(-4, -4, 3, 3, PixelOn)
	want := []byte{0x80, 0x40, 0x20, 0x10, 0, 0, 0, 0}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}
}

func TestDrawRectMatchesWritePixel(t *testing.T) {
	rects := [][4]int{{0, 0, 3, 2}, {5, 1, 9, 4}, {13, 6, 3, 2}, {2, 2, 1, 1}}

	for _, r := range rects {
		a, _ := NewBuffered(16, 8)
		b, _ := NewBuffered(16, 8)
		a.DrawRect(r[0], r[1], r[2], r[3], PixelOn)
		for y := r[1]; y < r[1]+r[3]; y++ {
			for x := r[0]; x < r[0]+r[2]; x++ {
				b.WritePixel(x, y, PixelOn)
			}
		}
		if !bytes.Equal(a.Buffer(), b.Buffer()) {
			t.Errorf("rect %v:\n%s\nwant\n%s", r, a, b)
		}
	}
}

func TestDrawRectClipped(t *testing.T) {
	c, _ := NewBuffered(8, 8)
	c.DrawRect(-2, -2, 4, 4, PixelOn)
	want := []byte{0xC0, 0xC0, 0, 0, 0, 0, 0, 0}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}

	c.Clear()
	c.DrawRect(2, 2, 0, 5, PixelOn)
	c.DrawRect(2, 2, 5, -1, PixelOn)
	if !bytes.Equal(c.Buffer(), make([]byte, 8)) {
		t.Errorf("empty rects changed the buffer: % X", c.Buffer())
	}
}

func TestDrawRectInvert(t *testing.T) {
	c, _ := NewBuffered(8, 2)
	c.DrawRect(0, 0, 4, 2, PixelOn)
	c.DrawRect(2, 0, 4, 2, PixelInvert)

	want := []byte{0xCC, 0xCC}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}
}

func TestDrawBitmap(t *testing.T) {
	bmp := Bitmap{Data: []byte{0xF0, 0x90, 0xF0}, Width: 8, Height: 3}

	c, _ := NewBuffered(16, 4)
	c.DrawBitmap(5, 1, bmp, PixelOn)

	want := "" +
		"................\n" +
		".....####.......\n" +
		".....#..#.......\n" +
		".....####.......\n"
	if got := c.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestDrawBitmapTransparent(t *testing.T) {
	c, _ := NewBuffered(8, 1)
	c.Fill(0xFF)
	c.DrawBitmap(0, 0, Bitmap{Data: []byte{0x00}, Width: 8, Height: 1}, PixelOn)
	if c.Buffer()[0] != 0xFF {
		t.Errorf("unset bitmap bits changed the canvas: 0x%02X", c.Buffer()[0])
	}

	c.DrawBitmap(0, 0, Bitmap{Data: []byte{0x0F}, Width: 8, Height: 1}, PixelOff)
	if c.Buffer()[0] != 0xF0 {
		t.Errorf("PixelOff bitmap = 0x%02X, want 0xF0", c.Buffer()[0])
	}
}

func TestDrawBitmapFlatCounter(t *testing.T) {
	// With a width of 4 the byte index keeps running across rows while the
	// bit index restarts, so row 1 reads the high nibble of byte 0 again and
	// row 2 the high nibble of byte 1.
	bmp := Bitmap{Data: []byte{0xA5, 0xFF}, Width: 4, Height: 3}

	c, _ := NewBuffered(8, 3)
	c.DrawBitmap(0, 0, bmp, PixelOn)

	want := "" +
		"#.#.....\n" +
		"#.#.....\n" +
		"####....\n"
	if got := c.String(); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}
}

func TestDrawBitmapShortData(t *testing.T) {
	c, _ := NewBuffered(8, 4)
	c.DrawBitmap(0, 0, Bitmap{Data: []byte{0xFF}, Width: 8, Height: 4}, PixelOn)
	want := []byte{0xFF, 0, 0, 0}
	if !bytes.Equal(c.Buffer(), want) {
		t.Errorf("buffer = % X, want % X", c.Buffer(), want)
	}
}

func TestDrawUnbuffered(t *testing.T) {
	rec := newRecorder()
	c, _ := NewUnbuffered(8, 8, rec, nil)
	c.DrawLine(0, 0, 3, 3, PixelOn)

	want := []pixelCall{{0, 0, PixelOn}, {1, 1, PixelOn}, {2, 2, PixelOn}, {3, 3, PixelOn}}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %+v", rec.calls)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, rec.calls[i], want[i])
		}
	}
}
