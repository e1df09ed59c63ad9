package monogfx

import (
	"bytes"
	"testing"
)

func TestWritePixelAddressing(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		x, y     int
		wantByte int
		wantMask byte
	}{
		{"origin", 8, 8, 0, 0, 0, 0x80},
		{"last in first byte", 8, 8, 7, 0, 0, 0x01},
		{"second row", 8, 8, 0, 1, 1, 0x80},
		{"second byte of row", 16, 4, 9, 0, 1, 0x40},
		{"unaligned width", 10, 3, 3, 1, 1, 0x04},
		{"last pixel", 10, 3, 9, 2, 3, 0x04},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := NewBuffered(tt.w, tt.h)
			c.WritePixel(tt.x, tt.y, PixelOn)

			want := make([]byte, c.BufferSize())
			want[tt.wantByte] = tt.wantMask
			if !bytes.Equal(c.Buffer(), want) {
				t.Errorf("buffer = % X, want % X", c.Buffer(), want)
			}
			if c.PixelAt(tt.x, tt.y) != PixelOn {
				t.Error("PixelAt should read the pixel back")
			}
		})
	}
}

func TestWritePixelValues(t *testing.T) {
	c, _ := NewBuffered(8, 1)

	c.WritePixel(2, 0, PixelOn)
	c.WritePixel(2, 0, PixelOn)
	if c.Buffer()[0] != 0x20 {
		t.Fatalf("set twice = 0x%02X, want 0x20", c.Buffer()[0])
	}

	c.WritePixel(2, 0, PixelInvert)
	if c.Buffer()[0] != 0x00 {
		t.Fatalf("invert of set = 0x%02X, want 0", c.Buffer()[0])
	}
	c.WritePixel(2, 0, PixelInvert)
	if c.Buffer()[0] != 0x20 {
		t.Fatalf("invert of clear = 0x%02X, want 0x20", c.Buffer()[0])
	}

	c.WritePixel(2, 0, PixelOff)
	if c.Buffer()[0] != 0x00 {
		t.Fatalf("off = 0x%02X, want 0", c.Buffer()[0])
	}

	// Any other non-zero value sets.
	c.WritePixel(7, 0, Pixel(42))
	if c.Buffer()[0] != 0x01 {
		t.Fatalf("value 42 = 0x%02X, want 0x01", c.Buffer()[0])
	}
}

func TestWritePixelOutOfBounds(t *testing.T) {
	c, _ := NewBuffered(8, 8)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}, {-50, 3}} {
		c.WritePixel(p[0], p[1], PixelOn)
		if c.PixelAt(p[0], p[1]) != PixelOff {
			t.Errorf("PixelAt(%d, %d) should read off", p[0], p[1])
		}
	}
	if !bytes.Equal(c.Buffer(), make([]byte, 8)) {
		t.Errorf("out-of-bounds writes changed the buffer: % X", c.Buffer())
	}

	rec := newRecorder()
	u, _ := NewUnbuffered(8, 8, rec, nil)
	u.WritePixel(8, 0, PixelOn)
	u.WritePixel(-1, -1, PixelOn)
	if len(rec.calls) != 0 {
		t.Errorf("out-of-bounds pixels reached the device: %+v", rec.calls)
	}
}

func TestFill(t *testing.T) {
	c, _ := NewBuffered(16, 2)

	c.Fill(0xFF)
	if !bytes.Equal(c.Buffer(), bytes.Repeat([]byte{0xFF}, 4)) {
		t.Errorf("Fill(0xFF) = % X", c.Buffer())
	}

	c.Fill(0xAA)
	if !bytes.Equal(c.Buffer(), bytes.Repeat([]byte{0xAA}, 4)) {
		t.Errorf("Fill(0xAA) = % X", c.Buffer())
	}
	if c.PixelAt(0, 1) != PixelOn || c.PixelAt(1, 1) != PixelOff {
		t.Error("0xAA should give vertical stripes on a width of 16")
	}

	c.Clear()
	if !bytes.Equal(c.Buffer(), make([]byte, 4)) {
		t.Errorf("Clear() = % X", c.Buffer())
	}
}

func TestFillUnbuffered(t *testing.T) {
	rec := newRecorder()
	c, _ := NewUnbuffered(8, 8, rec, nil)
	c.Fill(0xFF)
	c.Clear()
	if len(rec.calls) != 0 {
		t.Errorf("Fill on an unbuffered canvas reached the device %d times", len(rec.calls))
	}
}
