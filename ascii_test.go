package monogfx

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteASCII(t *testing.T) {
	c, _ := NewBuffered(4, 2)
	c.WritePixel(0, 0, PixelOn)
	c.WritePixel(3, 1, PixelOn)

	var sb strings.Builder
	if err := c.WriteASCII(&sb); err != nil {
		t.Fatal(err)
	}
	if want := "#...\n...#\n"; sb.String() != want {
		t.Errorf("WriteASCII() = %q, want %q", sb.String(), want)
	}
	if c.String() != sb.String() {
		t.Error("String() should match WriteASCII")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteASCIIError(t *testing.T) {
	c, _ := NewBuffered(64, 64)
	if err := c.WriteASCII(failingWriter{}); err == nil {
		t.Error("expected write error")
	}
}
