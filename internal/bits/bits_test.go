package bits

import (
	"bytes"
	"testing"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name        string
		x, y, width int
		wantByte    int
		wantBit     int
	}{
		{"origin", 0, 0, 8, 0, 0},
		{"end of first byte", 7, 0, 8, 0, 7},
		{"second row", 0, 1, 8, 1, 0},
		{"unaligned width", 3, 1, 5, 1, 0},
		{"mid byte", 10, 0, 16, 1, 2},
		{"last pixel", 127, 63, 128, 1023, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotByte, gotBit := Address(tt.x, tt.y, tt.width)
			if gotByte != tt.wantByte || gotBit != tt.wantBit {
				t.Errorf("Address(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.x, tt.y, tt.width, gotByte, gotBit, tt.wantByte, tt.wantBit)
			}
		})
	}
}

func TestMask(t *testing.T) {
	want := []byte{0x80, 0x40, 0x20, 0x10, 0x08, 0x04, 0x02, 0x01}
	for i, w := range want {
		if got := Mask(i); got != w {
			t.Errorf("Mask(%d) = 0x%02X, want 0x%02X", i, got, w)
		}
	}
}

func TestSizeAndStride(t *testing.T) {
	if got := Size(8, 8); got != 8 {
		t.Errorf("Size(8, 8) = %d, want 8", got)
	}
	if got := Size(5, 3); got != 2 {
		t.Errorf("Size(5, 3) = %d, want 2", got)
	}
	if got := Stride(3); got != 1 {
		t.Errorf("Stride(3) = %d, want 1", got)
	}
	if got := Stride(17); got != 3 {
		t.Errorf("Stride(17) = %d, want 3", got)
	}
}

func TestCompositeRun(t *testing.T) {
	tests := []struct {
		name      string
		dst       []byte
		start     int
		bitOffset int
		src       []byte
		want      []byte
	}{
		{
			name:  "aligned copy",
			dst:   make([]byte, 4),
			start: 1,
			src:   []byte{0xAB, 0xCD},
			want:  []byte{0x00, 0xAB, 0xCD, 0x00},
		},
		{
			name:  "aligned copy wraps",
			dst:   make([]byte, 4),
			start: 3,
			src:   []byte{0x11, 0x22},
			want:  []byte{0x22, 0x00, 0x00, 0x11},
		},
		{
			name:      "shift by four",
			dst:       make([]byte, 4),
			start:     0,
			bitOffset: 4,
			src:       []byte{0xFF},
			want:      []byte{0x0F, 0x00, 0x00, 0x00},
		},
		{
			name:      "preserves leading bits and the following byte",
			dst:       []byte{0xFF, 0xFF, 0xFF},
			start:     0,
			bitOffset: 2,
			src:       []byte{0x00},
			want:      []byte{0xC0, 0xFF, 0xFF},
		},
		{
			name:      "carry across bytes",
			dst:       make([]byte, 4),
			start:     0,
			bitOffset: 6,
			src:       []byte{0xAA, 0xAA},
			want:      []byte{0x02, 0xAA, 0x00, 0x00},
		},
		{
			name:      "final carry dropped",
			dst:       make([]byte, 4),
			start:     1,
			bitOffset: 4,
			src:       []byte{0xFF},
			want:      []byte{0x00, 0x0F, 0x00, 0x00},
		},
		{
			name:      "unaligned wraps to start",
			dst:       make([]byte, 2),
			start:     1,
			bitOffset: 4,
			src:       []byte{0xFF},
			want:      []byte{0x00, 0x0F},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			CompositeRun(tt.dst, tt.start, tt.bitOffset, tt.src)
			if !bytes.Equal(tt.dst, tt.want) {
				t.Errorf("CompositeRun() = % X, want % X", tt.dst, tt.want)
			}
		})
	}
}

func TestCompositeRunEmpty(t *testing.T) {
	// Must not panic
	CompositeRun(nil, 0, 3, []byte{0xFF})
	dst := []byte{0x5A}
	CompositeRun(dst, 0, 3, nil)
	if dst[0] != 0x5A {
		t.Errorf("empty source modified destination: 0x%02X", dst[0])
	}
}

func TestRepackRows(t *testing.T) {
	// 3x5 'A' as a continuous stream: 010 101 111 101 101
	src := []byte{0x57, 0xDA}
	got := RepackRows(src, 0, 3, 5)
	want := []byte{0x40, 0xA0, 0xE0, 0xA0, 0xA0}
	if !bytes.Equal(got, want) {
		t.Errorf("RepackRows() = % X, want % X", got, want)
	}

	// Same glyph at a byte offset inside a larger blob
	blob := append([]byte{0xFF, 0xFF}, src...)
	got = RepackRows(blob, 16, 3, 5)
	if !bytes.Equal(got, want) {
		t.Errorf("RepackRows() at offset = % X, want % X", got, want)
	}

	// Truncated stream reads as unset
	got = RepackRows([]byte{0xFF}, 0, 4, 4)
	want = []byte{0xF0, 0xF0, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("RepackRows() truncated = % X, want % X", got, want)
	}

	if got := RepackRows(src, 0, 0, 5); got != nil {
		t.Errorf("RepackRows() zero width = % X, want nil", got)
	}
}
