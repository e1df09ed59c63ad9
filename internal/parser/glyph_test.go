package parser

import (
	"fmt"
	"strings"
	"testing"
)

// generateFullASCIIFont generates a font with a 1x1 glyph for every code in
// [first, last], one bitmap byte per glyph.
func generateFullASCIIFont(first, last int) string {
	var bm, gl strings.Builder
	for code := first; code <= last; code++ {
		fmt.Fprintf(&bm, "0x%02X, ", code&0x80)
		fmt.Fprintf(&gl, "  { %d, 1, 1, 2, 0, -1 },\n", code-first)
	}

	var sb strings.Builder
	sb.WriteString("const uint8_t GenBitmaps[] PROGMEM = {\n  ")
	sb.WriteString(bm.String())
	sb.WriteString("};\n\nconst GFXglyph GenGlyphs[] PROGMEM = {\n")
	sb.WriteString(gl.String())
	sb.WriteString("};\n\nconst GFXfont Gen PROGMEM = {\n  (uint8_t *)GenBitmaps, (GFXglyph *)GenGlyphs,\n")
	fmt.Fprintf(&sb, "  0x%02X, 0x%02X, 2 };\n", first, last)
	return sb.String()
}

func TestParseGlyphsEdgeCases(t *testing.T) {
	tests := []struct {
		validate    func(t *testing.T, f *Font)
		name        string
		input       string
		errContains string
		wantErr     bool
	}{
		{
			name:  "crlf_line_endings",
			input: strings.ReplaceAll(tinyFont, "\n", "\r\n"),
			validate: func(t *testing.T, f *Font) {
				if len(f.Glyphs) != 2 || f.YAdvance != 6 {
					t.Errorf("got %d glyphs, yAdvance %d", len(f.Glyphs), f.YAdvance)
				}
			},
		},
		{
			name:  "tabs_and_octal",
			input: "const uint8_t B[] = {\t010,\t0x0 };\nconst GFXglyph G[] = {\t{0,\t2,\t2,\t3,\t0,\t-2} };\nconst GFXfont F = { (uint8_t *)B, (GFXglyph *)G, 32, 32, 3 };\n",
			validate: func(t *testing.T, f *Font) {
				if f.Bitmap[0] != 8 {
					t.Errorf("Bitmap[0] = %d, want 8", f.Bitmap[0])
				}
				if f.First != ' ' || f.Last != ' ' {
					t.Errorf("range = %d-%d", f.First, f.Last)
				}
			},
		},
		{
			name:  "empty_glyph_at_end_of_bitmap",
			input: "const uint8_t B[] = { 0x80 };\nconst GFXglyph G[] = { {0,1,1,2,0,-1}, {1,0,0,4,0,0} };\nconst GFXfont F = { (uint8_t *)B, (GFXglyph *)G, 0x20, 0x21, 2 };\n",
			validate: func(t *testing.T, f *Font) {
				g := f.Glyphs[1]
				if g.Width != 0 || g.Height != 0 || g.XAdvance != 4 {
					t.Errorf("empty glyph = %+v", g)
				}
			},
		},
		{
			name:        "glyph_overruns_bitmap",
			input:       "const uint8_t B[] = { 0x80 };\nconst GFXglyph G[] = { {0,3,3,4,0,-3} };\nconst GFXfont F = { (uint8_t *)B, (GFXglyph *)G, 0x20, 0x20, 4 };\n",
			wantErr:     true,
			errContains: "exceeds 1 bytes",
		},
		{
			name:        "xoffset_out_of_int8",
			input:       "const uint8_t B[] = { 0x80 };\nconst GFXglyph G[] = { {0,1,1,2,200,-1} };\nconst GFXfont F = { (uint8_t *)B, (GFXglyph *)G, 0x20, 0x20, 2 };\n",
			wantErr:     true,
			errContains: "offset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font, err := Parse(strings.NewReader(tt.input))

			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil && tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Parse() error = %v, want error containing %q", err, tt.errContains)
			}

			if err == nil && tt.validate != nil {
				tt.validate(t, font)
			}
		})
	}
}

func TestGlyphBoundaryConditions(t *testing.T) {
	tests := []struct {
		validate    func(t *testing.T, f *Font)
		name        string
		first, last int
	}{
		{
			name:  "single_space",
			first: 0x20, last: 0x20,
			validate: func(t *testing.T, f *Font) {
				if len(f.Glyphs) != 1 {
					t.Errorf("Expected 1 glyph, got %d", len(f.Glyphs))
				}
			},
		},
		{
			name:  "exactly_95_glyphs",
			first: 0x20, last: 0x7E,
			validate: func(t *testing.T, f *Font) {
				if len(f.Glyphs) != 95 {
					t.Errorf("Expected exactly 95 glyphs, got %d", len(f.Glyphs))
				}
				if f.Glyphs[94].Offset != 94 {
					t.Errorf("last glyph offset = %d, want 94", f.Glyphs[94].Offset)
				}
			},
		},
		{
			name:  "full_byte_range",
			first: 0x00, last: 0xFF,
			validate: func(t *testing.T, f *Font) {
				if len(f.Glyphs) != 256 || len(f.Bitmap) != 256 {
					t.Errorf("got %d glyphs, %d bitmap bytes", len(f.Glyphs), len(f.Bitmap))
				}
				if f.Bitmap[0x80] != 0x80 || f.Bitmap[0x7F] != 0 {
					t.Errorf("bitmap bytes 0x7F/0x80 = %02X/%02X", f.Bitmap[0x7F], f.Bitmap[0x80])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			font, err := Parse(strings.NewReader(generateFullASCIIFont(tt.first, tt.last)))
			if err != nil {
				t.Fatalf("Parse() unexpected error = %v", err)
			}
			if font.First != tt.first || font.Last != tt.last {
				t.Errorf("range = 0x%02X-0x%02X, want 0x%02X-0x%02X", font.First, font.Last, tt.first, tt.last)
			}
			if tt.validate != nil {
				tt.validate(t, font)
			}
		})
	}
}
