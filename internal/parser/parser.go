// Package parser implements parsing of Adafruit GFX font headers.
//
// A GFX font header declares three C arrays:
//
//	const uint8_t FreeMono9pt7bBitmaps[] PROGMEM = { 0xAA, 0xA8, ... };
//	const GFXglyph FreeMono9pt7bGlyphs[] PROGMEM = {
//	  {     0,   0,   0,  11,    0,    1 },   // 0x20 ' '
//	  ... };
//	const GFXfont FreeMono9pt7b PROGMEM = {
//	  (uint8_t  *)FreeMono9pt7bBitmaps,
//	  (GFXglyph *)FreeMono9pt7bGlyphs,
//	  0x20, 0x7E, 18 };
//
// Glyph records are {bitmapOffset, width, height, xAdvance, xOffset,
// yOffset}. Glyph bitmaps are a continuous bit stream with no row padding.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ryanlewis/monogfx/internal/common"
)

const (
	// glyphFields is the number of values in one GFXglyph record
	glyphFields = 6
	// minFontFields is the number of values in a GFXfont record
	minFontFields = 5

	maxCode = 0xFF
)

// Glyph is one GFXglyph record as found in the header.
type Glyph struct {
	Offset   int
	Width    int
	Height   int
	XAdvance int
	XOffset  int
	YOffset  int
}

// Font represents a parsed GFX font header.
type Font struct {
	// Name is the identifier of the GFXfont declaration
	Name string

	// BitmapName and GlyphsName are the identifiers of the two arrays
	BitmapName string
	GlyphsName string

	// Bitmap is the concatenated glyph bit stream
	Bitmap []byte

	// Glyphs holds one record per code in [First, Last]
	Glyphs []Glyph

	// First and Last are the character code extents
	First int
	Last  int

	// YAdvance is the newline distance
	YAdvance int

	// Warnings contains any non-fatal issues encountered during parsing
	Warnings []string
}

type section int

const (
	sectionNone section = iota
	sectionBitmap
	sectionGlyphs
	sectionFont
)

// Parse reads a GFX font header from r.
func Parse(r io.Reader) (*Font, error) {
	scanner, buf := createPooledScanner(r)
	defer releaseScannerBuffer(buf)

	font := &Font{}
	var (
		seen      [4]bool
		current   = sectionNone
		inComment bool
		lineNo    int
	)
	decl := acquireBuilder()
	defer releaseBuilder(decl)

	for scanner.Scan() {
		lineNo++
		var line string
		line, inComment = stripComments(scanner.Text(), inComment)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if current == sectionNone {
			current = classifyDeclaration(line)
			if current == sectionNone {
				continue
			}
			if seen[current] {
				return nil, fmt.Errorf("%w: line %d: duplicate %s declaration",
					common.ErrBadFontFormat, lineNo, current)
			}
			seen[current] = true
			decl.Reset()
		}

		decl.WriteString(line)
		decl.WriteByte(' ')

		if !strings.Contains(line, ";") {
			continue
		}

		if err := parseDeclaration(current, decl.String(), font); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", common.ErrBadFontFormat, lineNo, err)
		}
		current = sectionNone
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading font: %w", err)
	}

	if current != sectionNone {
		return nil, fmt.Errorf("%w: unexpected EOF inside %s declaration", common.ErrBadFontFormat, current)
	}
	for _, s := range []section{sectionBitmap, sectionGlyphs, sectionFont} {
		if !seen[s] {
			return nil, fmt.Errorf("%w: missing %s declaration", common.ErrBadFontFormat, s)
		}
	}

	if err := validate(font); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrBadFontFormat, err)
	}
	return font, nil
}

func (s section) String() string {
	switch s {
	case sectionBitmap:
		return "bitmap"
	case sectionGlyphs:
		return "GFXglyph"
	case sectionFont:
		return "GFXfont"
	}
	return "none"
}

// stripComments removes // and /* */ comments from a line. inComment
// carries an open block comment across lines.
func stripComments(line string, inComment bool) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		if inComment {
			if strings.HasPrefix(line[i:], "*/") {
				inComment = false
				i++
			}
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			break
		}
		if strings.HasPrefix(line[i:], "/*") {
			inComment = true
			i++
			continue
		}
		b.WriteByte(line[i])
	}
	return b.String(), inComment
}

// classifyDeclaration reports which array a line starts, if any.
func classifyDeclaration(line string) section {
	if !strings.Contains(line, "=") {
		return sectionNone
	}
	switch {
	case strings.Contains(line, "GFXglyph") && strings.Contains(line, "[]"):
		return sectionGlyphs
	case strings.Contains(line, "GFXfont"):
		return sectionFont
	case strings.Contains(line, "uint8_t") && strings.Contains(line, "[]"):
		return sectionBitmap
	}
	return sectionNone
}

// declarationName returns the identifier declared after typeName.
func declarationName(decl, typeName string) string {
	i := strings.Index(decl, typeName)
	if i < 0 {
		return ""
	}
	fields := strings.Fields(decl[i+len(typeName):])
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if j := strings.IndexAny(name, "[="); j >= 0 {
		name = name[:j]
	}
	return name
}

// body returns the text between the outermost braces of a declaration.
func body(decl string) (string, error) {
	open := strings.Index(decl, "{")
	closing := strings.LastIndex(decl, "}")
	if open < 0 || closing < open {
		return "", fmt.Errorf("missing initializer braces")
	}
	return decl[open+1 : closing], nil
}

func parseDeclaration(s section, decl string, font *Font) error {
	inner, err := body(decl)
	if err != nil {
		return err
	}

	switch s {
	case sectionBitmap:
		font.BitmapName = declarationName(decl, "uint8_t")
		font.Bitmap, err = parseBytes(inner)
		return err
	case sectionGlyphs:
		font.GlyphsName = declarationName(decl, "GFXglyph")
		font.Glyphs, err = parseGlyphs(inner)
		return err
	case sectionFont:
		font.Name = declarationName(decl, "GFXfont")
		return parseFontRecord(inner, font)
	}
	return nil
}

// parseBytes parses a comma separated list of byte values.
func parseBytes(list string) ([]byte, error) {
	fields := splitList(list)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := parseInt(f)
		if err != nil {
			return nil, fmt.Errorf("invalid bitmap byte %q: %w", f, err)
		}
		if v < 0 || v > 0xFF {
			return nil, fmt.Errorf("bitmap value %d out of byte range", v)
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// parseGlyphs parses the {..}, {..} records of a GFXglyph array.
func parseGlyphs(list string) ([]Glyph, error) {
	var glyphs []Glyph
	rest := list
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open:], "}")
		if closing < 0 {
			return nil, fmt.Errorf("unterminated glyph record %d", len(glyphs))
		}
		record := rest[open+1 : open+closing]
		rest = rest[open+closing+1:]

		fields := splitList(record)
		if len(fields) != glyphFields {
			return nil, fmt.Errorf("glyph record %d has %d fields, want %d", len(glyphs), len(fields), glyphFields)
		}
		var v [glyphFields]int
		for i, f := range fields {
			n, err := parseInt(f)
			if err != nil {
				return nil, fmt.Errorf("glyph record %d field %d: %w", len(glyphs), i, err)
			}
			v[i] = n
		}
		glyphs = append(glyphs, Glyph{
			Offset:   v[0],
			Width:    v[1],
			Height:   v[2],
			XAdvance: v[3],
			XOffset:  v[4],
			YOffset:  v[5],
		})
	}
	if rest = strings.Trim(rest, ", \t"); rest != "" {
		return nil, fmt.Errorf("unexpected text after glyph records: %q", rest)
	}
	return glyphs, nil
}

// parseFontRecord parses {bitmaps, glyphs, first, last, yAdvance}.
func parseFontRecord(list string, font *Font) error {
	fields := splitList(list)
	if len(fields) < minFontFields {
		return fmt.Errorf("GFXfont record has %d fields, want %d", len(fields), minFontFields)
	}

	// The record may carry extra trailing fields in some generators; the
	// numeric fields follow the two array references.
	nums := fields[2:minFontFields]
	var v [3]int
	for i, f := range nums {
		n, err := parseInt(f)
		if err != nil {
			return fmt.Errorf("GFXfont field %d: %w", i+2, err)
		}
		v[i] = n
	}
	font.First, font.Last, font.YAdvance = v[0], v[1], v[2]

	if font.BitmapName != "" && !strings.Contains(fields[0], font.BitmapName) {
		font.Warnings = append(font.Warnings,
			fmt.Sprintf("GFXfont bitmap reference %q does not name %q", fields[0], font.BitmapName))
	}
	if font.GlyphsName != "" && !strings.Contains(fields[1], font.GlyphsName) {
		font.Warnings = append(font.Warnings,
			fmt.Sprintf("GFXfont glyph reference %q does not name %q", fields[1], font.GlyphsName))
	}
	return nil
}

// validate checks ranges and glyph bitmap bounds.
func validate(font *Font) error {
	if font.First < 0 || font.Last > maxCode || font.First > font.Last {
		return fmt.Errorf("invalid code range 0x%02X-0x%02X", font.First, font.Last)
	}
	if font.YAdvance < 0 || font.YAdvance > 0xFF {
		return fmt.Errorf("yAdvance %d out of range", font.YAdvance)
	}
	if want := font.Last - font.First + 1; len(font.Glyphs) != want {
		return fmt.Errorf("%d glyph records for range 0x%02X-0x%02X, want %d",
			len(font.Glyphs), font.First, font.Last, want)
	}

	for i, g := range font.Glyphs {
		code := font.First + i
		switch {
		case g.Width < 0 || g.Width > 0xFF || g.Height < 0 || g.Height > 0xFF:
			return fmt.Errorf("glyph 0x%02X size %dx%d out of range", code, g.Width, g.Height)
		case g.XAdvance < 0 || g.XAdvance > 0xFF:
			return fmt.Errorf("glyph 0x%02X xAdvance %d out of range", code, g.XAdvance)
		case g.XOffset < -128 || g.XOffset > 127 || g.YOffset < -128 || g.YOffset > 127:
			return fmt.Errorf("glyph 0x%02X offset (%d,%d) out of range", code, g.XOffset, g.YOffset)
		case g.Offset < 0:
			return fmt.Errorf("glyph 0x%02X negative bitmap offset", code)
		}

		need := (g.Width*g.Height + 7) / 8
		if g.Offset+need > len(font.Bitmap) {
			return fmt.Errorf("glyph 0x%02X bitmap [%d,%d) exceeds %d bytes",
				code, g.Offset, g.Offset+need, len(font.Bitmap))
		}
	}
	return nil
}

// splitList splits a comma separated initializer list, dropping empty
// trailing elements.
func splitList(list string) []string {
	parts := strings.Split(list, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseInt parses a C integer literal: decimal, 0x hex or 0 octal, with an
// optional sign and integer suffixes.
func parseInt(s string) (int, error) {
	s = strings.TrimRight(s, "uUlL")
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
