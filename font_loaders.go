package monogfx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ryanlewis/monogfx/internal/bits"
	"github.com/ryanlewis/monogfx/internal/parser"
)

// ParseFont reads an Adafruit GFX font header (the .h files produced by
// fontconvert) and returns a Font. The returned Font is immutable and safe
// for concurrent use across goroutines.
//
// GFX headers store each glyph as a continuous bit stream. ParseFont
// re-packs every glyph so each row starts on a byte boundary, which is the
// layout DrawBitmap and Print expect; the glyph Width is rounded up to a
// multiple of 8 and the padding columns are unset.
//
// Example:
//
//	file, err := os.Open("FreeMono9pt7b.h")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := monogfx.ParseFont(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFont(r io.Reader) (*Font, error) {
	pf, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return convertParserFont(pf)
}

// ParseFontBytes parses a GFX font header held in memory.
func ParseFontBytes(data []byte) (*Font, error) {
	return ParseFont(bytes.NewReader(data))
}

// LoadFont loads a GFX font header from the filesystem. The font name is
// taken from the GFXfont declaration, or from the file name if the header
// does not carry one.
func LoadFont(fontPath string) (*Font, error) {
	file, err := os.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	if font.Name == "" {
		base := filepath.Base(fontPath)
		font.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return font, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal attacks.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS loads a GFX font header from a filesystem at the specified
// path. Path traversal (e.g., "../") is not allowed.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.h
//	var fonts embed.FS
//
//	font, err := monogfx.LoadFontFS(fonts, "fonts/FreeSans9pt7b.h")
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadFontFS(fsys fs.FS, fontPath string) (*Font, error) {
	if fsys == nil {
		return nil, fmt.Errorf("filesystem cannot be nil")
	}

	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}
	if font.Name == "" {
		font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	}
	return font, nil
}

// convertParserFont converts a parsed header into a Font with row-padded
// glyph bitmaps. The parser has already range-checked every field.
func convertParserFont(pf *parser.Font) (*Font, error) {
	if pf == nil {
		return nil, fmt.Errorf("%w: nil font", ErrBadFontFormat)
	}

	font := &Font{
		Name:     pf.Name,
		Glyphs:   make([]Glyph, len(pf.Glyphs)),
		First:    byte(pf.First),
		Last:     byte(pf.Last),
		YAdvance: uint8(pf.YAdvance),
	}

	var blob []byte
	for i, pg := range pf.Glyphs {
		stride := bits.Stride(pg.Width)
		padded := stride * bits.PerByte
		if padded > 0xFF {
			return nil, fmt.Errorf("%w: glyph 0x%02X width %d too wide",
				ErrBadFontFormat, pf.First+i, pg.Width)
		}

		offset := len(blob)
		blob = append(blob, bits.RepackRows(pf.Bitmap, pg.Offset*bits.PerByte, pg.Width, pg.Height)...)

		font.Glyphs[i] = Glyph{
			BitmapOffset: offset,
			Width:        uint8(padded),
			Height:       uint8(pg.Height),
			XAdvance:     uint8(pg.XAdvance),
			XOffset:      int8(pg.XOffset),
			YOffset:      int8(pg.YOffset),
		}
	}
	font.Bitmap = blob

	if err := font.Validate(); err != nil {
		return nil, err
	}
	return font, nil
}
