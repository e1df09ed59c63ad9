package monogfx

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ryanlewis/monogfx/internal/bits"
)

// alphaThreshold is the mask alpha at or above which a pixel is set.
const alphaThreshold = 0x8000

var (
	defaultFont     *Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// DefaultFont returns the built-in 7x13 font covering codes 0x20-0xFF.
// Codes are interpreted as Latin-1, so WithEncoding(charmap.ISO8859_1)
// maps accented text onto it directly. The cursor y passed to Print is the
// baseline.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = FontFromFace("basic7x13", basicfont.Face7x13, 0x20, 0xFF)
	})
	if defaultFontErr != nil {
		// basicfont is compiled in; failure here is a programming error.
		panic(defaultFontErr)
	}
	return defaultFont
}

// FontFromFace rasterizes the codes first..last of a font.Face into a
// Font. Each code is looked up as the rune of the same value. Mask pixels
// with at least half alpha become set bits. Glyphs with no set pixels keep
// their advance but get an empty bitmap.
func FontFromFace(name string, face font.Face, first, last byte) (*Font, error) {
	if face == nil {
		return nil, fmt.Errorf("%w: nil face", ErrBadFontFormat)
	}
	if first > last {
		return nil, fmt.Errorf("%w: first code 0x%02X after last code 0x%02X", ErrBadFontFormat, first, last)
	}

	f := &Font{
		Name:     name,
		First:    first,
		Last:     last,
		YAdvance: clampUint8(face.Metrics().Height.Ceil()),
		Glyphs:   make([]Glyph, 0, int(last)-int(first)+1),
	}

	for code := int(first); code <= int(last); code++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), rune(code))
		if !ok {
			f.Glyphs = append(f.Glyphs, Glyph{BitmapOffset: len(f.Bitmap)})
			continue
		}

		w, h := dr.Dx(), dr.Dy()
		if w > 0xF8 || h > 0xFF {
			return nil, fmt.Errorf("%w: glyph 0x%02X is %dx%d", ErrBadFontFormat, code, w, h)
		}

		rows, inked := maskRows(mask, maskp, w, h)
		g := Glyph{
			BitmapOffset: len(f.Bitmap),
			XAdvance:     clampUint8(advance.Round()),
			XOffset:      clampInt8(dr.Min.X),
			YOffset:      clampInt8(dr.Min.Y),
		}
		if inked {
			g.Width = uint8(bits.Stride(w) * bits.PerByte)
			g.Height = uint8(h)
			f.Bitmap = append(f.Bitmap, rows...)
		}
		f.Glyphs = append(f.Glyphs, g)
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// maskRows thresholds a w x h region of mask starting at maskp into
// byte-padded rows. It reports whether any pixel was set.
func maskRows(mask image.Image, maskp image.Point, w, h int) ([]byte, bool) {
	stride := bits.Stride(w)
	out := make([]byte, stride*h)
	set := false

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_, _, _, a := mask.At(maskp.X+x, maskp.Y+y).RGBA()
			if a >= alphaThreshold {
				out[y*stride+x/bits.PerByte] |= bits.Mask(x % bits.PerByte)
				set = true
			}
		}
	}
	return out, set
}

func clampUint8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 0xFF:
		return 0xFF
	}
	return uint8(v)
}

func clampInt8(v int) int8 {
	switch {
	case v < -128:
		return -128
	case v > 127:
		return 127
	}
	return int8(v)
}
