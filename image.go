package monogfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/ryanlewis/monogfx/internal/bits"
)

// Format selects the image encoding used by Canvas.Encode.
type Format int

// Image formats
const (
	FormatPNG Format = iota
	FormatBMP
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatBMP:
		return "bmp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses "png" or "bmp", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return 0, fmt.Errorf("unknown image format %q", s)
}

// Palette used by Image: index 0 is an unset pixel, index 1 a set pixel.
var Palette = color.Palette{color.White, color.Black}

// Image returns a copy of the canvas as a two-colour paletted image with
// set pixels black. Unbuffered canvases are read through PixelAt, so
// pixels read as unset unless the writer implements PixelReader.
func (c *Canvas) Image() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.width, c.height), Palette)
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if c.PixelAt(x, y) != PixelOff {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}

// Encode writes the canvas to w as an image in the given format.
func (c *Canvas) Encode(w io.Writer, format Format) error {
	img := c.Image()
	switch format {
	case FormatPNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unknown image format %v", format)
}

// ErrEmptyImage is returned by BitmapFromImage for images with no pixels.
var ErrEmptyImage = errors.New("empty image")

// BitmapFromImage converts an arbitrary image to a Bitmap suitable for
// DrawBitmap. Images wider than maxWidth are scaled down with Catmull-Rom
// keeping the aspect ratio; maxWidth <= 0 disables scaling. The image is
// then reduced to gray and Floyd-Steinberg dithered to black and white.
// Dark pixels become set bits.
//
// The returned Width is rounded up to a multiple of 8; padding columns are
// unset and therefore transparent.
func BitmapFromImage(img image.Image, maxWidth int) (Bitmap, error) {
	if img == nil || img.Bounds().Empty() {
		return Bitmap{}, ErrEmptyImage
	}

	src := img
	b := img.Bounds()
	if maxWidth > 0 && b.Dx() > maxWidth {
		h := b.Dy() * maxWidth / b.Dx()
		if h < 1 {
			h = 1
		}
		scaled := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Over, nil)
		src = scaled
	}

	bounds := src.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)

	ditherer := dither.NewDitherer([]color.Color{color.Black, color.White})
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	dithered := ditherer.DitherPaletted(gray)

	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	stride := bits.Stride(w)
	data := make([]byte, stride*h)
	black := uint8(dithered.Palette.Index(color.Black))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dithered.ColorIndexAt(x, y) == black {
				data[y*stride+x/bits.PerByte] |= bits.Mask(x % bits.PerByte)
			}
		}
	}

	return Bitmap{Data: data, Width: stride * bits.PerByte, Height: h}, nil
}
