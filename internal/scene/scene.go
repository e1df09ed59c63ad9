// Package scene loads YAML drawing scripts and renders them onto a canvas.
//
// A scene looks like:
//
//	description: framed label
//	width: 32
//	height: 16
//	font: fonts/tiny3x5.h   # path relative to the scene, or "builtin"
//	encoding: ISO-8859-1    # optional IANA charset for text ops
//	ops:
//	  - {op: rect, x: 0, y: 0, w: 32, h: 16}
//	  - {op: rect, x: 1, y: 1, w: 30, h: 14, value: off}
//	  - {op: text, x: 3, y: 10, text: "ABC"}
//
// Coordinates and sizes follow the canvas methods of the same name.
package scene

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	_ "image/png" // decoder for image ops
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp" // decoder for image ops
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/monogfx"
)

// BuiltinFont names the font returned by monogfx.DefaultFont.
const BuiltinFont = "builtin"

// Scene is a canvas description plus an ordered list of drawing ops.
type Scene struct {
	Description string `yaml:"description,omitempty"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Font        string `yaml:"font,omitempty"`
	Encoding    string `yaml:"encoding,omitempty"`
	Ops         []Op   `yaml:"ops"`
}

// Op is one drawing call. Which fields apply depends on Op:
//
//	pixel   x, y, value
//	line    x, y, x1, y1, value
//	rect    x, y, w, h, value
//	bitmap  x, y, w, h, data, value
//	image   x, y, path, max_width, value
//	text    x, y, text, value
//	run     x, y, data, wrap
//	fill    pattern
//	clear
type Op struct {
	Op       string `yaml:"op"`
	X        int    `yaml:"x,omitempty"`
	Y        int    `yaml:"y,omitempty"`
	X1       int    `yaml:"x1,omitempty"`
	Y1       int    `yaml:"y1,omitempty"`
	W        int    `yaml:"w,omitempty"`
	H        int    `yaml:"h,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Text     string `yaml:"text,omitempty"`
	Data     string `yaml:"data,omitempty"`
	Wrap     bool   `yaml:"wrap,omitempty"`
	Pattern  int    `yaml:"pattern,omitempty"`
	Path     string `yaml:"path,omitempty"`
	MaxWidth int    `yaml:"max_width,omitempty"`
}

// ErrUnknownOp is returned by Render for an unrecognised op name.
var ErrUnknownOp = errors.New("unknown op")

// Load decodes a scene. Unknown keys are rejected.
func Load(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scene
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode scene: %w", err)
	}
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("%w: scene is %dx%d", monogfx.ErrInvalidSize, s.Width, s.Height)
	}
	return &s, nil
}

// LoadFile loads a scene from disk.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer f.Close()

	s, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Render creates a buffered canvas for the scene and runs every op on it.
// Relative font and image paths are resolved against baseDir. Extra
// options are applied after the scene's own font and encoding.
func (s *Scene) Render(baseDir string, opts ...monogfx.Option) (*monogfx.Canvas, error) {
	var canvasOpts []monogfx.Option

	if s.Font != "" {
		font, err := resolveFont(baseDir, s.Font)
		if err != nil {
			return nil, err
		}
		canvasOpts = append(canvasOpts, monogfx.WithFont(font))
	}
	if s.Encoding != "" {
		enc, err := LookupEncoding(s.Encoding)
		if err != nil {
			return nil, err
		}
		canvasOpts = append(canvasOpts, monogfx.WithEncoding(enc))
	}

	c, err := monogfx.NewBuffered(s.Width, s.Height, append(canvasOpts, opts...)...)
	if err != nil {
		return nil, err
	}

	for i, op := range s.Ops {
		if err := apply(c, baseDir, op); err != nil {
			c.Close()
			return nil, fmt.Errorf("op %d (%s): %w", i, op.Op, err)
		}
	}
	return c, nil
}

func apply(c *monogfx.Canvas, baseDir string, op Op) error {
	v, err := ParseValue(op.Value)
	if err != nil {
		return err
	}

	switch strings.ToLower(op.Op) {
	case "pixel":
		c.WritePixel(op.X, op.Y, v)
	case "line":
		c.DrawLine(op.X, op.Y, op.X1, op.Y1, v)
	case "rect":
		c.DrawRect(op.X, op.Y, op.W, op.H, v)
	case "bitmap":
		data, err := decodeHex(op.Data)
		if err != nil {
			return err
		}
		c.DrawBitmap(op.X, op.Y, monogfx.Bitmap{Data: data, Width: op.W, Height: op.H}, v)
	case "image":
		bmp, err := loadImage(resolvePath(baseDir, op.Path), op.MaxWidth)
		if err != nil {
			return err
		}
		c.DrawBitmap(op.X, op.Y, bmp, v)
	case "text":
		return c.Print(op.X, op.Y, op.Text, v)
	case "run":
		data, err := decodeHex(op.Data)
		if err != nil {
			return err
		}
		c.WriteBuffer(op.X, op.Y, data, op.Wrap)
	case "fill":
		if op.Pattern < 0 || op.Pattern > 0xFF {
			return fmt.Errorf("fill pattern %d out of byte range", op.Pattern)
		}
		c.Fill(byte(op.Pattern))
	case "clear":
		c.Clear()
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, op.Op)
	}
	return nil
}

// ParseValue parses a pixel value name: "on" (or empty), "off" or
// "invert".
func ParseValue(s string) (monogfx.Pixel, error) {
	switch strings.ToLower(s) {
	case "", "on":
		return monogfx.PixelOn, nil
	case "off":
		return monogfx.PixelOff, nil
	case "invert":
		return monogfx.PixelInvert, nil
	}
	return 0, fmt.Errorf("unknown pixel value %q", s)
}

// LookupEncoding returns the single-byte encoding for an IANA charset name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// resolveFont returns the built-in font or loads a GFX header through the
// default font cache.
func resolveFont(baseDir, name string) (*monogfx.Font, error) {
	if name == BuiltinFont {
		return monogfx.DefaultFont(), nil
	}
	return monogfx.LoadFontCached(resolvePath(baseDir, name))
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	return filepath.Join(baseDir, p)
}

// decodeHex decodes hex data, ignoring whitespace and an optional 0x
// prefix on each group.
func decodeHex(s string) ([]byte, error) {
	var sb strings.Builder
	for _, field := range strings.Fields(strings.ReplaceAll(s, ",", " ")) {
		field = strings.TrimPrefix(strings.TrimPrefix(field, "0x"), "0X")
		sb.WriteString(field)
	}
	data, err := hex.DecodeString(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	return data, nil
}

func loadImage(path string, maxWidth int) (monogfx.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return monogfx.Bitmap{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return monogfx.Bitmap{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return monogfx.BitmapFromImage(img, maxWidth)
}
