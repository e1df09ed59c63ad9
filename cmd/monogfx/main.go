// Command monogfx renders text or scene files onto a monochrome canvas and
// prints the result as ASCII, PNG, BMP or a hex dump of the buffer.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ryanlewis/monogfx"
	"github.com/ryanlewis/monogfx/internal/debug"
	"github.com/ryanlewis/monogfx/internal/scene"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	size        string
	fontPath    string
	encoding    string
	x, y        int
	invert      bool
	scenePath   string
	format      string
	output      string
	showVersion bool
	showHelp    bool
	debugMode   bool
	debugFile   string
	debugPretty bool
}

func newFlagSet(cfg *config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("monogfx", pflag.ContinueOnError)
	fs.StringVarP(&cfg.size, "size", "s", "128x64", "Canvas size as WIDTHxHEIGHT")
	fs.StringVarP(&cfg.fontPath, "font", "f", scene.BuiltinFont, "Path to a GFX font header, or \"builtin\"")
	fs.StringVarP(&cfg.encoding, "encoding", "e", "", "IANA charset used to map text onto font codes (e.g. ISO-8859-1)")
	fs.IntVar(&cfg.x, "x", 0, "Text cursor x")
	fs.IntVar(&cfg.y, "y", -1, "Text baseline y (-1 = just below the top edge)")
	fs.BoolVarP(&cfg.invert, "invert", "i", false, "Draw unset text on a set background")
	fs.StringVar(&cfg.scenePath, "scene", "", "Render a YAML scene file instead of text")
	fs.StringVarP(&cfg.format, "format", "F", "ascii", "Output format: ascii, png, bmp or hex")
	fs.StringVarP(&cfg.output, "output", "o", "", "Write output to file instead of stdout")
	fs.BoolVarP(&cfg.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&cfg.showHelp, "help", "h", false, "Show help message")
	fs.BoolVar(&cfg.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&cfg.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&cfg.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var cfg config
	fs := newFlagSet(&cfg)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if cfg.showVersion {
		fmt.Fprintf(stdout, "monogfx version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	text := strings.Join(fs.Args(), " ")
	if text == "" && cfg.scenePath == "" {
		fmt.Fprintln(stderr, "Error: no text or scene provided")
		printHelp(stderr, fs)
		return 1
	}

	var canvasOpts []monogfx.Option

	debug.InitFromEnv()
	if cfg.debugMode || cfg.debugFile != "" {
		debug.SetEnabled(true)
	}
	if debug.Enabled() {
		var output io.Writer = stderr
		if cfg.debugFile != "" {
			file, err := os.Create(cfg.debugFile)
			if err != nil {
				fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
				return 1
			}
			defer file.Close()
			output = file
		}

		var sink debug.Sink
		if cfg.debugPretty || debug.PrettyFromEnv() {
			sink = debug.NewPrettySink(output)
		} else {
			sink = debug.NewJSONSink(output)
		}
		if session := debug.NewSession(sink); session != nil {
			defer session.Close()
			canvasOpts = append(canvasOpts, monogfx.WithDebug(session))
		}
	}

	var (
		c   *monogfx.Canvas
		err error
	)
	if cfg.scenePath != "" {
		c, err = renderScene(cfg.scenePath, canvasOpts)
	} else {
		c, err = renderText(&cfg, text, canvasOpts)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer c.Close()

	out := stdout
	if cfg.output != "" {
		file, err := os.Create(cfg.output)
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file: %v\n", err)
			return 1
		}
		defer file.Close()
		out = file
	}

	if err := writeCanvas(out, c, cfg.format); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

func renderScene(path string, opts []monogfx.Option) (*monogfx.Canvas, error) {
	s, err := scene.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Render(filepath.Dir(path), opts...)
}

func renderText(cfg *config, text string, opts []monogfx.Option) (*monogfx.Canvas, error) {
	w, h, err := parseSize(cfg.size)
	if err != nil {
		return nil, err
	}

	font, err := loadFont(cfg.fontPath)
	if err != nil {
		return nil, err
	}
	opts = append(opts, monogfx.WithFont(font))

	if cfg.encoding != "" {
		enc, err := scene.LookupEncoding(cfg.encoding)
		if err != nil {
			return nil, err
		}
		opts = append(opts, monogfx.WithEncoding(enc))
	}

	c, err := monogfx.NewBuffered(w, h, opts...)
	if err != nil {
		return nil, err
	}

	y := cfg.y
	if y < 0 {
		y = ascent(font)
	}

	v := monogfx.PixelOn
	if cfg.invert {
		c.Fill(0xFF)
		v = monogfx.PixelOff
	}

	if err := c.Print(cfg.x, y, unescape(text), v); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// loadFont returns the built-in font or loads a GFX header.
func loadFont(name string) (*monogfx.Font, error) {
	if name == "" || name == scene.BuiltinFont {
		return monogfx.DefaultFont(), nil
	}
	return monogfx.LoadFont(resolveFontPath(name))
}

// resolveFontPath resolves a font path from either a full path or just a font name
func resolveFontPath(fontPath string) string {
	if filepath.Ext(fontPath) == ".h" {
		return fontPath
	}
	if _, err := os.Stat(fontPath); err == nil {
		return fontPath
	}
	withExt := fontPath + ".h"
	if _, err := os.Stat(withExt); err == nil {
		return withExt
	}
	inFonts := filepath.Join("fonts", withExt)
	if _, err := os.Stat(inFonts); err == nil {
		return inFonts
	}
	return fontPath
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", monogfx.ErrInvalidSize, w, h)
	}
	return w, h, nil
}

// ascent returns the distance from the baseline to the top of the tallest
// glyph, so text printed at that y starts on the first row.
func ascent(f *monogfx.Font) int {
	top := 0
	for _, g := range f.Glyphs {
		if g.Height > 0 && -int(g.YOffset) > top {
			top = -int(g.YOffset)
		}
	}
	return top
}

// unescape turns the two-character sequence \n into a newline so
// multi-line text can be passed as one argument.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

var errUnknownFormat = errors.New("unknown output format")

func writeCanvas(w io.Writer, c *monogfx.Canvas, format string) error {
	switch strings.ToLower(format) {
	case "ascii", "":
		return c.WriteASCII(w)
	case "hex":
		dumper := hex.Dumper(w)
		if _, err := dumper.Write(c.Buffer()); err != nil {
			return err
		}
		return dumper.Close()
	}

	f, err := monogfx.ParseFormat(format)
	if err != nil {
		return fmt.Errorf("%w %q", errUnknownFormat, format)
	}
	return c.Encode(w, f)
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "monogfx - monochrome display renderer")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  monogfx [flags] <text>")
	fmt.Fprintln(w, "  monogfx [flags] --scene scene.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %s=1         enable debug tracing\n", debug.EnvDebug)
	fmt.Fprintf(w, "  %s=1  pretty debug output\n", debug.EnvDebugPretty)
}
