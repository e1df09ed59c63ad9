package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{
		w:       bw,
		encoder: json.NewEncoder(bw),
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event]
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s\n", event.Timestamp, event.Phase, event.Event, event.SessionID)

	// Pretty print data based on type
	switch d := event.Data.(type) {
	case CanvasData:
		s.writeCanvas(d)
	case FillData:
		s.writeFill(d)
	case RunData:
		s.writeRun(d)
	case LineData:
		s.writeLine(d)
	case RectData:
		s.writeRect(d)
	case BitmapData:
		s.writeBitmap(d)
	case PrintStartData:
		s.writePrintStart(d)
	case GlyphData:
		s.writeGlyph(d)
	case PrintEndData:
		s.writePrintEnd(d)
	case DeviceErrorData:
		s.writeDeviceError(d)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		s.writeMapInt64(d)
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeCanvas(d CanvasData) {
	fmt.Fprintf(s.w, "  size: %dx%d, buffer: %d bytes, mode: %s\n", d.Width, d.Height, d.BufferSize, d.Mode)
	if d.Font != "" {
		fmt.Fprintf(s.w, "  font: %s\n", d.Font)
	}
}

func (s *PrettySink) writeFill(d FillData) {
	fmt.Fprintf(s.w, "  pattern: 0x%02X\n", d.Pattern)
	if d.Skipped {
		fmt.Fprintf(s.w, "  skipped: unbuffered\n")
	}
}

func (s *PrettySink) writeRun(d RunData) {
	fmt.Fprintf(s.w, "  start: (%d,%d) byte=%d bit=%d\n", d.X, d.Y, d.ByteStart, d.BitOffset)
	fmt.Fprintf(s.w, "  bytes: %d → %d, wrap: %t, path: %s\n", d.Requested, d.Written, d.Wrap, ClassifyRun(d))
}

func (s *PrettySink) writeLine(d LineData) {
	fmt.Fprintf(s.w, "  from: (%d,%d) to: (%d,%d), value: %s\n", d.X0, d.Y0, d.X1, d.Y1, FormatValue(d.Value))
	if d.Steep {
		fmt.Fprintf(s.w, "  steep: true\n")
	}
}

func (s *PrettySink) writeRect(d RectData) {
	fmt.Fprintf(s.w, "  at: (%d,%d) size: %dx%d, value: %s\n", d.X, d.Y, d.W, d.H, FormatValue(d.Value))
}

func (s *PrettySink) writeBitmap(d BitmapData) {
	fmt.Fprintf(s.w, "  at: (%d,%d) size: %dx%d, bytes: %d, value: %s\n",
		d.X, d.Y, d.Width, d.Height, d.Bytes, FormatValue(d.Value))
	if !d.Aligned {
		fmt.Fprintf(s.w, "  warning: width is not a multiple of 8\n")
	}
}

func (s *PrettySink) writePrintStart(d PrintStartData) {
	fmt.Fprintf(s.w, "  text: %q (encoded: %d bytes)\n", d.Text, d.Encoded)
	if d.Encoding != "" {
		fmt.Fprintf(s.w, "  encoding: %s\n", d.Encoding)
	}
	fmt.Fprintf(s.w, "  origin: (%d,%d), range: %s-%s, line_height: %d\n",
		d.X, d.Y, codeStr(d.FontFirst), codeStr(d.FontLast), d.LineHeight)
}

func (s *PrettySink) writeGlyph(d GlyphData) {
	fmt.Fprintf(s.w, "  index: %d, code: %s, action: %s\n", d.Index, codeStr(d.Code), d.Action)
	fmt.Fprintf(s.w, "  cursor: (%d,%d)", d.CursorX, d.CursorY)
	if d.Action == "draw" {
		fmt.Fprintf(s.w, ", size: %dx%d, advance: %d", d.Width, d.Height, d.Advance)
	}
	fmt.Fprintln(s.w)
}

func (s *PrettySink) writePrintEnd(d PrintEndData) {
	fmt.Fprintf(s.w, "  glyphs: %d, skipped: %d, newlines: %d\n", d.Glyphs, d.Skipped, d.Newlines)
	fmt.Fprintf(s.w, "  cursor: (%d,%d)\n", d.CursorX, d.CursorY)
}

func (s *PrettySink) writeDeviceError(d DeviceErrorData) {
	fmt.Fprintf(s.w, "  pixel: (%d,%d) value: %s\n", d.X, d.Y, FormatValue(d.Value))
	fmt.Fprintf(s.w, "  error: %s (count: %d)\n", d.Error, d.Count)
}

func (s *PrettySink) writeMap(d map[string]interface{}) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %v\n", k, v)
	}
}

func (s *PrettySink) writeMapInt64(d map[string]int64) {
	for k, v := range d {
		fmt.Fprintf(s.w, "  %s: %d\n", k, v)
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}

// codeStr formats a character code for display: 'X' (0x58) or NUL for 0.
func codeStr(c byte) string {
	if c == 0 {
		return "NUL"
	}
	if c >= 32 && c < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", c, c)
	}
	return fmt.Sprintf("0x%02X", c)
}
