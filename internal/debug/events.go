package debug

// CanvasData describes a canvas when it is created.
type CanvasData struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	BufferSize int    `json:"buffer_size"`
	Mode       string `json:"mode"` // "buffered", "unbuffered"
	Font       string `json:"font,omitempty"`
}

// FillData records a fill of the whole buffer.
type FillData struct {
	Pattern byte `json:"pattern"`
	Skipped bool `json:"skipped,omitempty"`
}

// RunData records a bulk buffer write.
type RunData struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Requested int  `json:"requested"`
	Written   int  `json:"written"`
	ByteStart int  `json:"byte_start"`
	BitOffset int  `json:"bit_offset"`
	Wrap      bool `json:"wrap"`
	Truncated bool `json:"truncated"`
	Clipped   bool `json:"clipped,omitempty"`
}

// LineData records a line draw.
type LineData struct {
	X0    int   `json:"x0"`
	Y0    int   `json:"y0"`
	X1    int   `json:"x1"`
	Y1    int   `json:"y1"`
	Value uint8 `json:"value"`
	Steep bool  `json:"steep"`
}

// RectData records a filled rectangle draw.
type RectData struct {
	X     int   `json:"x"`
	Y     int   `json:"y"`
	W     int   `json:"w"`
	H     int   `json:"h"`
	Value uint8 `json:"value"`
}

// BitmapData records a bitmap blit.
type BitmapData struct {
	X       int   `json:"x"`
	Y       int   `json:"y"`
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Bytes   int   `json:"bytes"`
	Value   uint8 `json:"value"`
	Aligned bool  `json:"aligned"` // width is a multiple of 8
}

// PrintStartData describes the start of a Print call.
type PrintStartData struct {
	Text       string `json:"text"`
	Encoded    int    `json:"encoded_len"`
	Encoding   string `json:"encoding,omitempty"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	FontFirst  byte   `json:"font_first"`
	FontLast   byte   `json:"font_last"`
	LineHeight int    `json:"line_height"`
}

// GlyphData records one character handled by Print.
type GlyphData struct {
	Index   int    `json:"index"`
	Code    byte   `json:"code"`
	CursorX int    `json:"cursor_x"`
	CursorY int    `json:"cursor_y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Advance int    `json:"advance"`
	Action  string `json:"action"` // "draw", "newline", "skip", "end"
}

// PrintEndData summarises a Print call.
type PrintEndData struct {
	Glyphs   int `json:"glyphs"`
	Skipped  int `json:"skipped"`
	Newlines int `json:"newlines"`
	CursorX  int `json:"cursor_x"`
	CursorY  int `json:"cursor_y"`
}

// DeviceErrorData records an error returned by a device pixel writer.
type DeviceErrorData struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Value uint8  `json:"value"`
	Error string `json:"error"`
	Count int    `json:"count"`
}
