package debug

import "strconv"

// Pixel values (matching common/constants.go)
const (
	pxOff    = 0
	pxOn     = 1
	pxInvert = 2
)

// FormatValue returns a readable name for a pixel value.
func FormatValue(v uint8) string {
	switch v {
	case pxOff:
		return "off"
	case pxOn:
		return "on"
	case pxInvert:
		return "invert"
	}
	return "on(" + strconv.Itoa(int(v)) + ")"
}

// ClassifyRun names the path a bulk write takes through the compositor.
func ClassifyRun(d RunData) string {
	switch {
	case d.Clipped:
		return "clipped"
	case d.Written == 0:
		return "empty"
	case d.BitOffset == 0 && d.Truncated:
		return "aligned-truncated"
	case d.BitOffset == 0:
		return "aligned"
	case d.Truncated:
		return "shifted-truncated"
	}
	return "shifted"
}
