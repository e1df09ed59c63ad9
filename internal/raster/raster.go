// Package raster implements the drawing algorithms of the engine in terms of
// repeated single-pixel plots. It knows nothing about buffers or devices:
// every algorithm reports the pixels it touches through a PlotFunc.
package raster

import "github.com/ryanlewis/monogfx/internal/bits"

// PlotFunc receives one pixel position. Positions may lie outside any
// surface; clipping is the caller's job.
type PlotFunc func(x, y int)

// Line plots the integer Bresenham line from (x0, y0) to (x1, y1).
//
// Steep lines are transposed for the iteration and un-transposed on each
// plot. Endpoints are ordered so that x0 <= x1, which makes the output
// identical for both endpoint orders.
func Line(x0, y0, x1, y1 int, plot PlotFunc) {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := abs(y1 - y0)
	err := dx / 2

	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	for ; x0 <= x1; x0++ {
		if steep {
			plot(y0, x0)
		} else {
			plot(x0, y0)
		}
		err -= dy
		if err < 0 {
			y0 += ystep
			err += dx
		}
	}
}

// Rect plots every pixel of the filled rectangle with top-left (x, y) and
// size w x h, row by row. Non-positive sizes plot nothing.
func Rect(x, y, w, h int, plot PlotFunc) {
	for i := 0; i < h; i++ {
		for a := 0; a < w; a++ {
			plot(x+a, y+i)
		}
	}
}

// Blit walks a packed w x h source row-major and plots (a, i) for every set
// source bit, relative to the source's top-left corner.
//
// The byte index is a running counter over the whole source while the bit
// index is the column modulo 8. This reproduces the source faithfully only
// when each row holds a multiple of 8 pixels; narrower sources must be
// padded before they get here (see bits.RepackRows). Bytes past the end of
// data read as unset.
func Blit(data []byte, w, h int, plot PlotFunc) {
	idx := 0
	for i := 0; i < h; i++ {
		for a := 0; a < w; a++ {
			b := idx / bits.PerByte
			if b < len(data) && (data[b]<<uint(a%bits.PerByte))&bits.MSB != 0 {
				plot(a, i)
			}
			idx++
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
