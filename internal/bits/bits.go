// Package bits implements addressing and compositing for row-major,
// MSB-first packed 1-bpp bitmaps.
//
// Bit 0 of a byte (mask 0x80) is the leftmost pixel of its 8-pixel group.
// Every read and write path in the module goes through this package so the
// bit order cannot drift between them.
package bits

// MSB is the mask of the leftmost pixel in a byte.
const MSB = 0x80

// PerByte is the number of pixels packed into one byte.
const PerByte = 8

// Address maps (x, y) on a surface of the given width to a byte offset and
// a bit offset within that byte. It performs no bounds checking.
func Address(x, y, width int) (byteOffset, bitOffset int) {
	cursor := y*width + x
	return cursor / PerByte, cursor % PerByte
}

// Mask returns the single-bit mask for a bit offset in [0, 8).
func Mask(bitOffset int) byte {
	return MSB >> uint(bitOffset)
}

// Stride returns the number of bytes needed for a row of width pixels.
func Stride(width int) int {
	return (width + PerByte - 1) / PerByte
}

// Size returns the number of bytes needed to hold width*height pixels.
func Size(width, height int) int {
	return (width*height + PerByte - 1) / PerByte
}

// CompositeRun writes src into dst starting at byte index start, shifted
// right by bitOffset bits.
//
// With bitOffset 0 the bytes are copied as-is. Otherwise each destination
// byte is the carry from the previous source byte OR the current source
// byte shifted right. The leading bitOffset bits of the first destination
// byte are preserved. Exactly len(src) destination bytes are touched: the
// carry left after the last source byte is dropped, so the final bitOffset
// bits of src are never written. The destination index wraps to 0 when it
// reaches len(dst).
func CompositeRun(dst []byte, start, bitOffset int, src []byte) {
	n := len(dst)
	if n == 0 || len(src) == 0 {
		return
	}

	idx := start % n
	if idx < 0 {
		idx += n
	}

	if bitOffset == 0 {
		for _, b := range src {
			dst[idx] = b
			idx++
			if idx >= n {
				idx = 0
			}
		}
		return
	}

	shift := uint(bitOffset)
	keep := byte(0xFF) << (PerByte - shift)
	carry := dst[idx] & keep

	for _, b := range src {
		dst[idx] = carry | b>>shift
		carry = b << (PerByte - shift)
		idx++
		if idx >= n {
			idx = 0
		}
	}
}

// RepackRows extracts a width x height image stored as a continuous bit
// stream starting at bit index bitStart of src, and returns it with every
// row padded to a byte boundary. Bits beyond the end of src read as unset.
func RepackRows(src []byte, bitStart, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}

	stride := Stride(width)
	out := make([]byte, stride*height)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			bit := bitStart + row*width + col
			if bit/PerByte >= len(src) {
				return out
			}
			if src[bit/PerByte]&Mask(bit%PerByte) != 0 {
				out[row*stride+col/PerByte] |= Mask(col % PerByte)
			}
		}
	}

	return out
}
