package filter

import "strconv"

// Test helper functions shared across filter tests.

// filledPixels returns a w*h RGBA8 buffer filled with one color.
func filledPixels(w, h int, r, g, b, a uint8) []uint8 {
	pix := make([]uint8, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i+0] = r
		pix[i+1] = g
		pix[i+2] = b
		pix[i+3] = a
	}
	return pix
}

// setPixel writes one RGBA8 pixel.
func setPixel(pix []uint8, w, x, y int, r, g, b, a uint8) {
	i := (y*w + x) * 4
	pix[i+0] = r
	pix[i+1] = g
	pix[i+2] = b
	pix[i+3] = a
}

// pixelAt reads one RGBA8 pixel.
func pixelAt(pix []uint8, w, x, y int) [4]uint8 {
	i := (y*w + x) * 4
	return [4]uint8{pix[i], pix[i+1], pix[i+2], pix[i+3]}
}

// runBlur runs both passes over the whole image in a single band.
func runBlur(src []uint8, w, h int, kernel []float32) []uint8 {
	tmp := make([]float32, w*h*4)
	dst := make([]uint8, w*h*4)
	Horizontal(src, tmp, w, 0, h, kernel)
	Vertical(tmp, dst, w, h, 0, h, kernel)
	return dst
}

// formatInt formats an integer for benchmark names.
func formatInt(i int) string {
	return strconv.Itoa(i)
}
