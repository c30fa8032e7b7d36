package filter

import "sync"

// Horizontal applies 1D horizontal convolution to rows [rowStart, rowEnd).
// Reads RGBA8 pixels from src, writes unrounded RGBA float32 values to tmp.
// Taps past either end of a row are clamped to that row's edge pixel.
func Horizontal(src []uint8, tmp []float32, width, rowStart, rowEnd int, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2

	for y := rowStart; y < rowEnd; y++ {
		row := y * width

		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k := 0; k < kernelSize; k++ {
				kx := x + k - halfKernel

				// Clamp to row bounds (edge extension)
				if kx < 0 {
					kx = 0
				} else if kx >= width {
					kx = width - 1
				}

				srcIdx := (row + kx) * 4
				weight := kernel[k]

				r += float32(src[srcIdx+0]) * weight
				g += float32(src[srcIdx+1]) * weight
				b += float32(src[srcIdx+2]) * weight
				a += float32(src[srcIdx+3]) * weight
			}

			tmpIdx := (row + x) * 4
			tmp[tmpIdx+0] = r
			tmp[tmpIdx+1] = g
			tmp[tmpIdx+2] = b
			tmp[tmpIdx+3] = a
		}
	}
}

// Vertical applies 1D vertical convolution and writes rows [rowStart, rowEnd)
// of dst. It reads any row of tmp, so the horizontal pass must be complete
// for the whole image before any band of the vertical pass starts.
func Vertical(tmp []float32, dst []uint8, width, height, rowStart, rowEnd int, kernel []float32) {
	kernelSize := len(kernel)
	halfKernel := kernelSize / 2

	for y := rowStart; y < rowEnd; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32

			for k := 0; k < kernelSize; k++ {
				ky := y + k - halfKernel

				// Clamp to column bounds (edge extension)
				if ky < 0 {
					ky = 0
				} else if ky >= height {
					ky = height - 1
				}

				tmpIdx := (ky*width + x) * 4
				weight := kernel[k]

				r += tmp[tmpIdx+0] * weight
				g += tmp[tmpIdx+1] * weight
				b += tmp[tmpIdx+2] * weight
				a += tmp[tmpIdx+3] * weight
			}

			dstIdx := (y*width + x) * 4
			dst[dstIdx+0] = clampUint8(r)
			dst[dstIdx+1] = clampUint8(g)
			dst[dstIdx+2] = clampUint8(b)
			dst[dstIdx+3] = clampUint8(a)
		}
	}
}

// Bands splits rows [0, height) into at most n contiguous, non-empty bands.
// Each band is a [start, end) pair. The first height%n bands get one extra row.
func Bands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([][2]int, 0, n)
	size := height / n
	extra := height % n
	start := 0

	for i := 0; i < n; i++ {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, [2]int{start, end})
		start = end
	}

	return bands
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Scratch buffer pool for the horizontal pass output.
var scratchPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// maxPooledScratch is the largest buffer kept in the pool (64MB of float32).
const maxPooledScratch = 16 * 1024 * 1024

// GetScratch returns a float32 buffer of exactly size elements.
// Contents are unspecified; the horizontal pass overwrites every element.
func GetScratch(size int) []float32 {
	wrapper := scratchPool.Get().(*floatBuffer)

	if cap(wrapper.data) < size {
		scratchPool.Put(wrapper)
		return make([]float32, size)
	}

	return wrapper.data[:size]
}

// PutScratch returns a buffer obtained from GetScratch to the pool.
func PutScratch(buf []float32) {
	if cap(buf) <= maxPooledScratch {
		scratchPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}

// clampUint8 clamps a float32 to [0, 255] and converts to uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5) // Round to nearest
}
