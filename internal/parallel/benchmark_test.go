package parallel

import (
	"fmt"
	"testing"
)

// =============================================================================
// WorkerPool
// =============================================================================

func BenchmarkWorkerPool_Create(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pool := NewWorkerPool(0)
		pool.Close()
	}
}

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("items=%d", n), func(b *testing.B) {
			pool := NewWorkerPool(0)
			defer pool.Close()

			work := make([]func(), n)
			for i := range work {
				work[i] = func() {}
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.ExecuteAll(work)
			}
		})
	}
}

// =============================================================================
// Row bands over an HD RGBA frame
// =============================================================================

const (
	hdWidth  = 1920
	hdHeight = 1080
)

// hdBands splits hdHeight rows into n contiguous bands.
func hdBands(n int) [][2]int {
	bands := make([][2]int, 0, n)
	per, extra := hdHeight/n, hdHeight%n
	start := 0
	for i := 0; i < n; i++ {
		end := start + per
		if i < extra {
			end++
		}
		bands = append(bands, [2]int{start, end})
		start = end
	}
	return bands
}

func BenchmarkRunBands_ClearHD(b *testing.B) {
	pix := make([]byte, hdWidth*hdHeight*4)
	stride := hdWidth * 4

	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			pool := NewWorkerPool(workers)
			defer pool.Close()
			bands := hdBands(workers * 4)

			b.SetBytes(int64(len(pix)))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				pool.RunBands(bands, func(start, end int) {
					clear(pix[start*stride : end*stride])
				})
			}
		})
	}
}

func BenchmarkRunBands_SumHD(b *testing.B) {
	pix := make([]byte, hdWidth*hdHeight*4)
	for i := range pix {
		pix[i] = byte(i)
	}
	stride := hdWidth * 4

	pool := NewWorkerPool(0)
	defer pool.Close()
	bands := hdBands(pool.Workers())
	sums := make([]int, hdHeight) // indexed by band start row

	b.SetBytes(int64(len(pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.RunBands(bands, func(start, end int) {
			s := 0
			for _, v := range pix[start*stride : end*stride] {
				s += int(v)
			}
			sums[start] = s
		})
	}
}
