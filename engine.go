package blur

import (
	"fmt"

	"github.com/nativeblur/blur/internal/filter"
	"github.com/nativeblur/blur/internal/parallel"
)

// Engine blurs PixelBuffers with a fixed kernel and worker count.
//
// An Engine holds no per-call state. It is safe for concurrent use as long
// as concurrent calls do not share output buffers.
type Engine struct {
	kernel    Kernel
	maxRadius int

	// pool is nil for sequential engines.
	pool *parallel.WorkerPool
}

// NewEngine creates an engine. With WithWorkers(n > 1) the engine starts
// a worker pool that is released by Close.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		kernel:    o.kernel,
		maxRadius: o.maxRadius,
	}
	if o.workers > 1 {
		e.pool = parallel.NewWorkerPool(o.workers)
	}

	return e
}

// Kernel returns the kernel the engine applies.
func (e *Engine) Kernel() Kernel {
	return e.kernel
}

// Workers returns the number of goroutines sharing each pass.
func (e *Engine) Workers() int {
	if e.pool == nil {
		return 1
	}
	return e.pool.Workers()
}

// Close releases the engine's worker pool. Blurs issued after Close still
// complete, on the calling goroutine. Close is safe to call multiple times.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// Blur returns a blurred copy of src. src is never modified.
//
// radius 0 returns an unchanged copy. Otherwise each output pixel is the
// weighted average of 2*radius+1 samples along its row, then along its
// column, with samples past an edge clamped to the edge pixel. All four
// channels are averaged the same way.
func (e *Engine) Blur(src *PixelBuffer, radius int) (*PixelBuffer, error) {
	if err := e.validate(src, radius); err != nil {
		return nil, err
	}

	dst := &PixelBuffer{
		width:  src.width,
		height: src.height,
		data:   make([]uint8, len(src.data)),
	}
	e.run(dst.data, src.data, src.width, src.height, radius)

	return dst, nil
}

// BlurInto blurs src into dst, which must have the same dimensions and must
// not share memory with src. dst is left untouched when an error is returned.
func (e *Engine) BlurInto(dst, src *PixelBuffer, radius int) error {
	if err := e.validate(src, radius); err != nil {
		return err
	}
	if err := checkBuffer(dst); err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if dst.width != src.width || dst.height != src.height {
		return fmt.Errorf("%w: destination %dx%d, source %dx%d",
			ErrInvalidArgument, dst.width, dst.height, src.width, src.height)
	}
	if overlaps(dst.data, src.data) {
		return ErrAliased
	}

	e.run(dst.data, src.data, src.width, src.height, radius)
	return nil
}

// BlurBytes blurs a flat RGBA8 buffer of width*height pixels and returns a
// newly allocated result. pixels is never modified.
func (e *Engine) BlurBytes(pixels []byte, width, height, radius int) ([]byte, error) {
	src, err := WrapPixels(pixels, width, height)
	if err != nil {
		Logger().Warn("blur: rejected buffer", "width", width, "height", height, "len", len(pixels))
		return nil, err
	}

	dst, err := e.Blur(src, radius)
	if err != nil {
		return nil, err
	}
	return dst.data, nil
}

// validate checks src and radius before any allocation.
func (e *Engine) validate(src *PixelBuffer, radius int) error {
	if err := checkBuffer(src); err != nil {
		return err
	}
	if radius < 0 {
		Logger().Warn("blur: rejected radius", "radius", radius)
		return fmt.Errorf("%w: negative radius %d", ErrInvalidArgument, radius)
	}
	if radius > e.maxRadius {
		Logger().Warn("blur: rejected radius", "radius", radius, "max", e.maxRadius)
		return fmt.Errorf("%w: %d > %d", ErrRadiusTooLarge, radius, e.maxRadius)
	}
	return nil
}

// checkBuffer verifies the PixelBuffer invariant len(data) == w*h*4.
// Buffers built outside the constructors may violate it.
func checkBuffer(p *PixelBuffer) error {
	if p == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidArgument)
	}
	size, err := bufferSize(p.width, p.height)
	if err != nil {
		return err
	}
	if len(p.data) != size {
		return fmt.Errorf("%w: buffer length %d, want %d for %dx%d",
			ErrInvalidArgument, len(p.data), size, p.width, p.height)
	}
	return nil
}

// run performs the two passes. Inputs are already validated.
func (e *Engine) run(dst, src []uint8, width, height, radius int) {
	if radius == 0 {
		copy(dst, src)
		return
	}

	kernel := filter.CachedKernel(e.kernel.kind(), radius)
	tmp := filter.GetScratch(len(src))
	defer filter.PutScratch(tmp)

	Logger().Debug("blur",
		"width", width,
		"height", height,
		"radius", radius,
		"kernel", e.kernel.String(),
		"workers", e.Workers())

	if e.pool == nil {
		filter.Horizontal(src, tmp, width, 0, height, kernel)
		filter.Vertical(tmp, dst, width, height, 0, height, kernel)
		return
	}

	// Every horizontal band must finish before any vertical band reads tmp.
	bands := filter.Bands(height, e.pool.Workers())
	e.pool.RunBands(bands, func(start, end int) {
		filter.Horizontal(src, tmp, width, start, end, kernel)
	})
	e.pool.RunBands(bands, func(start, end int) {
		filter.Vertical(tmp, dst, width, height, start, end, kernel)
	})
}

// defaultEngine is the sequential box-blur engine behind the package-level
// functions.
var defaultEngine = NewEngine()

// Blur returns a box-blurred copy of src using the default sequential engine.
func Blur(src *PixelBuffer, radius int) (*PixelBuffer, error) {
	return defaultEngine.Blur(src, radius)
}

// BlurBytes box-blurs a flat RGBA8 buffer using the default sequential engine.
func BlurBytes(pixels []byte, width, height, radius int) ([]byte, error) {
	return defaultEngine.BlurBytes(pixels, width, height, radius)
}
