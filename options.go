package blur

import (
	"fmt"
	"strings"

	"github.com/nativeblur/blur/internal/filter"
)

// Kernel selects the 1D weights applied by both blur passes.
type Kernel uint8

const (
	// KernelBox averages 2*radius+1 samples with equal weight.
	KernelBox Kernel = iota

	// KernelGaussian weights 2*radius+1 samples by a Gaussian with
	// sigma = 0.4*radius + 0.6.
	KernelGaussian
)

// String returns "box" or "gaussian".
func (k Kernel) String() string {
	return k.kind().String()
}

// kind maps the public kernel to the filter package's kernel kind.
func (k Kernel) kind() filter.Kind {
	if k == KernelGaussian {
		return filter.Gaussian
	}
	return filter.Box
}

// ParseKernel parses a kernel name. The empty string selects KernelBox.
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "box":
		return KernelBox, nil
	case "gaussian", "gauss":
		return KernelGaussian, nil
	default:
		return KernelBox, fmt.Errorf("%w: unknown kernel %q", ErrInvalidArgument, s)
	}
}

// DefaultMaxRadius is the largest radius an engine accepts unless
// configured otherwise with WithMaxRadius.
const DefaultMaxRadius = 4096

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential box blur (the default)
//	e := blur.NewEngine()
//
//	// Gaussian weights, rows split across 4 goroutines
//	e := blur.NewEngine(blur.WithKernel(blur.KernelGaussian), blur.WithWorkers(4))
//	defer e.Close()
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	kernel    Kernel
	workers   int
	maxRadius int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		kernel:    KernelBox,
		workers:   1,
		maxRadius: DefaultMaxRadius,
	}
}

// WithKernel sets the kernel used by the engine.
func WithKernel(k Kernel) Option {
	return func(o *engineOptions) {
		o.kernel = k
	}
}

// WithWorkers sets how many goroutines share each pass.
// Values <= 1 run both passes on the calling goroutine. Output is
// byte-identical for every worker count.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithMaxRadius sets the largest accepted radius. Non-positive values
// keep DefaultMaxRadius.
func WithMaxRadius(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.maxRadius = n
		}
	}
}
