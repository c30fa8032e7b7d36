package filter

import (
	"math"
	"sync"
)

// Kind selects the weighting of a 1D blur kernel.
type Kind uint8

const (
	// Box weights every tap equally.
	Box Kind = iota

	// Gaussian weights taps by a normal distribution whose sigma
	// grows with the radius (see GaussianSigma).
	Gaussian
)

// String returns the kernel name as used in configuration files.
func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case Gaussian:
		return "gaussian"
	default:
		return "unknown"
	}
}

// GaussianSigma returns the standard deviation used for a Gaussian kernel
// of the given radius. The linear fit sigma = 0.4*r + 0.6 keeps small radii
// visibly soft while large radii approach a box blur.
func GaussianSigma(radius int) float64 {
	return 0.4*float64(radius) + 0.6
}

// GaussianKernel generates a 1D Gaussian kernel with 2*radius+1 taps.
// The kernel is normalized so all values sum to 1.0.
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the 1/(σ√(2π)) factor cancels on normalization.
	sigma := GaussianSigma(radius)
	twoSigmaSq := 2 * sigma * sigma
	weights := make([]float64, size)
	sum := float64(0)

	for i := 0; i < size; i++ {
		x := float64(i - radius)
		weights[i] = math.Exp(-(x * x) / twoSigmaSq)
		sum += weights[i]
	}

	for i := range kernel {
		kernel[i] = float32(weights[i] / sum)
	}

	return kernel
}

// BoxKernel generates a 1D box (uniform) kernel for the given radius.
// All values are equal: 1/(2*radius+1).
func BoxKernel(radius int) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	size := radius*2 + 1
	kernel := make([]float32, size)
	val := float32(1.0) / float32(size)

	for i := range kernel {
		kernel[i] = val
	}

	return kernel
}

// NewKernel generates a kernel of the given kind and radius.
func NewKernel(kind Kind, radius int) []float32 {
	if kind == Gaussian {
		return GaussianKernel(radius)
	}
	return BoxKernel(radius)
}

// kernelKey identifies a cached kernel.
type kernelKey struct {
	kind   Kind
	radius int
}

// kernelCache caches computed kernels to avoid recomputation.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[kernelKey][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

// newKernelCache creates a kernel cache with the given maximum entries.
func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[kernelKey][]float32),
		maxLen: maxLen,
	}
}

// get retrieves a kernel from cache or generates and caches it.
func (c *kernelCache) get(kind Kind, radius int) []float32 {
	key := kernelKey{kind: kind, radius: radius}

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := NewKernel(kind, radius)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half the entries; map order makes the choice arbitrary.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

// len returns the number of cached kernels.
func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedKernel returns a shared kernel for the kind and radius.
// Callers must not modify the returned slice.
func CachedKernel(kind Kind, radius int) []float32 {
	return defaultKernelCache.get(kind, radius)
}
