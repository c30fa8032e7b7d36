// Package blur blurs raw RGBA8 pixel buffers.
//
// # Overview
//
// The engine applies a separable blur: every row is convolved with a 1D
// kernel of 2*radius+1 taps, then every column of that result. Samples that
// fall outside the image are clamped to the nearest edge pixel, so a
// uniform image stays exactly uniform at any radius. Cost is O(W*H*radius).
//
// # Quick Start
//
//	import "github.com/nativeblur/blur"
//
//	src, err := blur.WrapPixels(pix, width, height)
//	if err != nil {
//	    return err
//	}
//	out, err := blur.Blur(src, 10)
//
// The input is never modified: keep src around to "reset" to the original.
//
// # Kernels
//
// KernelBox (the default) weights every tap equally. KernelGaussian uses
// sigma = 0.4*radius + 0.6, which keeps small radii soft while large radii
// approach a box blur.
//
// # Concurrency
//
// An Engine has no per-call state. NewEngine(WithWorkers(n)) splits each
// pass into row bands run on n goroutines; the output is identical to the
// sequential engine.
//
// # Logging
//
// The package is silent by default. See SetLogger.
package blur
