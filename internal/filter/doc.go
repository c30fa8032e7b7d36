// Package filter holds the separable blur primitives behind the blur engine.
//
// A blur runs as two passes over a row-major RGBA8 buffer:
//   - Horizontal: uint8 pixels -> float32 scratch, one row band at a time
//   - Vertical: float32 scratch -> uint8 pixels, rounded and clamped
//
// Both passes take a row range so the engine can split an image into bands
// and run them on a worker pool. Kernels are 2*radius+1 taps long and are
// cached per (kind, radius).
package filter
