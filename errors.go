package blur

import (
	"errors"
	"fmt"
)

// Errors returned by the engine and by PixelBuffer constructors.
// Returned errors wrap these with call details; test with errors.Is.
var (
	// ErrInvalidArgument is returned for non-positive dimensions, a pixel
	// slice whose length is not width*height*4, a negative radius, a nil
	// buffer, or a destination whose size does not match the source.
	ErrInvalidArgument = errors.New("blur: invalid argument")

	// ErrOutOfMemory is returned when a buffer of the requested size cannot
	// be addressed. The check happens before anything is allocated.
	ErrOutOfMemory = errors.New("blur: out of memory")

	// ErrRadiusTooLarge is returned when the radius exceeds the engine's
	// maximum (see WithMaxRadius). It wraps ErrOutOfMemory.
	ErrRadiusTooLarge = fmt.Errorf("%w: radius too large", ErrOutOfMemory)

	// ErrAliased is returned by BlurInto when dst and src share memory.
	// It wraps ErrInvalidArgument.
	ErrAliased = fmt.Errorf("%w: destination overlaps source", ErrInvalidArgument)
)
