package blur

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"unsafe"

	xdraw "golang.org/x/image/draw"
)

// PixelBuffer is a row-major RGBA8 image: 4 bytes per pixel, no row padding,
// straight (non-premultiplied) alpha.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8
}

// NewPixelBuffer allocates a zeroed buffer of the given dimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}

	return &PixelBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, size),
	}, nil
}

// WrapPixels returns a PixelBuffer backed by pix without copying.
// len(pix) must equal width*height*4.
func WrapPixels(pix []byte, width, height int) (*PixelBuffer, error) {
	size, err := bufferSize(width, height)
	if err != nil {
		return nil, err
	}
	if len(pix) != size {
		return nil, fmt.Errorf("%w: buffer length %d, want %d for %dx%d",
			ErrInvalidArgument, len(pix), size, width, height)
	}

	return &PixelBuffer{width: width, height: height, data: pix}, nil
}

// bufferSize returns width*height*4 after validating both dimensions.
func bufferSize(width, height int) (int, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	if width > math.MaxInt/4/height {
		return 0, fmt.Errorf("%w: %dx%d pixels", ErrOutOfMemory, width, height)
	}
	return width * height * 4, nil
}

// FromImage copies any image into a new PixelBuffer, converting pixels to
// non-premultiplied RGBA8. The result's origin is always (0, 0).
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	pb, err := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Tightly packed NRGBA copies straight through.
	if src, ok := img.(*image.NRGBA); ok && src.Stride == pb.width*4 {
		start := src.PixOffset(bounds.Min.X, bounds.Min.Y)
		copy(pb.data, src.Pix[start:start+len(pb.data)])
		return pb, nil
	}

	dst := &image.NRGBA{
		Pix:    pb.data,
		Stride: pb.width * 4,
		Rect:   image.Rect(0, 0, pb.width, pb.height),
	}
	xdraw.Draw(dst, dst.Rect, img, bounds.Min, xdraw.Src)

	return pb, nil
}

// Width returns the width in pixels.
func (p *PixelBuffer) Width() int {
	return p.width
}

// Height returns the height in pixels.
func (p *PixelBuffer) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format). The slice is not a copy.
func (p *PixelBuffer) Data() []uint8 {
	return p.data
}

// Clone returns a deep copy of the buffer.
func (p *PixelBuffer) Clone() *PixelBuffer {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &PixelBuffer{width: p.width, height: p.height, data: data}
}

// Equal reports whether both buffers have the same size and bytes.
func (p *PixelBuffer) Equal(other *PixelBuffer) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.width != other.width || p.height != other.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// RGBAAt returns the channels of one pixel. Out-of-bounds coordinates
// return transparent black.
func (p *PixelBuffer) RGBAAt(x, y int) color.NRGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.NRGBA{}
	}
	i := (y*p.width + x) * 4
	return color.NRGBA{R: p.data[i+0], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetRGBA sets the channels of one pixel. Out-of-bounds writes are ignored.
func (p *PixelBuffer) SetRGBA(x, y int, c color.NRGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// Fill sets every pixel to c.
func (p *PixelBuffer) Fill(c color.NRGBA) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// ToImage copies the buffer into a new image.NRGBA.
func (p *PixelBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *PixelBuffer) At(x, y int) color.Color {
	return p.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// overlaps reports whether two byte slices share any memory.
func overlaps(a, b []uint8) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return a0 < b0+uintptr(len(b)) && b0 < a0+uintptr(len(a))
}
