package blur

import (
	"image/color"
	"testing"
)

// Test helper functions shared across blur tests.

// filledBuffer returns a w*h buffer filled with c.
func filledBuffer(t testing.TB, w, h int, c color.NRGBA) *PixelBuffer {
	t.Helper()
	p, err := NewPixelBuffer(w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer(%d, %d) error = %v", w, h, err)
	}
	p.Fill(c)
	return p
}

// noisyBuffer returns a w*h buffer of deterministic pseudo-random bytes.
func noisyBuffer(t testing.TB, w, h int, seed uint32) *PixelBuffer {
	t.Helper()
	p, err := NewPixelBuffer(w, h)
	if err != nil {
		t.Fatalf("NewPixelBuffer(%d, %d) error = %v", w, h, err)
	}
	state := seed*2654435761 + 1
	for i := range p.data {
		// xorshift32
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		p.data[i] = uint8(state >> 24)
	}
	return p
}

// channelVariance returns the population variance of one channel (0=R..3=A).
func channelVariance(p *PixelBuffer, ch int) float64 {
	n := float64(p.width * p.height)
	var sum, sumSq float64
	for i := ch; i < len(p.data); i += 4 {
		v := float64(p.data[i])
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	return sumSq/n - mean*mean
}
