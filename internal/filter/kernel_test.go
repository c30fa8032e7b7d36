package filter

import (
	"math"
	"sync"
	"testing"
)

func TestGaussianKernelZeroRadius(t *testing.T) {
	kernel := GaussianKernel(0)

	if len(kernel) != 1 {
		t.Errorf("GaussianKernel(0) len = %d, want 1", len(kernel))
	}

	if kernel[0] != 1.0 {
		t.Errorf("GaussianKernel(0)[0] = %v, want 1.0", kernel[0])
	}
}

func TestGaussianKernelNegativeRadius(t *testing.T) {
	kernel := GaussianKernel(-5)

	if len(kernel) != 1 {
		t.Errorf("GaussianKernel(-5) len = %d, want 1", len(kernel))
	}
}

func TestKernelsNormalized(t *testing.T) {
	for _, kind := range []Kind{Box, Gaussian} {
		for _, r := range []int{1, 2, 3, 5, 10, 25, 100} {
			kernel := NewKernel(kind, r)

			var sum float64
			for _, v := range kernel {
				sum += float64(v)
			}

			if math.Abs(sum-1.0) > 0.001 {
				t.Errorf("%v kernel(%d) sum = %v, want ~1.0", kind, r, sum)
			}
		}
	}
}

func TestKernelSize(t *testing.T) {
	for _, kind := range []Kind{Box, Gaussian} {
		for _, r := range []int{0, 1, 2, 7, 25} {
			kernel := NewKernel(kind, r)
			if len(kernel) != 2*r+1 {
				t.Errorf("%v kernel(%d) len = %d, want %d", kind, r, len(kernel), 2*r+1)
			}
		}
	}
}

func TestGaussianKernelSymmetric(t *testing.T) {
	kernel := GaussianKernel(5)
	n := len(kernel)

	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if math.Abs(float64(kernel[i]-kernel[j])) > 0.0001 {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v (asymmetric)", i, kernel[i], j, kernel[j])
		}
	}
}

func TestGaussianKernelPeakAtCenter(t *testing.T) {
	kernel := GaussianKernel(5)
	center := len(kernel) / 2

	for i, v := range kernel {
		if i != center && v >= kernel[center] {
			t.Errorf("kernel[%d] = %v >= center %v", i, v, kernel[center])
		}
	}
}

func TestGaussianSigma(t *testing.T) {
	tests := []struct {
		radius int
		want   float64
	}{
		{0, 0.6},
		{1, 1.0},
		{5, 2.6},
		{25, 10.6},
	}

	for _, tt := range tests {
		got := GaussianSigma(tt.radius)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("GaussianSigma(%d) = %v, want %v", tt.radius, got, tt.want)
		}
	}
}

func TestBoxKernelUniform(t *testing.T) {
	kernel := BoxKernel(3)
	want := float32(1.0) / 7

	for i, v := range kernel {
		if v != want {
			t.Errorf("kernel[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Box, "box"},
		{Gaussian, "gaussian"},
		{Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestCachedKernel(t *testing.T) {
	k1 := CachedKernel(Gaussian, 4)
	k2 := CachedKernel(Gaussian, 4)

	if &k1[0] != &k2[0] {
		t.Error("CachedKernel should return the same slice for the same key")
	}

	box := CachedKernel(Box, 4)
	if &box[0] == &k1[0] {
		t.Error("CachedKernel should key on kind as well as radius")
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)

	for r := 1; r <= 4; r++ {
		c.get(Box, r)
	}
	if c.len() != 4 {
		t.Fatalf("cache len = %d, want 4", c.len())
	}

	c.get(Box, 5)
	if c.len() != 3 {
		t.Errorf("cache len after eviction = %d, want 3", c.len())
	}
}

func TestKernelCacheConcurrent(t *testing.T) {
	c := newKernelCache(8)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := c.get(Kind(i%2), i%10)
			if len(k) != 2*(i%10)+1 {
				t.Errorf("kernel len = %d, want %d", len(k), 2*(i%10)+1)
			}
		}(i)
	}

	wg.Wait()
}

func BenchmarkGaussianKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = GaussianKernel(20)
	}
}

func BenchmarkCachedKernel(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = CachedKernel(Gaussian, 20)
	}
}
