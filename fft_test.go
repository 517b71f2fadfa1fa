package main

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	dspfft "github.com/mjibson/go-dsp/fft"
)

func randComplexGrid(n int, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	a := make([]complex128, n)
	for i := range a {
		a[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return a
}

// directDFT is the O(n^2) reference the fast transform must agree with.
func directDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			angle := -2 * math.Pi * float64(k) * float64(j) / float64(n)
			sum += x[j] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}

func TestFFT1DMatchesDirectDFT(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 32, 128} {
		a := randComplexGrid(n, int64(n))
		want := directDFT(a)
		if err := fft1D(a); err != nil {
			t.Fatalf("fft1D(n=%d): %v", n, err)
		}
		for i := range a {
			if cmplx.Abs(a[i]-want[i]) > 1e-9 {
				t.Fatalf("n=%d index %d: got %v, want %v", n, i, a[i], want[i])
			}
		}
	}
}

func TestFFT1DMatchesGoDSP(t *testing.T) {
	a := randComplexGrid(256, 7)
	want := dspfft.FFT(append([]complex128(nil), a...))
	if err := fft1D(a); err != nil {
		t.Fatalf("fft1D: %v", err)
	}
	for i := range a {
		if cmplx.Abs(a[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, go-dsp %v", i, a[i], want[i])
		}
	}
}

func TestIFFT1DRoundTrip(t *testing.T) {
	a := randComplexGrid(512, 11)
	orig := append([]complex128(nil), a...)
	if err := fft1D(a); err != nil {
		t.Fatalf("fft1D: %v", err)
	}
	if err := ifft1D(a); err != nil {
		t.Fatalf("ifft1D: %v", err)
	}
	for i := range a {
		if cmplx.Abs(a[i]-orig[i]) > 1e-9 {
			t.Fatalf("index %d: got %v, want %v", i, a[i], orig[i])
		}
	}
}

func TestFFT1DTrivialSizes(t *testing.T) {
	if err := fft1D(nil); err != nil {
		t.Fatalf("length 0 should be a no-op, got %v", err)
	}
	one := []complex128{3 + 4i}
	if err := fft1D(one); err != nil {
		t.Fatalf("length 1 should be a no-op, got %v", err)
	}
	if one[0] != 3+4i {
		t.Fatalf("length-1 transform mutated its input: %v", one[0])
	}
}

func TestFFT1DRejectsNonPowerOfTwo(t *testing.T) {
	a := make([]complex128, 6)
	err := fft1D(a)
	if !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("want ErrInvalidSize for length 6, got %v", err)
	}
	if err := ifft1D(make([]complex128, 12)); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("want ErrInvalidSize for inverse length 12, got %v", err)
	}
}

func TestFFT2DRoundTrip(t *testing.T) {
	sizes := []struct{ w, h int }{
		{4, 4},
		{64, 64},
		{256, 256},
		{128, 64},
	}
	for _, sz := range sizes {
		f, err := newFFT2(sz.w, sz.h)
		if err != nil {
			t.Fatalf("newFFT2(%dx%d): %v", sz.w, sz.h, err)
		}
		data := randComplexGrid(sz.w*sz.h, int64(sz.w*1000+sz.h))
		orig := append([]complex128(nil), data...)

		if err := f.Forward(data); err != nil {
			t.Fatalf("Forward %dx%d: %v", sz.w, sz.h, err)
		}
		if err := f.Inverse(data); err != nil {
			t.Fatalf("Inverse %dx%d: %v", sz.w, sz.h, err)
		}
		for i := range data {
			if cmplx.Abs(data[i]-orig[i]) > 1e-9 {
				t.Fatalf("%dx%d index %d: got %v, want %v", sz.w, sz.h, i, data[i], orig[i])
			}
		}
	}
}

func TestFFT2DMatchesRowColumnGoDSP(t *testing.T) {
	const w, h = 16, 8
	f, err := newFFT2(w, h)
	if err != nil {
		t.Fatal(err)
	}
	data := randComplexGrid(w*h, 23)

	// Reference: go-dsp row transforms, then column transforms.
	ref := make([][]complex128, h)
	for y := 0; y < h; y++ {
		ref[y] = dspfft.FFT(append([]complex128(nil), data[y*w:(y+1)*w]...))
	}
	for x := 0; x < w; x++ {
		col := make([]complex128, h)
		for y := 0; y < h; y++ {
			col[y] = ref[y][x]
		}
		col = dspfft.FFT(col)
		for y := 0; y < h; y++ {
			ref[y][x] = col[y]
		}
	}

	if err := f.Forward(data); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if cmplx.Abs(data[y*w+x]-ref[y][x]) > 1e-9 {
				t.Fatalf("(%d,%d): got %v, go-dsp %v", x, y, data[y*w+x], ref[y][x])
			}
		}
	}
}

func TestFFT2DSizeMismatch(t *testing.T) {
	f, err := newFFT2(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Forward(make([]complex128, 30)); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("want ErrSizeMismatch, got %v", err)
	}
}

func TestNewFFT2BadGrid(t *testing.T) {
	if _, err := newFFT2(0, 8); !errors.Is(err, ErrBadGrid) {
		t.Fatalf("want ErrBadGrid, got %v", err)
	}
}
