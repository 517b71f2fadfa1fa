package main

import (
	"fmt"
	"math"
)

// fft1D performs an in-place forward DFT of a over the radix-2
// Cooley-Tukey algorithm: bit-reversal permutation followed by butterfly
// passes for stage sizes 2, 4, ..., n. Twiddles are computed per stage
// index from sin/cos so the result stays within double rounding of the
// direct O(n^2) DFT.
//
// Lengths 0 and 1 are no-ops. Any other non-power-of-two length returns
// ErrInvalidSize; the contents of a are unspecified afterwards.
func fft1D(a []complex128) error {
	n := len(a)
	if n <= 1 {
		return nil
	}
	if n&(n-1) != 0 {
		return fmt.Errorf("%w (n=%d)", ErrInvalidSize, n)
	}

	// Bit-reversal permutation via a running carry chain.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			a[i], a[j] = a[j], a[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		half := length >> 1
		for j := 0; j < half; j++ {
			s, c := math.Sincos(-2 * math.Pi * float64(j) / float64(length))
			w := complex(c, s)
			for base := 0; base < n; base += length {
				u := a[base+j]
				v := a[base+j+half] * w
				a[base+j] = u + v
				a[base+j+half] = u - v
			}
		}
	}
	return nil
}

// ifft1D performs the in-place inverse DFT: conjugate, forward transform,
// conjugate again and divide by n. Guarantees ifft1D(fft1D(x)) == x up to
// floating-point rounding.
func ifft1D(a []complex128) error {
	n := len(a)
	if n <= 1 {
		return nil
	}
	for i := range a {
		a[i] = complex(real(a[i]), -imag(a[i]))
	}
	if err := fft1D(a); err != nil {
		return err
	}
	inv := 1.0 / float64(n)
	for i := range a {
		a[i] = complex(real(a[i])*inv, -imag(a[i])*inv)
	}
	return nil
}

// fft2 performs in-place 2D transforms over a row-major grid of extents
// w x h. It owns a full transposed-grid scratch buffer allocated once at
// construction and reused across calls, so a single fft2 value must not be
// shared across concurrently-running goroutines.
type fft2 struct {
	w, h int
	tr   []complex128 // transposed grid scratch
}

func newFFT2(w, h int) (*fft2, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w (w=%d, h=%d)", ErrBadGrid, w, h)
	}
	return &fft2{w: w, h: h, tr: make([]complex128, w*h)}, nil
}

// Forward transforms data (row-major, w x h) into frequency space.
func (f *fft2) Forward(data []complex128) error {
	return f.apply(data, fft1D)
}

// Inverse transforms frequency-space data back. Row and column inverse
// passes commute with the forward passes, so running ifft1D over both axes
// exactly inverts Forward.
func (f *fft2) Inverse(data []complex128) error {
	return f.apply(data, ifft1D)
}

// apply runs the 1D transform over every row, transposes so the original
// columns become contiguous rows, transforms those, and transposes back.
// Each axis uses its own extent, so non-square grids are fine as long as
// both extents are powers of two.
func (f *fft2) apply(data []complex128, tf func([]complex128) error) error {
	if len(data) != f.w*f.h {
		return fmt.Errorf("%w (have %d, want %dx%d=%d)", ErrSizeMismatch, len(data), f.w, f.h, f.w*f.h)
	}

	for y := 0; y < f.h; y++ {
		if err := tf(data[y*f.w : (y+1)*f.w]); err != nil {
			return err
		}
	}

	// tr[x*h+y] = data[y*w+x]
	for y := 0; y < f.h; y++ {
		row := data[y*f.w : (y+1)*f.w]
		for x, v := range row {
			f.tr[x*f.h+y] = v
		}
	}

	for x := 0; x < f.w; x++ {
		if err := tf(f.tr[x*f.h : (x+1)*f.h]); err != nil {
			return err
		}
	}

	for x := 0; x < f.w; x++ {
		col := f.tr[x*f.h : (x+1)*f.h]
		for y, v := range col {
			data[y*f.w+x] = v
		}
	}
	return nil
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
