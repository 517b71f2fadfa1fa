package main

import (
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
)

// kFrequencies returns the spatial frequency assigned to each index of an
// n-point transform with sample spacing d, in the standard FFT ordering:
// index i in [0, n/2) maps to i*dk, index i in [n/2, n) maps to (i-n)*dk,
// with dk = 2*pi/(n*d).
func kFrequencies(n int, d float64) []float64 {
	k := make([]float64, n)
	scale := 2 * math.Pi / (float64(n) * d)
	for i := range k {
		if i < (n+1)/2 {
			k[i] = float64(i) * scale
		} else {
			k[i] = float64(i-n) * scale
		}
	}
	return k
}

// fillKineticOperator recomputes the momentum-space kinetic energy grid
// T = (hbar^2 / 2m) * (kx^2 + ky^2) into dst (row-major, w x h, indexed
// identically to the spatial grid). The output only depends on the grid
// extents, the domain size and the physical constants, so repeated calls
// with unchanged inputs produce identical grids.
//
// Non-power-of-two extents are accepted here with a warning; they only
// become an error if the transform itself is invoked on them.
func fillKineticOperator(dst []float64, w, h int, p *SimParams) {
	if !isPowerOfTwo(w) || !isPowerOfTwo(h) {
		log.Printf("Warning: grid %dx%d is not a power of two; transforms will reject it", w, h)
	}

	dx := p.DomainSize / float64(w)
	dy := p.DomainSize / float64(h)
	kx := kFrequencies(w, dx)
	ky := kFrequencies(h, dy)

	coef := p.Hbar * p.Hbar / (2 * p.Mass)
	for y := 0; y < h; y++ {
		row := dst[y*w : (y+1)*w]
		ky2 := ky[y] * ky[y]
		for x := range row {
			row[x] = coef * (kx[x]*kx[x] + ky2)
		}
	}
}

// clampMomentum limits p.Px and p.Py to the Nyquist-safe range
// +-margin*(pi/d)*hbar for the respective axis spacing. It reports whether
// either component was clamped; the event is non-fatal and the clamped
// values are what the packet initializer samples.
func clampMomentum(p *SimParams, dx, dy float64) bool {
	margin := p.NyquistMargin
	if margin <= 0 {
		margin = 0.9
	}
	clamped := false

	limX := margin * math.Pi / dx * p.Hbar
	if p.Px > limX {
		p.Px = limX
		clamped = true
	} else if p.Px < -limX {
		p.Px = -limX
		clamped = true
	}

	limY := margin * math.Pi / dy * p.Hbar
	if p.Py > limY {
		p.Py = limY
		clamped = true
	} else if p.Py < -limY {
		p.Py = -limY
		clamped = true
	}
	return clamped
}

// fillGaussianPacket samples the initial wave packet into dst: a Gaussian
// envelope centred at (X0, Y0) with width Sigma, modulated by the plane
// wave exp(i(px*x + py*y)/hbar), then normalized so the total probability
// sum(|psi|^2)*dx*dy equals one. Momentum is Nyquist-clamped before
// sampling; the return value reports whether a clamp occurred.
//
// A numerically negligible unnormalized sum (an effectively zero field)
// skips normalization instead of dividing by zero.
func fillGaussianPacket(dst []complex128, w, h int, p *SimParams) bool {
	dx := p.DomainSize / float64(w)
	dy := p.DomainSize / float64(h)

	clamped := clampMomentum(p, dx, dy)
	if clamped {
		log.Printf("Warning: initial momentum clamped to Nyquist-safe range (px=%.4g, py=%.4g)", p.Px, p.Py)
	}

	// Physical sample coordinates x = i*dx, y = j*dy.
	xs := make([]float64, w)
	ys := make([]float64, h)
	if w > 1 {
		floats.Span(xs, 0, float64(w-1)*dx)
	}
	if h > 1 {
		floats.Span(ys, 0, float64(h-1)*dy)
	}

	twoSigmaSq := 2 * p.Sigma * p.Sigma
	invHbar := 1 / p.Hbar

	var sumSq float64
	for j := 0; j < h; j++ {
		row := dst[j*w : (j+1)*w]
		y := ys[j]
		for i := range row {
			x := xs[i]
			r2 := (x-p.X0)*(x-p.X0) + (y-p.Y0)*(y-p.Y0)
			amp := math.Exp(-r2 / twoSigmaSq)
			s, c := math.Sincos((p.Px*x + p.Py*y) * invHbar)
			row[i] = complex(amp*c, amp*s)
			sumSq += amp * amp
		}
	}

	norm := math.Sqrt(sumSq * dx * dy)
	if norm < 1e-15 {
		log.Println("Warning: initial packet norm is near zero, skipping normalization")
		return clamped
	}
	inv := complex(1/norm, 0)
	for i := range dst {
		dst[i] *= inv
	}
	return clamped
}

// applyBoundaryPotential refreshes the edge cells of v for the current
// boundary mode. Previously set edge values are always cleared first, so
// switching the reflective wall off removes it, and reapplying with the
// same mode is idempotent.
func applyBoundaryPotential(v []float64, w, h int, p *SimParams) {
	wall := 0.0
	if p.Boundary.Reflective() {
		wall = p.WallEnergy
	}
	for x := 0; x < w; x++ {
		v[x] = wall
		v[(h-1)*w+x] = wall
	}
	for y := 0; y < h; y++ {
		v[y*w] = wall
		v[y*w+w-1] = wall
	}
}
