package main

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestKineticOperatorSymmetry(t *testing.T) {
	const w, h = 8, 8
	p := testParams()
	kin := make([]float64, w*h)
	fillKineticOperator(kin, w, h, p)

	// T at (i,j) must equal T at the negated-frequency index pair.
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			a := kin[j*w+i]
			b := kin[((h-j)%h)*w+(w-i)%w]
			if !nearly(a, b, 1e-12) {
				t.Fatalf("T(%d,%d)=%g but T(-k)=%g", i, j, a, b)
			}
		}
	}
}

func TestKineticOperatorNonNegativeAndStable(t *testing.T) {
	const w, h = 16, 8
	p := testParams()
	a := make([]float64, w*h)
	b := make([]float64, w*h)
	fillKineticOperator(a, w, h, p)
	fillKineticOperator(b, w, h, p)
	for i := range a {
		if a[i] < 0 {
			t.Fatalf("T[%d] = %g is negative", i, a[i])
		}
		if a[i] != b[i] {
			t.Fatalf("repeated precompute differs at %d: %g vs %g", i, a[i], b[i])
		}
	}
	if a[0] != 0 {
		t.Fatalf("T at zero frequency should be 0, got %g", a[0])
	}
}

func TestKineticOperatorFrequencyConvention(t *testing.T) {
	const w, h = 8, 8
	p := testParams()
	kin := make([]float64, w*h)
	fillKineticOperator(kin, w, h, p)

	dx := p.DomainSize / float64(w)
	dk := 2 * math.Pi / (float64(w) * dx)
	coef := p.Hbar * p.Hbar / (2 * p.Mass)

	// Index 1 on the x axis carries frequency dk; index w-1 carries -dk.
	want := coef * dk * dk
	if !nearly(kin[1], want, 1e-9) {
		t.Fatalf("T at index 1: got %g, want %g", kin[1], want)
	}
	if !nearly(kin[w-1], want, 1e-9) {
		t.Fatalf("T at index w-1: got %g, want %g", kin[w-1], want)
	}
	// Index w/2 is the Nyquist frequency -(w/2)*dk.
	nyq := coef * (float64(w/2) * dk) * (float64(w/2) * dk)
	if !nearly(kin[w/2], nyq, 1e-9) {
		t.Fatalf("T at Nyquist index: got %g, want %g", kin[w/2], nyq)
	}
}

func TestGaussianNormalization(t *testing.T) {
	st, err := NewSimState(64, 64, testParams())
	if err != nil {
		t.Fatal(err)
	}
	if n := st.Norm(); !nearly(n, 1.0, 1e-9) {
		t.Fatalf("norm after construction: %.12f", n)
	}
	st.ResetWaveFunction()
	if n := st.Norm(); !nearly(n, 1.0, 1e-9) {
		t.Fatalf("norm after reset: %.12f", n)
	}
}

func TestNyquistClamp(t *testing.T) {
	const w, h = 32, 32
	p := testParams()
	dx := p.DomainSize / float64(w)
	limit := 0.9 * math.Pi / dx * p.Hbar

	p.Px = limit * 50
	p.Py = -limit * 50
	psi := make([]complex128, w*h)
	clamped := fillGaussianPacket(psi, w, h, p)
	if !clamped {
		t.Fatal("expected a clamp event for far-out momentum")
	}
	if math.Abs(p.Px) > limit+1e-9 || math.Abs(p.Py) > limit+1e-9 {
		t.Fatalf("momentum not clamped: px=%g, py=%g, limit=%g", p.Px, p.Py, limit)
	}
	if p.Px != limit || p.Py != -limit {
		t.Fatalf("clamp should land on the margin: px=%g, py=%g", p.Px, p.Py)
	}
}

func TestNoClampForModestMomentum(t *testing.T) {
	const w, h = 32, 32
	p := testParams()
	p.Px = 10
	psi := make([]complex128, w*h)
	if clamped := fillGaussianPacket(psi, w, h, p); clamped {
		t.Fatal("unexpected clamp for in-range momentum")
	}
	if p.Px != 10 {
		t.Fatalf("in-range momentum mutated: %g", p.Px)
	}
}

func TestZeroNormPacketSkipsNormalization(t *testing.T) {
	const w, h = 16, 16
	p := testParams()
	p.X0 = 1e6 // far outside the domain, envelope underflows everywhere
	p.Sigma = 1e-3
	psi := make([]complex128, w*h)
	fillGaussianPacket(psi, w, h, p)
	for i, c := range psi {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			t.Fatalf("cell %d is not finite: %v", i, c)
		}
	}
}

func TestBoundaryWallIdempotent(t *testing.T) {
	const w, h = 16, 16
	p := testParams()
	p.Boundary = BoundaryReflective
	v := make([]float64, w*h)
	applyBoundaryPotential(v, w, h, p)
	want := append([]float64(nil), v...)
	applyBoundaryPotential(v, w, h, p)
	for i := range v {
		if v[i] != want[i] {
			t.Fatalf("reapplication changed cell %d: %g vs %g", i, v[i], want[i])
		}
	}
	if v[0] != p.WallEnergy || v[w*h-1] != p.WallEnergy {
		t.Fatal("corner cells should carry the wall energy")
	}
	if v[w+w/2] != 0 {
		t.Fatal("interior cell should stay free")
	}
}

func TestBoundaryWallClearsWhenSwitchedOff(t *testing.T) {
	const w, h = 16, 16
	p := testParams()
	p.Boundary = BoundaryReflective
	v := make([]float64, w*h)
	applyBoundaryPotential(v, w, h, p)

	p.Boundary = BoundaryAbsorbing
	applyBoundaryPotential(v, w, h, p)
	for i, x := range v {
		if x != 0 {
			t.Fatalf("wall not cleared at cell %d: %g", i, x)
		}
	}

	// Both keeps the wall up.
	p.Boundary = BoundaryBoth
	applyBoundaryPotential(v, w, h, p)
	if v[0] != p.WallEnergy {
		t.Fatal("mode both should include the wall")
	}
}
