package main

import (
	"fmt"
	"math"
)

// Engine advances a SimState by one split-step Fourier time step. It owns
// only its transform scratch, sized once at construction, and holds no
// reference to any state between calls. Because the scratch is mutable, an
// Engine must not be shared across concurrently-stepping goroutines.
type Engine struct {
	width, height int
	fft           *fft2
	damp          []float64 // per-depth damping factors, recomputed each step
}

// NewEngine creates an engine for a fixed grid. Non-positive extents are a
// fatal construction error.
func NewEngine(width, height int) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w (width=%d, height=%d)", ErrBadGrid, width, height)
	}
	f, err := newFFT2(width, height)
	if err != nil {
		return nil, err
	}
	return &Engine{
		width:  width,
		height: height,
		fft:    f,
		damp:   make([]float64, boundaryBandWidth(width, height)),
	}, nil
}

// Step performs one full time step using Strang splitting: potential
// half-kick, kinetic full step, potential half-kick. The ordering is
// second-order accurate and time-reversible; absorbing-boundary damping
// runs strictly after the splitting completes (never between sub-steps) to
// keep that reversibility intact.
//
// A mid-step error leaves psi in a partially-updated, undefined condition:
// callers should discard or reset the state rather than continue.
func (e *Engine) Step(st *SimState) error {
	if err := e.checkState(st); err != nil {
		return err
	}
	e.applyPotentialHalfStep(st)
	if err := e.applyKineticStep(st); err != nil {
		return err
	}
	e.applyPotentialHalfStep(st)
	if st.params.Boundary.Absorbing() {
		e.applyAbsorbingBoundary(st)
	}
	st.time += st.params.Dt
	return nil
}

// checkState verifies the state buffers against the engine's grid. A
// mismatch is a configuration-integrity failure, never coerced.
func (e *Engine) checkState(st *SimState) error {
	n := e.width * e.height
	if st.width != e.width || st.height != e.height {
		return fmt.Errorf("%w (state %dx%d, engine %dx%d)", ErrSizeMismatch, st.width, st.height, e.width, e.height)
	}
	if len(st.psi) != n || len(st.v) != n || len(st.kin) != n {
		return fmt.Errorf("%w (psi=%d, v=%d, t=%d, want %d)", ErrSizeMismatch, len(st.psi), len(st.v), len(st.kin), n)
	}
	return nil
}

// applyPotentialHalfStep rotates every amplitude by theta = -V*dt/(2*hbar).
// Cells with zero potential are skipped: a zero rotation is a no-op, and
// most of the grid is free space.
func (e *Engine) applyPotentialHalfStep(st *SimState) {
	p := st.params
	factor := -p.Dt / (2 * p.Hbar)
	for i, v := range st.v {
		if v == 0 {
			continue
		}
		s, c := math.Sincos(factor * v)
		st.psi[i] *= complex(c, s)
	}
}

// applyKineticStep transforms psi to momentum space, rotates each cell by
// theta = -T(k)*dt/hbar against the kinetic operator cell at the same
// row-major index, and transforms back. The operator grid uses the same
// frequency ordering the transform produces, so the correspondence is the
// plain index.
func (e *Engine) applyKineticStep(st *SimState) error {
	if err := e.fft.Forward(st.psi); err != nil {
		return err
	}
	p := st.params
	factor := -p.Dt / p.Hbar
	for i, t := range st.kin {
		if t == 0 {
			continue
		}
		s, c := math.Sincos(factor * t)
		st.psi[i] *= complex(c, s)
	}
	return e.fft.Inverse(st.psi)
}

// boundaryBandWidth is the absorbing band depth in cells.
func boundaryBandWidth(w, h int) int {
	m := w
	if h < m {
		m = h
	}
	band := m * 5 / 100
	if band < 4 {
		band = 4
	}
	return band
}

// applyAbsorbingBoundary damps amplitude inside the edge band. The damping
// is a continuous rate, exp(-rate*dt) per step, with the rate scaling on
// the physical cell size and linearly on depth into the band (the outermost
// cell damps hardest), so changing dt does not change the absorption
// profile over a fixed physical time.
func (e *Engine) applyAbsorbingBoundary(st *SimState) {
	p := st.params
	band := len(e.damp)
	base := p.AbsorbRate * math.Sqrt(st.dx*st.dy)

	// One factor per edge distance; distance band and beyond is untouched.
	// Factors depend on dt, which can change between steps, so they are
	// refreshed into the engine-owned scratch every call.
	for d := range e.damp {
		depthFrac := float64(band-d) / float64(band)
		e.damp[d] = math.Exp(-base * depthFrac * p.Dt)
	}

	w, h := st.width, st.height
	for y := 0; y < h; y++ {
		dy := y
		if h-1-y < dy {
			dy = h - 1 - y
		}
		for x := 0; x < w; x++ {
			d := x
			if w-1-x < d {
				d = w - 1 - x
			}
			if dy < d {
				d = dy
			}
			if d >= band {
				continue
			}
			st.psi[y*w+x] *= complex(e.damp[d], 0)
		}
	}
}
