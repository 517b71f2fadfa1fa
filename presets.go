package main

import "fmt"

// Preset identifies one of the built-in potential layouts. Presets write
// the interior of V directly; the boundary wall is reapplied afterwards so
// a preset can never erase a reflective wall.
type Preset int

const (
	PresetClear Preset = iota
	PresetSingleSlit
	PresetDoubleSlit
	PresetBox
	PresetWell
)

func (p Preset) String() string {
	switch p {
	case PresetClear:
		return "clear"
	case PresetSingleSlit:
		return "single slit"
	case PresetDoubleSlit:
		return "double slit"
	case PresetBox:
		return "box cavity"
	case PresetWell:
		return "circular well"
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Presets lists the built-ins in UI order.
func Presets() []Preset {
	return []Preset{PresetClear, PresetSingleSlit, PresetDoubleSlit, PresetBox, PresetWell}
}

// ApplyPreset replaces the potential with the chosen layout and then
// refreshes the boundary potential for the current mode.
func ApplyPreset(st *SimState, preset Preset) {
	for i := range st.v {
		st.v[i] = 0
	}
	w, h := st.width, st.height
	wall := st.params.WallEnergy

	switch preset {
	case PresetClear:
		// Nothing beyond the cleared field.

	case PresetSingleSlit:
		gap := h / 16
		paintBarrierColumn(st, w/2, wall, []slit{{h/2 - gap/2, h/2 + gap/2}})

	case PresetDoubleSlit:
		gap := h / 24
		sep := h / 8
		paintBarrierColumn(st, w/2, wall, []slit{
			{h/2 - sep/2 - gap, h/2 - sep/2},
			{h/2 + sep/2, h/2 + sep/2 + gap},
		})

	case PresetBox:
		// Inner cavity walls at one quarter in from each edge.
		x0, x1 := w/4, 3*w/4
		y0, y1 := h/4, 3*h/4
		for x := x0; x <= x1; x++ {
			st.v[y0*w+x] = wall
			st.v[y1*w+x] = wall
		}
		for y := y0; y <= y1; y++ {
			st.v[y*w+x0] = wall
			st.v[y*w+x1] = wall
		}

	case PresetWell:
		// Attractive circular well in the grid centre.
		cx, cy := w/2, h/2
		r := w / 8
		if h/8 < r {
			r = h / 8
		}
		depth := -wall / 10
		for y := cy - r; y <= cy+r; y++ {
			for x := cx - r; x <= cx+r; x++ {
				ddx, ddy := x-cx, y-cy
				if ddx*ddx+ddy*ddy <= r*r {
					st.v[y*w+x] = depth
				}
			}
		}
	}

	st.RefreshBoundary()
}

// slit is a half-open row interval [from, to) left empty in a barrier.
type slit struct{ from, to int }

// paintBarrierColumn fills a vertical barrier, a few cells thick, at
// column cx, leaving the given slits open.
func paintBarrierColumn(st *SimState, cx int, energy float64, slits []slit) {
	w, h := st.width, st.height
	thickness := w / 64
	if thickness < 1 {
		thickness = 1
	}
	for y := 0; y < h; y++ {
		open := false
		for _, s := range slits {
			if y >= s.from && y < s.to {
				open = true
				break
			}
		}
		if open {
			continue
		}
		for x := cx - thickness/2; x <= cx+thickness/2; x++ {
			if x >= 0 && x < w {
				st.v[y*w+x] = energy
			}
		}
	}
}
