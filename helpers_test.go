package main

import "math"

// testParams returns a parameter record sized for fast tests: unit domain,
// unit constants, packet in the middle of the grid.
func testParams() *SimParams {
	return &SimParams{
		Dt:            0.001,
		X0:            0.5,
		Y0:            0.5,
		Px:            0,
		Py:            0,
		Sigma:         0.1,
		Brightness:    1,
		Boundary:      BoundaryReflective,
		WallEnergy:    1e6,
		AbsorbRate:    5e3,
		Hbar:          1,
		Mass:          1,
		DomainSize:    1,
		NyquistMargin: 0.9,
	}
}

func nearly(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
