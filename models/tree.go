package models

import (
	"fmt"
	"math"

	"github.com/bcdannyboy/irquant/lattice"
)

// TreeCoefficients discretizes the model on the given grid and returns the
// per-step inputs a generic trinomial engine consumes: state spacing matched
// to three times the step variance, per-node branchings matching the exact
// Ornstein-Uhlenbeck conditional mean and variance, and the phi(t) level
// shift that turns state values into short rates at each grid node.
//
// The model does not walk or store the resulting tree; it is a coefficient
// factory only.
func (m *HullWhite) TreeCoefficients(grid lattice.TimeGrid) (*lattice.ShortRateCoefficients, error) {
	n := grid.Len()
	// A zero-value TimeGrid bypasses the NewTimeGrid checks.
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", lattice.ErrGridSize, n)
	}

	shifts := make([]float64, n)
	for i := 0; i < n; i++ {
		phi, err := m.phi.Value(grid.At(i))
		if err != nil {
			return nil, err
		}
		shifts[i] = phi
	}

	dx := make([]float64, n)
	jMin := make([]int, n)
	jMax := make([]int, n)
	branchings := make([][]lattice.Branching, n-1)

	// Root level: the state variable starts at zero.
	dx[0] = 0

	for i := 0; i < n-1; i++ {
		t := grid.At(i)
		dt := grid.Dt(i)
		v2 := m.ou.Variance(t, 0, dt)
		v := math.Sqrt(v2)
		dx[i+1] = v * math.Sqrt(3)

		levelBranchings := make([]lattice.Branching, jMax[i]-jMin[i]+1)
		minMid := math.MaxInt32
		maxMid := math.MinInt32
		sqrt3 := math.Sqrt(3)

		for j := jMin[i]; j <= jMax[i]; j++ {
			x := float64(j) * dx[i]
			mean := m.ou.Expectation(t, x, dt)
			k := int(math.Round(mean / dx[i+1]))
			e := mean - float64(k)*dx[i+1]
			e2 := e * e / v2
			e3 := e * sqrt3 / v

			levelBranchings[j-jMin[i]] = lattice.Branching{
				Mid: k,
				Pd:  (1 + e2 - e3) / 6,
				Pm:  (2 - e2) / 3,
				Pu:  (1 + e2 + e3) / 6,
			}
			if k < minMid {
				minMid = k
			}
			if k > maxMid {
				maxMid = k
			}
		}

		branchings[i] = levelBranchings
		jMin[i+1] = minMid - 1
		jMax[i+1] = maxMid + 1
	}

	return lattice.NewShortRateCoefficients(grid, dx, jMin, jMax, branchings, shifts)
}

// Tree builds a ready-to-roll trinomial tree on the grid. It is a
// convenience wrapper over TreeCoefficients for callers that use the
// in-package engine rather than an external one.
func (m *HullWhite) Tree(grid lattice.TimeGrid) (*lattice.TrinomialTree, error) {
	coef, err := m.TreeCoefficients(grid)
	if err != nil {
		return nil, err
	}
	return lattice.NewTrinomialTree(coef)
}
