package lattice

import (
	"errors"
	"fmt"
)

// ErrBadCoefficients indicates structurally inconsistent tree coefficients.
var ErrBadCoefficients = errors.New("lattice: inconsistent tree coefficients")

// Branching describes the three descendants of one node: the central child
// index at the next level and the probabilities of reaching child Mid-1, Mid
// and Mid+1.
type Branching struct {
	Mid int
	Pd  float64
	Pm  float64
	Pu  float64
}

// ShortRateCoefficients is everything a generic trinomial engine needs to
// represent a short-rate process on a grid: per-level state spacing, per-node
// branchings, and the deterministic level shift that turns the driftless
// state variable into the observable short rate at each grid time.
//
// Level i holds node indices jMin[i]..jMax[i]; the state value of node j at
// level i is j*Dx(i), its short rate j*Dx(i)+Shift(i).
type ShortRateCoefficients struct {
	grid       TimeGrid
	dx         []float64     // spacing per level, dx[0] == 0
	jMin, jMax []int         // node index range per level
	branchings [][]Branching // branchings[i][j-jMin[i]], levels 0..n-2
	shifts     []float64     // level shift per grid point
}

// NewShortRateCoefficients assembles and validates a coefficient set.
// Models are the intended callers; engines only read.
func NewShortRateCoefficients(grid TimeGrid, dx []float64, jMin, jMax []int, branchings [][]Branching, shifts []float64) (*ShortRateCoefficients, error) {
	n := grid.Len()
	if len(dx) != n || len(jMin) != n || len(jMax) != n || len(shifts) != n || len(branchings) != n-1 {
		return nil, fmt.Errorf("%w: level count mismatch", ErrBadCoefficients)
	}
	for i := 0; i < n; i++ {
		if jMax[i] < jMin[i] {
			return nil, fmt.Errorf("%w: empty level %d", ErrBadCoefficients, i)
		}
		if i < n-1 && len(branchings[i]) != jMax[i]-jMin[i]+1 {
			return nil, fmt.Errorf("%w: branching count at level %d", ErrBadCoefficients, i)
		}
	}
	return &ShortRateCoefficients{
		grid:       grid,
		dx:         dx,
		jMin:       jMin,
		jMax:       jMax,
		branchings: branchings,
		shifts:     shifts,
	}, nil
}

// Grid returns the underlying time grid.
func (c *ShortRateCoefficients) Grid() TimeGrid { return c.grid }

// Dx returns the state-variable spacing at level i.
func (c *ShortRateCoefficients) Dx(i int) float64 { return c.dx[i] }

// Shift returns the short-rate level shift at grid point i.
func (c *ShortRateCoefficients) Shift(i int) float64 { return c.shifts[i] }

// JMin and JMax bound the node indices at level i.
func (c *ShortRateCoefficients) JMin(i int) int { return c.jMin[i] }
func (c *ShortRateCoefficients) JMax(i int) int { return c.jMax[i] }

// Size is the node count at level i.
func (c *ShortRateCoefficients) Size(i int) int { return c.jMax[i] - c.jMin[i] + 1 }

// Branching returns the branching of node index j at level i.
func (c *ShortRateCoefficients) Branching(i, j int) Branching {
	return c.branchings[i][j-c.jMin[i]]
}

// State returns the driftless state value of node j at level i.
func (c *ShortRateCoefficients) State(i, j int) float64 {
	return float64(j) * c.dx[i]
}

// ShortRate returns the observable short rate of node j at level i.
func (c *ShortRateCoefficients) ShortRate(i, j int) float64 {
	return c.State(i, j) + c.shifts[i]
}
