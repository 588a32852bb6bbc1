// Package lattice holds the discretization side of tree-based pricing: time
// grids, the per-step trinomial coefficients a short-rate model emits, and a
// minimal trinomial tree that consumes those coefficients for backward
// induction.
package lattice

import (
	"errors"
	"fmt"
)

var (
	// ErrGridSize indicates a grid with fewer than two points.
	ErrGridSize = errors.New("lattice: time grid needs at least two points")

	// ErrGridOrder indicates non-increasing or negative grid times.
	ErrGridOrder = errors.New("lattice: time grid must be non-negative and strictly increasing")
)

// TimeGrid is an ordered set of observation times, in years.
type TimeGrid struct {
	times []float64
}

// NewTimeGrid validates and copies times: at least two points, the first
// non-negative, strictly increasing.
func NewTimeGrid(times []float64) (TimeGrid, error) {
	if len(times) < 2 {
		return TimeGrid{}, fmt.Errorf("%w: got %d", ErrGridSize, len(times))
	}
	if times[0] < 0 {
		return TimeGrid{}, fmt.Errorf("%w: first time %v", ErrGridOrder, times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return TimeGrid{}, fmt.Errorf("%w: index %d", ErrGridOrder, i)
		}
	}
	return TimeGrid{times: append([]float64(nil), times...)}, nil
}

// NewUniformTimeGrid spans [0, horizon] with the given number of steps.
func NewUniformTimeGrid(horizon float64, steps int) (TimeGrid, error) {
	if steps < 1 {
		return TimeGrid{}, fmt.Errorf("%w: %d steps", ErrGridSize, steps)
	}
	if horizon <= 0 {
		return TimeGrid{}, fmt.Errorf("%w: horizon %v", ErrGridOrder, horizon)
	}
	times := make([]float64, steps+1)
	for i := range times {
		times[i] = horizon * float64(i) / float64(steps)
	}
	return TimeGrid{times: times}, nil
}

// Len is the number of grid points.
func (g TimeGrid) Len() int { return len(g.times) }

// At returns the i-th grid time.
func (g TimeGrid) At(i int) float64 { return g.times[i] }

// Dt returns the step length between points i and i+1.
func (g TimeGrid) Dt(i int) float64 { return g.times[i+1] - g.times[i] }
