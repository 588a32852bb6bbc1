package termstructure

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrBadPillars indicates an invalid pillar set at construction.
	ErrBadPillars = errors.New("termstructure: invalid curve pillars")
)

// ZeroCurve interpolates discount factors between pillar times using
// log-linear interpolation, i.e. a piecewise-flat instantaneous forward rate.
type ZeroCurve struct {
	times []float64
	dfs   []float64
}

// NewZeroCurve builds a curve from pillar times and discount factors.
// At least two pillars are required, times must start at zero and be strictly
// increasing, the first discount factor must be one and all must be positive.
func NewZeroCurve(times, dfs []float64) (*ZeroCurve, error) {
	if len(times) < 2 || len(times) != len(dfs) {
		return nil, fmt.Errorf("%w: need at least two (time, df) pairs, got %d times and %d dfs",
			ErrBadPillars, len(times), len(dfs))
	}
	if times[0] != 0 {
		return nil, fmt.Errorf("%w: first pillar must be at t=0, got %v", ErrBadPillars, times[0])
	}
	if dfs[0] != 1 {
		return nil, fmt.Errorf("%w: discount factor at t=0 must be 1, got %v", ErrBadPillars, dfs[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, fmt.Errorf("%w: times must be strictly increasing at index %d", ErrBadPillars, i)
		}
	}
	for i, df := range dfs {
		if df <= 0 {
			return nil, fmt.Errorf("%w: non-positive discount factor %v at index %d", ErrBadPillars, df, i)
		}
	}
	c := &ZeroCurve{
		times: append([]float64(nil), times...),
		dfs:   append([]float64(nil), dfs...),
	}
	return c, nil
}

func (c *ZeroCurve) Discount(t float64) (float64, error) {
	if err := checkTime(t, c.MaxTime()); err != nil {
		return 0, err
	}
	lo, hi := c.bracket(t)
	if lo == hi {
		return c.dfs[lo], nil
	}
	// Flat forward between pillars.
	fwd := c.segmentForward(lo, hi)
	return c.dfs[lo] * math.Exp(-fwd*(t-c.times[lo])), nil
}

// Forward returns the piecewise-constant instantaneous forward rate implied
// by the bracketing pillars. A query exactly on an interior pillar returns
// the right-hand segment's forward (the rate is right-continuous at
// pillars); at the last pillar it returns the final segment's forward.
func (c *ZeroCurve) Forward(t float64) (float64, error) {
	if err := checkTime(t, c.MaxTime()); err != nil {
		return 0, err
	}
	lo, hi := c.bracket(t)
	if lo == hi {
		if hi == len(c.times)-1 {
			lo = hi - 1
		} else {
			hi = lo + 1
		}
	}
	return c.segmentForward(lo, hi), nil
}

func (c *ZeroCurve) MaxTime() float64 {
	return c.times[len(c.times)-1]
}

// bracket returns pillar indices lo, hi with times[lo] <= t <= times[hi].
// lo == hi when t sits exactly on a pillar.
func (c *ZeroCurve) bracket(t float64) (int, int) {
	idx := sort.SearchFloat64s(c.times, t)
	if idx < len(c.times) && c.times[idx] == t {
		return idx, idx
	}
	return idx - 1, idx
}

func (c *ZeroCurve) segmentForward(lo, hi int) float64 {
	return math.Log(c.dfs[lo]/c.dfs[hi]) / (c.times[hi] - c.times[lo])
}
