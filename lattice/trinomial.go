package lattice

import (
	"errors"
	"fmt"
	"math"
)

// ErrPayoffSize indicates a terminal payoff slice that does not match the
// final level's node count.
var ErrPayoffSize = errors.New("lattice: payoff length does not match final level")

// TrinomialTree discounts payoffs backward through a coefficient set. Each
// node discounts its three descendants at its own short rate over the step.
type TrinomialTree struct {
	coef *ShortRateCoefficients
}

func NewTrinomialTree(coef *ShortRateCoefficients) (*TrinomialTree, error) {
	if coef == nil {
		return nil, fmt.Errorf("%w: nil coefficients", ErrBadCoefficients)
	}
	// A zero-value coefficient set bypasses NewShortRateCoefficients.
	if coef.grid.Len() < 2 {
		return nil, fmt.Errorf("%w: grid has %d points", ErrBadCoefficients, coef.grid.Len())
	}
	return &TrinomialTree{coef: coef}, nil
}

// Coefficients exposes the coefficient set the tree was built from.
func (t *TrinomialTree) Coefficients() *ShortRateCoefficients { return t.coef }

// Rollback discounts the terminal payoff values (one per node at the final
// level, ordered from JMin to JMax) to time zero.
func (t *TrinomialTree) Rollback(payoff []float64) (float64, error) {
	c := t.coef
	last := c.Grid().Len() - 1
	if len(payoff) != c.Size(last) {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrPayoffSize, len(payoff), c.Size(last))
	}

	values := append([]float64(nil), payoff...)
	for i := last - 1; i >= 0; i-- {
		dt := c.Grid().Dt(i)
		next := make([]float64, c.Size(i))
		for j := c.JMin(i); j <= c.JMax(i); j++ {
			b := c.Branching(i, j)
			base := b.Mid - c.JMin(i+1)
			cont := b.Pd*values[base-1] + b.Pm*values[base] + b.Pu*values[base+1]
			next[j-c.JMin(i)] = math.Exp(-c.ShortRate(i, j)*dt) * cont
		}
		values = next
	}
	return values[0], nil
}

// DiscountBondPrice rolls a unit payoff back from the final grid time, i.e.
// the tree-implied price of a zero-coupon bond maturing at the horizon.
func (t *TrinomialTree) DiscountBondPrice() (float64, error) {
	last := t.coef.Grid().Len() - 1
	payoff := make([]float64, t.coef.Size(last))
	for i := range payoff {
		payoff[i] = 1
	}
	return t.Rollback(payoff)
}
