// Package models implements single-factor short-rate models for
// interest-rate derivative pricing: the Vasicek model and its
// term-structure-consistent extension, the Hull-White model.
package models

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType selects the payoff direction of a European option.
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (t OptionType) String() string {
	switch t {
	case Call:
		return "call"
	case Put:
		return "put"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// ErrOptionType indicates an OptionType outside Call/Put.
var ErrOptionType = errors.New("models: unknown option type")

var stdNormal = distuv.Normal{Mu: 0, Sigma: 1}

// blackFormula prices a European option with undiscounted forward value f,
// discounted strike k and total lognormal standard deviation stdDev. Both f
// and k arrive already discounted in bond-option usage, which is why no
// separate discounting appears here.
//
// A vanishing stdDev (expired optionality, zero volatility) degenerates to
// intrinsic value instead of dividing by zero.
func blackFormula(optType OptionType, f, k, stdDev float64) (float64, error) {
	var w float64
	switch optType {
	case Call:
		w = 1
	case Put:
		w = -1
	default:
		return 0, fmt.Errorf("%w: %d", ErrOptionType, int(optType))
	}

	if stdDev < 1e-14 || f <= 0 || k <= 0 {
		return math.Max(w*(f-k), 0), nil
	}

	d1 := math.Log(f/k)/stdDev + 0.5*stdDev
	d2 := d1 - stdDev
	return w * (f*stdNormal.CDF(w*d1) - k*stdNormal.CDF(w*d2)), nil
}
