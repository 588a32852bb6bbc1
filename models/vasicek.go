package models

import (
	"fmt"
	"math"
)

// Vasicek is the constant-parameter single-factor model
//
//	dr = a*(b - r) dt + sigma dW
//
// the Hull-White model extends. It is not term-structure consistent: bond
// prices follow from the model constants alone, so it mainly serves as a
// reference model and a sanity check for the extended one.
type Vasicek struct {
	r0     float64
	a      float64
	b      float64
	sigma  float64
	lambda float64 // market price of risk
}

// NewVasicek builds the model. The mean-reversion speed must be strictly
// positive; volatility must be non-negative.
func NewVasicek(r0, a, b, sigma, lambda float64) (*Vasicek, error) {
	if a <= 0 || sigma < 0 {
		return nil, fmt.Errorf("%w: a=%v, sigma=%v", ErrInvalidParams, a, sigma)
	}
	return &Vasicek{r0: r0, a: a, b: b, sigma: sigma, lambda: lambda}, nil
}

// ShortRate returns the initial short rate r0.
func (m *Vasicek) ShortRate() float64 { return m.r0 }

// B is (1 - exp(-a*(T-t)))/a.
func (m *Vasicek) B(t, T float64) float64 {
	return decayIntegral(m.a, T-t)
}

// A is the deterministic bond-price component; A(t,t) == 1.
func (m *Vasicek) A(t, T float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("%w: t=%v", ErrNegativeTime, t)
	}
	if T < t {
		return 0, fmt.Errorf("%w: t=%v, T=%v", ErrDateOrder, t, T)
	}
	sigma2 := m.sigma * m.sigma
	bt := m.B(t, T)
	value := (m.b+m.lambda*m.sigma/m.a-0.5*sigma2/(m.a*m.a))*(bt-(T-t)) -
		0.25*sigma2*bt*bt/m.a
	return math.Exp(value), nil
}

// DiscountBond prices a zero-coupon bond paying one at T, seen at t with
// short rate r.
func (m *Vasicek) DiscountBond(t, T, r float64) (float64, error) {
	a, err := m.A(t, T)
	if err != nil {
		return 0, err
	}
	return a * math.Exp(-m.B(t, T)*r), nil
}

// DiscountBondOption prices a European option on a zero-coupon bond with
// Jamshidian's closed form, Black's formula on today's model bond prices.
func (m *Vasicek) DiscountBondOption(optType OptionType, strike, maturity, bondMaturity float64) (float64, error) {
	if maturity < 0 {
		return 0, fmt.Errorf("%w: maturity=%v", ErrNegativeTime, maturity)
	}
	if bondMaturity < maturity {
		return 0, fmt.Errorf("%w: maturity=%v, bondMaturity=%v", ErrDateOrder, maturity, bondMaturity)
	}
	f, err := m.DiscountBond(0, bondMaturity, m.r0)
	if err != nil {
		return 0, err
	}
	dfMat, err := m.DiscountBond(0, maturity, m.r0)
	if err != nil {
		return 0, err
	}
	v := m.sigma * m.B(maturity, bondMaturity) * math.Sqrt(decayIntegral(2*m.a, maturity))
	return blackFormula(optType, f, strike*dfMat, v)
}
