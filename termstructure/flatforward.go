package termstructure

import "math"

// FlatForward is a curve with a single continuously-compounded rate at every
// maturity. It has no horizon.
type FlatForward struct {
	rate float64
}

func NewFlatForward(rate float64) *FlatForward {
	return &FlatForward{rate: rate}
}

func (f *FlatForward) Discount(t float64) (float64, error) {
	if err := checkTime(t, f.MaxTime()); err != nil {
		return 0, err
	}
	return math.Exp(-f.rate * t), nil
}

func (f *FlatForward) Forward(t float64) (float64, error) {
	if err := checkTime(t, f.MaxTime()); err != nil {
		return 0, err
	}
	return f.rate, nil
}

func (f *FlatForward) MaxTime() float64 {
	return math.Inf(1)
}
