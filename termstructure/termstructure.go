// Package termstructure provides discount curves consumed by the short-rate
// models: a flat-forward curve, an interpolated zero curve, and a rebindable
// handle that notifies observers when the underlying curve changes.
//
// Times are year fractions from the curve reference date.
package termstructure

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a query beyond the curve horizon.
	ErrOutOfRange = errors.New("termstructure: time beyond curve horizon")

	// ErrNegativeTime indicates a query at t < 0.
	ErrNegativeTime = errors.New("termstructure: negative time")

	// ErrNotLinked indicates a handle that has no curve bound to it.
	ErrNotLinked = errors.New("termstructure: handle not linked to a curve")
)

// TermStructure supplies discount factors and instantaneous forward rates.
type TermStructure interface {
	// Discount returns the price at time zero of a unit payment at t.
	Discount(t float64) (float64, error)

	// Forward returns the instantaneous continuously-compounded forward
	// rate at t.
	Forward(t float64) (float64, error)

	// MaxTime is the largest t the structure can be queried at.
	MaxTime() float64
}

func checkTime(t, max float64) error {
	if t < 0 {
		return fmt.Errorf("%w: t=%v", ErrNegativeTime, t)
	}
	if t > max {
		return fmt.Errorf("%w: t=%v, max=%v", ErrOutOfRange, t, max)
	}
	return nil
}
