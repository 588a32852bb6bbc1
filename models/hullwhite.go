package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdannyboy/irquant/process"
	"github.com/bcdannyboy/irquant/termstructure"
)

var (
	// ErrInvalidParams indicates non-positive model constants.
	ErrInvalidParams = errors.New("models: mean-reversion speed and volatility must be positive")

	// ErrNegativeTime indicates a query at t < 0.
	ErrNegativeTime = errors.New("models: time must be non-negative")

	// ErrDateOrder indicates maturities out of order.
	ErrDateOrder = errors.New("models: bond maturity must not precede option maturity")

	// ErrNoCurve indicates a model constructed without a curve handle.
	ErrNoCurve = errors.New("models: term-structure handle is required")
)

// smallSpeed mirrors the process package threshold: below it, expressions of
// the form (1-exp(-a*dt))/a use their a->0 limit dt.
const smallSpeed = 1e-8

// decayIntegral is (1 - exp(-a*dt))/a, the integral of exp(-a*s) over
// [0, dt], with the small-a limit dt.
func decayIntegral(a, dt float64) float64 {
	if a < smallSpeed {
		return dt
	}
	return (1 - math.Exp(-a*dt)) / a
}

// FittingParameter is the deterministic shift phi(t) that makes the
// Hull-White model reproduce the market curve exactly:
//
//	phi(t) = f(t) + 1/2 * [sigma*(1-exp(-a*t))/a]^2
//
// where f(t) is the instantaneous forward rate at t. It closes over the
// curve handle, so evaluation always reads the currently linked curve; every
// call repeats the forward lookup and callers needing speed should cache.
type FittingParameter struct {
	curve *termstructure.Handle
	a     float64
	sigma float64
}

// Value evaluates phi at t. Curve lookup failures propagate unchanged.
func (p FittingParameter) Value(t float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("%w: t=%v", ErrNegativeTime, t)
	}
	forward, err := p.curve.Forward(t)
	if err != nil {
		return 0, err
	}
	temp := p.sigma * decayIntegral(p.a, t)
	return forward + 0.5*temp*temp, nil
}

// Dynamics maps between the observable short rate r and the driftless state
// variable x of the underlying Ornstein-Uhlenbeck process:
//
//	r(t) = x(t) + phi(t)
//
// Variable and ShortRate are mutual inverses for a fixed t.
type Dynamics struct {
	fitting FittingParameter
	ou      *process.OrnsteinUhlenbeck
}

// Variable converts a short rate into the state variable, r - phi(t).
func (d Dynamics) Variable(t, r float64) (float64, error) {
	phi, err := d.fitting.Value(t)
	if err != nil {
		return 0, err
	}
	return r - phi, nil
}

// ShortRate converts a state value into the short rate, x + phi(t).
func (d Dynamics) ShortRate(t, x float64) (float64, error) {
	phi, err := d.fitting.Value(t)
	if err != nil {
		return 0, err
	}
	return x + phi, nil
}

// Process returns the driving Ornstein-Uhlenbeck process.
func (d Dynamics) Process() process.Diffusion { return d.ou }

// HullWhite is the extended-Vasicek model
//
//	dr = (theta(t) - a*r) dt + sigma dW
//
// with constant mean-reversion speed a and volatility sigma, fitted to an
// externally supplied discount curve through the deterministic shift phi.
// The model observes the curve handle: relinking the handle regenerates phi
// automatically, as does SetParams after a recalibration.
//
// The model holds no locks; see the termstructure.Handle contract for the
// single-threaded-use requirement.
type HullWhite struct {
	a     float64
	sigma float64
	curve *termstructure.Handle
	phi   FittingParameter
	ou    *process.OrnsteinUhlenbeck
}

// NewHullWhite builds a model on the given curve handle. Both a and sigma
// must be strictly positive; arbitrarily small a is served by analytic
// limits rather than rejected.
func NewHullWhite(curve *termstructure.Handle, a, sigma float64) (*HullWhite, error) {
	if curve == nil {
		return nil, ErrNoCurve
	}
	if a <= 0 || sigma <= 0 {
		return nil, fmt.Errorf("%w: a=%v, sigma=%v", ErrInvalidParams, a, sigma)
	}
	m := &HullWhite{a: a, sigma: sigma, curve: curve}
	if err := m.rebuild(); err != nil {
		return nil, err
	}
	curve.Observe(m.GenerateParameters)
	return m, nil
}

func (m *HullWhite) rebuild() error {
	ou, err := process.NewOrnsteinUhlenbeck(m.a, m.sigma)
	if err != nil {
		return err
	}
	m.ou = ou
	m.GenerateParameters()
	return nil
}

// GenerateParameters rebuilds the fitting-parameter closure from the current
// constants and curve handle. It is invoked automatically on construction,
// on SetParams and on curve relink; it is exported for callers that mutate
// the linked curve in place without relinking the handle.
func (m *HullWhite) GenerateParameters() {
	m.phi = FittingParameter{curve: m.curve, a: m.a, sigma: m.sigma}
}

// SetParams replaces the model constants, typically after calibration, and
// regenerates the fitting parameter so subsequent pricing never sees a stale
// phi.
func (m *HullWhite) SetParams(a, sigma float64) error {
	if a <= 0 || sigma <= 0 {
		return fmt.Errorf("%w: a=%v, sigma=%v", ErrInvalidParams, a, sigma)
	}
	m.a = a
	m.sigma = sigma
	return m.rebuild()
}

// Params returns the current (a, sigma).
func (m *HullWhite) Params() (a, sigma float64) { return m.a, m.sigma }

// FittingParameter returns the current phi.
func (m *HullWhite) FittingParameter() FittingParameter { return m.phi }

// Dynamics returns the short-rate dynamics built on the current phi and the
// model's Ornstein-Uhlenbeck process.
func (m *HullWhite) Dynamics() Dynamics {
	return Dynamics{fitting: m.phi, ou: m.ou}
}

// B is the bond-price exponent loading, (1 - exp(-a*(T-t)))/a, with the
// small-a limit T-t. B(t,t) == 0.
func (m *HullWhite) B(t, T float64) float64 {
	return decayIntegral(m.a, T-t)
}

// A is the deterministic component of the zero-coupon bond price
// P(t,T) = A(t,T) * exp(-B(t,T)*r), derived from the curve's discount
// factors at t and T and corrected by the model's variance term. A(t,t) == 1
// for any t within the curve horizon.
func (m *HullWhite) A(t, T float64) (float64, error) {
	if t < 0 {
		return 0, fmt.Errorf("%w: t=%v", ErrNegativeTime, t)
	}
	if T < t {
		return 0, fmt.Errorf("%w: t=%v, T=%v", ErrDateOrder, t, T)
	}
	dfT, err := m.curve.Discount(T)
	if err != nil {
		return 0, err
	}
	dft, err := m.curve.Discount(t)
	if err != nil {
		return 0, err
	}
	forward, err := m.curve.Forward(t)
	if err != nil {
		return 0, err
	}
	b := m.B(t, T)
	// (1-exp(-2a*t))/(2a), i.e. the integrated variance over [0,t] up to
	// the sigma^2 factor, via the same limit-guarded kernel.
	v := decayIntegral(2*m.a, t)
	value := b*forward - 0.5*m.sigma*m.sigma*v*b*b
	return math.Exp(value) * dfT / dft, nil
}

// DiscountBond prices a zero-coupon bond paying one at T, seen at t with
// short rate r: A(t,T) * exp(-B(t,T)*r).
func (m *HullWhite) DiscountBond(t, T, r float64) (float64, error) {
	a, err := m.A(t, T)
	if err != nil {
		return 0, err
	}
	return a * math.Exp(-m.B(t, T)*r), nil
}

// DiscountBondOption prices a European option, exercisable at maturity, on a
// zero-coupon bond paying one at bondMaturity. The closed form is Black's
// formula on today's bond prices with the model's integrated bond-price
// volatility
//
//	v = sigma * B(maturity, bondMaturity) * sqrt((1-exp(-2a*maturity))/(2a)).
//
// maturity == bondMaturity, maturity == 0 and sigma -> 0 all collapse v to
// zero and price at intrinsic value; the result is always non-negative.
func (m *HullWhite) DiscountBondOption(optType OptionType, strike, maturity, bondMaturity float64) (float64, error) {
	if maturity < 0 {
		return 0, fmt.Errorf("%w: maturity=%v", ErrNegativeTime, maturity)
	}
	if bondMaturity < maturity {
		return 0, fmt.Errorf("%w: maturity=%v, bondMaturity=%v", ErrDateOrder, maturity, bondMaturity)
	}
	dfBond, err := m.curve.Discount(bondMaturity)
	if err != nil {
		return 0, err
	}
	dfMat, err := m.curve.Discount(maturity)
	if err != nil {
		return 0, err
	}
	v := m.sigma * m.B(maturity, bondMaturity) * math.Sqrt(decayIntegral(2*m.a, maturity))
	return blackFormula(optType, dfBond, strike*dfMat, v)
}
