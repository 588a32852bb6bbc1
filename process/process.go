// Package process defines the one-dimensional diffusion abstraction the
// short-rate models are built on.
package process

// Diffusion is a one-dimensional Ito process dx = mu(t,x) dt + sigma(t,x) dW
// with closed-form conditional moments over a finite step.
type Diffusion interface {
	Drift(t, x float64) float64
	Diffusion(t, x float64) float64

	// Expectation is E[x(t0+dt) | x(t0) = x0].
	Expectation(t0, x0, dt float64) float64

	// Variance is Var[x(t0+dt) | x(t0) = x0].
	Variance(t0, x0, dt float64) float64

	// StdDeviation is the square root of Variance.
	StdDeviation(t0, x0, dt float64) float64
}
