package process

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidProcess indicates invalid Ornstein-Uhlenbeck parameters.
var ErrInvalidProcess = errors.New("process: speed and sigma must be non-negative")

// smallSpeed is the threshold below which mean-reversion expressions switch
// to their zero-speed limits to avoid cancellation.
const smallSpeed = 1e-8

// OrnsteinUhlenbeck is the zero-mean mean-reverting process
// dx = -speed*x dt + sigma dW, with exact conditional moments.
type OrnsteinUhlenbeck struct {
	speed float64
	sigma float64
}

func NewOrnsteinUhlenbeck(speed, sigma float64) (*OrnsteinUhlenbeck, error) {
	if speed < 0 || sigma < 0 {
		return nil, fmt.Errorf("%w: speed=%v, sigma=%v", ErrInvalidProcess, speed, sigma)
	}
	return &OrnsteinUhlenbeck{speed: speed, sigma: sigma}, nil
}

func (p *OrnsteinUhlenbeck) Speed() float64 { return p.speed }
func (p *OrnsteinUhlenbeck) Sigma() float64 { return p.sigma }

func (p *OrnsteinUhlenbeck) Drift(t, x float64) float64 {
	return -p.speed * x
}

func (p *OrnsteinUhlenbeck) Diffusion(t, x float64) float64 {
	return p.sigma
}

func (p *OrnsteinUhlenbeck) Expectation(t0, x0, dt float64) float64 {
	return x0 * math.Exp(-p.speed*dt)
}

func (p *OrnsteinUhlenbeck) Variance(t0, x0, dt float64) float64 {
	if p.speed < smallSpeed {
		// speed -> 0 reduces to Brownian motion.
		return p.sigma * p.sigma * dt
	}
	return 0.5 * p.sigma * p.sigma / p.speed * (1 - math.Exp(-2*p.speed*dt))
}

func (p *OrnsteinUhlenbeck) StdDeviation(t0, x0, dt float64) float64 {
	return math.Sqrt(p.Variance(t0, x0, dt))
}
