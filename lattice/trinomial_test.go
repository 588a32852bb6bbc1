package lattice_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/irquant/lattice"
	"github.com/bcdannyboy/irquant/models"
	"github.com/bcdannyboy/irquant/termstructure"
)

func hullWhiteTree(t *testing.T, rate, a, sigma, horizon float64, steps int) (*models.HullWhite, *lattice.TrinomialTree) {
	t.Helper()
	h := termstructure.NewHandle(termstructure.NewFlatForward(rate))
	m, err := models.NewHullWhite(h, a, sigma)
	require.NoError(t, err)
	grid, err := lattice.NewUniformTimeGrid(horizon, steps)
	require.NoError(t, err)
	tree, err := m.Tree(grid)
	require.NoError(t, err)
	return m, tree
}

func TestCoefficientsMatchProcessMoments(t *testing.T) {
	t.Parallel()

	m, tree := hullWhiteTree(t, 0.05, 0.1, 0.01, 1, 20)
	c := tree.Coefficients()
	ou := m.Dynamics().Process()

	levels := c.Grid().Len()
	for i := 0; i < levels-1; i++ {
		dt := c.Grid().Dt(i)
		v2 := ou.Variance(c.Grid().At(i), 0, dt)

		// State spacing is tied to the step variance.
		assert.InDelta(t, math.Sqrt(3*v2), c.Dx(i+1), 1e-15)

		for j := c.JMin(i); j <= c.JMax(i); j++ {
			b := c.Branching(i, j)

			// Valid probability triple.
			assert.InDelta(t, 1.0, b.Pd+b.Pm+b.Pu, 1e-12)
			for _, p := range []float64{b.Pd, b.Pm, b.Pu} {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}

			// Children stay inside the next level.
			assert.GreaterOrEqual(t, b.Mid-1, c.JMin(i+1))
			assert.LessOrEqual(t, b.Mid+1, c.JMax(i+1))

			// The branching reproduces the exact conditional mean and
			// variance of the state process.
			x := c.State(i, j)
			mean := ou.Expectation(c.Grid().At(i), x, dt)
			dx := c.Dx(i + 1)
			xd := float64(b.Mid-1) * dx
			xm := float64(b.Mid) * dx
			xu := float64(b.Mid+1) * dx

			gotMean := b.Pd*xd + b.Pm*xm + b.Pu*xu
			assert.InDelta(t, mean, gotMean, 1e-12)

			gotVar := b.Pd*(xd-mean)*(xd-mean) +
				b.Pm*(xm-mean)*(xm-mean) +
				b.Pu*(xu-mean)*(xu-mean)
			assert.InDelta(t, v2, gotVar, 1e-12)
		}
	}
}

func TestCoefficientsCarryLevelShift(t *testing.T) {
	t.Parallel()

	m, tree := hullWhiteTree(t, 0.05, 0.1, 0.01, 2, 8)
	c := tree.Coefficients()

	for i := 0; i < c.Grid().Len(); i++ {
		phi, err := m.FittingParameter().Value(c.Grid().At(i))
		require.NoError(t, err)
		assert.Equal(t, phi, c.Shift(i), "level %d", i)

		// Node short rates are state plus shift.
		j := c.JMax(i)
		assert.InDelta(t, c.State(i, j)+phi, c.ShortRate(i, j), 1e-15)
	}
}

func TestTreeReproducesDiscountFactor(t *testing.T) {
	t.Parallel()

	// The analytic shift makes the lattice reprice the curve's discount
	// factor up to discretization error.
	_, tree := hullWhiteTree(t, 0.05, 0.1, 0.01, 1, 100)

	price, err := tree.DiscountBondPrice()
	require.NoError(t, err)
	assert.InEpsilon(t, math.Exp(-0.05), price, 1e-3)
}

func TestTreePricesBondOptionNearClosedForm(t *testing.T) {
	t.Parallel()

	m, tree := hullWhiteTree(t, 0.05, 0.1, 0.01, 1, 100)
	c := tree.Coefficients()

	// Terminal payoff of a call on the 2y bond, struck at the forward
	// bond price, evaluated at each node's short rate.
	strike := math.Exp(-0.05)
	last := c.Grid().Len() - 1
	payoff := make([]float64, c.Size(last))
	for j := c.JMin(last); j <= c.JMax(last); j++ {
		bond, err := m.DiscountBond(1, 2, c.ShortRate(last, j))
		require.NoError(t, err)
		payoff[j-c.JMin(last)] = math.Max(bond-strike, 0)
	}

	treePrice, err := tree.Rollback(payoff)
	require.NoError(t, err)

	analytic, err := m.DiscountBondOption(models.Call, strike, 1, 2)
	require.NoError(t, err)

	assert.InEpsilon(t, analytic, treePrice, 0.03)
}

func TestRollbackPayoffSize(t *testing.T) {
	t.Parallel()

	_, tree := hullWhiteTree(t, 0.05, 0.1, 0.01, 1, 10)
	_, err := tree.Rollback([]float64{1, 2, 3})
	assert.ErrorIs(t, err, lattice.ErrPayoffSize)
}

func TestTreeRejectsBadGrid(t *testing.T) {
	t.Parallel()

	h := termstructure.NewHandle(termstructure.NewFlatForward(0.05))
	m, err := models.NewHullWhite(h, 0.1, 0.01)
	require.NoError(t, err)

	_, err = lattice.NewTimeGrid([]float64{0})
	assert.ErrorIs(t, err, lattice.ErrGridSize)

	// A zero-value grid skips NewTimeGrid entirely; the factory must
	// return the same error instead of panicking on an empty level set.
	var empty lattice.TimeGrid
	_, err = m.TreeCoefficients(empty)
	assert.ErrorIs(t, err, lattice.ErrGridSize)
	_, err = m.Tree(empty)
	assert.ErrorIs(t, err, lattice.ErrGridSize)

	// Same for a zero-value coefficient set handed to the engine.
	_, err = lattice.NewTrinomialTree(&lattice.ShortRateCoefficients{})
	assert.ErrorIs(t, err, lattice.ErrBadCoefficients)

	// Curve errors inside shift evaluation propagate out of the factory.
	bounded, err := termstructure.NewZeroCurve([]float64{0, 0.5}, []float64{1, 0.99})
	require.NoError(t, err)
	h.Link(bounded)
	grid, err := lattice.NewUniformTimeGrid(1, 4)
	require.NoError(t, err)
	_, err = m.TreeCoefficients(grid)
	assert.ErrorIs(t, err, termstructure.ErrOutOfRange)
}
