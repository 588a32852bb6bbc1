package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/irquant/lattice"
)

func TestNewTimeGridValidation(t *testing.T) {
	t.Parallel()

	_, err := lattice.NewTimeGrid([]float64{1})
	assert.ErrorIs(t, err, lattice.ErrGridSize)

	_, err = lattice.NewTimeGrid([]float64{-1, 0})
	assert.ErrorIs(t, err, lattice.ErrGridOrder)

	_, err = lattice.NewTimeGrid([]float64{0, 1, 1})
	assert.ErrorIs(t, err, lattice.ErrGridOrder)

	_, err = lattice.NewTimeGrid([]float64{0, 2, 1})
	assert.ErrorIs(t, err, lattice.ErrGridOrder)

	grid, err := lattice.NewTimeGrid([]float64{0, 0.5, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Len())
	assert.Equal(t, 0.5, grid.At(1))
	assert.Equal(t, 1.5, grid.Dt(1))
}

func TestNewUniformTimeGrid(t *testing.T) {
	t.Parallel()

	_, err := lattice.NewUniformTimeGrid(1, 0)
	assert.ErrorIs(t, err, lattice.ErrGridSize)

	_, err = lattice.NewUniformTimeGrid(0, 10)
	assert.ErrorIs(t, err, lattice.ErrGridOrder)

	grid, err := lattice.NewUniformTimeGrid(2, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, grid.Len())
	assert.Equal(t, 0.0, grid.At(0))
	assert.Equal(t, 2.0, grid.At(4))
	assert.InDelta(t, 0.5, grid.Dt(2), 1e-15)
}
