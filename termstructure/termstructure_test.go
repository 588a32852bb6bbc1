package termstructure_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdannyboy/irquant/termstructure"
)

func TestFlatForward(t *testing.T) {
	t.Parallel()

	curve := termstructure.NewFlatForward(0.05)

	df, err := curve.Discount(2.0)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.1), df, 1e-15)

	fwd, err := curve.Forward(7.5)
	require.NoError(t, err)
	assert.Equal(t, 0.05, fwd)

	df0, err := curve.Discount(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, df0)

	_, err = curve.Discount(-1)
	assert.ErrorIs(t, err, termstructure.ErrNegativeTime)
}

func TestZeroCurveValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		times []float64
		dfs   []float64
	}{
		{"too few pillars", []float64{0}, []float64{1}},
		{"length mismatch", []float64{0, 1}, []float64{1}},
		{"first time not zero", []float64{0.5, 1}, []float64{1, 0.95}},
		{"first df not one", []float64{0, 1}, []float64{0.99, 0.95}},
		{"non-increasing times", []float64{0, 1, 1}, []float64{1, 0.95, 0.9}},
		{"non-positive df", []float64{0, 1}, []float64{1, 0}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := termstructure.NewZeroCurve(tc.times, tc.dfs)
			assert.ErrorIs(t, err, termstructure.ErrBadPillars)
		})
	}
}

func TestZeroCurveInterpolation(t *testing.T) {
	t.Parallel()

	times := []float64{0, 1, 2, 5}
	dfs := []float64{1, 0.97, 0.93, 0.80}
	curve, err := termstructure.NewZeroCurve(times, dfs)
	require.NoError(t, err)

	// Pillars are reproduced exactly.
	for i, tm := range times {
		df, err := curve.Discount(tm)
		require.NoError(t, err)
		assert.InDelta(t, dfs[i], df, 1e-15)
	}

	// Between pillars the forward is flat, so the interpolated discount
	// factor must satisfy df(t) = df(t1) * exp(-f*(t-t1)) with the segment
	// forward recovered from the pillar ratio.
	fwd, err := curve.Forward(1.5)
	require.NoError(t, err)
	wantFwd := math.Log(0.97/0.93) / 1.0
	assert.InDelta(t, wantFwd, fwd, 1e-14)

	df, err := curve.Discount(1.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.97*math.Exp(-wantFwd*0.5), df, 1e-14)

	// Beyond the horizon the lookup fails.
	_, err = curve.Discount(5.0001)
	assert.ErrorIs(t, err, termstructure.ErrOutOfRange)
	_, err = curve.Forward(6)
	assert.ErrorIs(t, err, termstructure.ErrOutOfRange)

	// At an interior pillar the forward is right-continuous: the query
	// lands on the segment starting at that pillar.
	fwd, err = curve.Forward(1)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.97/0.93)/1.0, fwd, 1e-14)

	// At the horizon itself the last segment forward applies.
	fwd, err = curve.Forward(5)
	require.NoError(t, err)
	assert.InDelta(t, math.Log(0.93/0.80)/3.0, fwd, 1e-14)
}

func TestHandleRelinkNotifiesObservers(t *testing.T) {
	t.Parallel()

	h := termstructure.NewHandle(termstructure.NewFlatForward(0.05))

	notified := 0
	h.Observe(func() { notified++ })

	fwd, err := h.Forward(1)
	require.NoError(t, err)
	assert.Equal(t, 0.05, fwd)

	h.Link(termstructure.NewFlatForward(0.03))
	assert.Equal(t, 1, notified)

	fwd, err = h.Forward(1)
	require.NoError(t, err)
	assert.Equal(t, 0.03, fwd)
}

func TestHandleUnlinked(t *testing.T) {
	t.Parallel()

	h := termstructure.NewHandle(nil)
	_, err := h.Discount(1)
	assert.ErrorIs(t, err, termstructure.ErrNotLinked)
	_, err = h.Forward(1)
	assert.ErrorIs(t, err, termstructure.ErrNotLinked)
	assert.Equal(t, 0.0, h.MaxTime())
}
