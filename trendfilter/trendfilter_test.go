package trendfilter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goseasonal/decompose"
)

var _ decompose.TrendFilter = Filter{}

func linearSeries(n int, slope, intercept float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = intercept + slope*float64(i)
	}
	return out
}

func TestHPPreservesLinearTrend(t *testing.T) {
	values := linearSeries(60, 0.5, 10)
	trend, err := HP(values, 1600)
	require.NoError(t, err)
	require.Len(t, trend, 60)
	for i := range values {
		assert.InDelta(t, values[i], trend[i], 1e-8, "index %d", i)
	}
}

func TestHPSmoothsOscillation(t *testing.T) {
	n := 120
	values := make([]float64, n)
	for i := range values {
		values[i] = 10 + 0.1*float64(i) + 2*math.Sin(2*math.Pi*float64(i)/12)
	}
	trend, err := HP(values, 1600)
	require.NoError(t, err)

	// The filtered series is much closer to the underlying line than the input.
	devIn, devOut := 0.0, 0.0
	for i := 12; i < n-12; i++ {
		line := 10 + 0.1*float64(i)
		devIn += math.Abs(values[i] - line)
		devOut += math.Abs(trend[i] - line)
	}
	assert.Less(t, devOut, devIn/4)
}

func TestHPInterpolatesMissing(t *testing.T) {
	values := linearSeries(40, 1, 0)
	values[20] = math.NaN()
	trend, err := HP(values, 100)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, trend[20], 1e-6)
}

func TestPolynomialRecoversPolynomial(t *testing.T) {
	n := 50
	values := make([]float64, n)
	for i := range values {
		x := float64(i)
		values[i] = 3 + 2*x - 0.05*x*x
	}
	trend, err := Polynomial(values, 2)
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, values[i], trend[i], 1e-6, "index %d", i)
	}
}

func TestPolynomialValidation(t *testing.T) {
	_, err := Polynomial([]float64{1, 2, 3}, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Polynomial([]float64{1, 2}, 4)
	assert.ErrorIs(t, err, ErrInvalidParameter, "more coefficients than observations")
}

func TestDetrendLinear(t *testing.T) {
	values := linearSeries(30, -0.25, 5)
	trend, err := Detrend(values, nil)
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, values[i], trend[i], 1e-8)
	}
}

func TestDetrendWithBreakpoint(t *testing.T) {
	// Piecewise linear: slope 1 up to index 20, slope -1 afterwards.
	n := 40
	values := make([]float64, n)
	for i := range values {
		x := float64(i)
		if x <= 20 {
			values[i] = x
		} else {
			values[i] = 20 - (x - 20)
		}
	}
	trend, err := Detrend(values, []float64{20})
	require.NoError(t, err)
	for i := range values {
		assert.InDelta(t, values[i], trend[i], 1e-8, "index %d", i)
	}
}

func TestSplineParameterMapping(t *testing.T) {
	values := linearSeries(30, 0.5, 1)
	values[10] = 12 // a bump

	// p=1 reproduces the data.
	trend, err := Spline(values, 1)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, trend[10], 1e-12)

	// Small p smooths the bump away.
	trend, err = Spline(values, 0.01)
	require.NoError(t, err)
	assert.Less(t, math.Abs(trend[10]-(1+0.5*10)), 3.0)
	assert.Less(t, trend[10], 12.0)

	_, err = Spline(values, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = Spline(values, 1.5)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTrendDispatch(t *testing.T) {
	values := linearSeries(30, 1, 0)
	f := Filter{}

	trend, err := f.Trend(values, "hp", 1600.0, nil)
	require.NoError(t, err)
	assert.Len(t, trend, 30)

	trend, err = f.Trend(values, "polynomial", 1.0, nil)
	require.NoError(t, err)
	assert.InDelta(t, values[15], trend[15], 1e-8)

	trend, err = f.Trend(values, "detrend", nil, nil)
	require.NoError(t, err)
	assert.Len(t, trend, 30)

	_, err = f.Trend(values, "loess", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = f.Trend(values, "hp", "strong", nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEndToEndWithDecompose(t *testing.T) {
	n := 96
	values := make([]float64, n)
	for i := range values {
		values[i] = 20 + 0.05*float64(i) + 2*math.Sin(2*math.Pi*float64(i)/12)
	}

	res, err := decompose.Decompose(values, []float64{12}, &decompose.Options{
		Methods:     []string{"hp"},
		TrendFilter: Filter{},
	})
	require.NoError(t, err)

	c := res.Components[0]
	for i := range values {
		assert.InDelta(t, values[i], c.Trend[i]+c.SF[i]+c.IR[i], 1e-9, "index %d", i)
	}
}
