package decompose

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPeriodsShape(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	m := SplitPeriods(data, 4)

	require.Len(t, m, 3)
	for _, row := range m {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, []float64{0, 1, 2, 3}, m[0])
	assert.Equal(t, []float64{4, 5, 6, 7}, m[1])
	assert.Equal(t, 8.0, m[2][0])
	assert.Equal(t, 9.0, m[2][1])
	assert.True(t, math.IsNaN(m[2][2]))
	assert.True(t, math.IsNaN(m[2][3]))
}

func TestSplitPeriodsExactMultiple(t *testing.T) {
	m := SplitPeriods([]float64{1, 2, 3, 4, 5, 6}, 3)
	require.Len(t, m, 2)
	assert.Equal(t, []float64{1, 2, 3}, m[0])
	assert.Equal(t, []float64{4, 5, 6}, m[1])
}

func TestSplitPeriodsInvalidPeriod(t *testing.T) {
	assert.Nil(t, SplitPeriods([]float64{1, 2}, 0))
}

func TestDeviation(t *testing.T) {
	a := []float64{10, 6, math.NaN(), 8}
	b := []float64{4, 2, 1, math.NaN()}

	add := Deviation(a, b, false)
	assert.Equal(t, 6.0, add[0])
	assert.Equal(t, 4.0, add[1])
	assert.True(t, math.IsNaN(add[2]))
	assert.True(t, math.IsNaN(add[3]))

	mul := Deviation(a, b, true)
	assert.Equal(t, 2.5, mul[0])
	assert.Equal(t, 3.0, mul[1])
	assert.True(t, math.IsNaN(mul[2]))
}

func TestDeviationMultiplicativeByZero(t *testing.T) {
	out := Deviation([]float64{5}, []float64{0}, true)
	assert.True(t, math.IsNaN(out[0]))
}

func TestBroadcastToLength(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "b", "b"}, broadcastToLength([]string{"a", "b"}, 4, "z"))
	assert.Equal(t, []string{"z", "z"}, broadcastToLength(nil, 2, "z"))
	assert.Equal(t, []string{"a", "b"}, broadcastToLength([]string{"a", "b", "c"}, 2, "z"))
}
