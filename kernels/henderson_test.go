package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classicHenderson computes Henderson weights from the published closed form
// for a filter of length 2p+1 (Ladiray & Quenneville, annex tables).
func classicHenderson(taps int) []float64 {
	p := (taps - 1) / 2
	n := float64(p + 2)
	w := make([]float64, taps)
	denom := 8 * n * (n*n - 1) * (4*n*n - 1) * (4*n*n - 9) * (4*n*n - 25)
	for i := range w {
		j := float64(i - p)
		j2 := j * j
		num := 315 * ((n-1)*(n-1) - j2) * (n*n - j2) * ((n+1)*(n+1) - j2) * (3*n*n - 16 - 11*j2)
		w[i] = num / denom
	}
	return w
}

func TestHenderson13MatchesClassicalWeights(t *testing.T) {
	w, warns, err := Weights("henderson", 13)
	require.NoError(t, err)
	assert.Empty(t, warns)
	require.Len(t, w, 13)

	want := classicHenderson(13)
	for i := range w {
		assert.InDelta(t, want[i], w[i], 1e-9, "tap %d", i)
	}

	// Spot-check the published values: symmetric, seven interior positives,
	// small negative tails.
	assert.InDelta(t, 0.24006, w[6], 5e-6)
	assert.InDelta(t, -0.01935, w[0], 5e-6)
	assert.InDelta(t, 0.0, w[2], 5e-6)
}

func TestHendersonOtherLengths(t *testing.T) {
	for _, taps := range []float64{5, 9, 23} {
		w, _, err := Weights("henderson", taps)
		require.NoError(t, err)
		want := classicHenderson(int(taps))
		for i := range w {
			assert.InDelta(t, want[i], w[i], 1e-9, "taps=%v tap=%d", taps, i)
		}
	}
}

func TestHendersonReproducesCubics(t *testing.T) {
	w, _, err := Weights("henderson", 13)
	require.NoError(t, err)

	q := func(t float64) float64 { return 2 + 3*t - t*t + 0.5*t*t*t }
	center := 40.0
	got := 0.0
	for j := -6; j <= 6; j++ {
		got += w[j+6] * q(center+float64(j))
	}
	assert.InDelta(t, q(center), got, 1e-8)
}

func TestBongardMinimumNormForm(t *testing.T) {
	// With h=0 the criterion is the plain squared norm of the weights, so the
	// solution lies in the span of the constraint columns: w_j = a + b*j^2.
	w, _, err := Weights("bongard", 9)
	require.NoError(t, err)
	require.Len(t, w, 9)

	// Recover a and b from two taps and check the rest.
	b := (w[0] - w[4]) / 16
	a := w[4]
	sumW, sumJ2W := 0.0, 0.0
	for i := range w {
		j := float64(i - 4)
		assert.InDelta(t, a+b*j*j, w[i], 1e-10, "tap %d", i)
		sumW += w[i]
		sumJ2W += j * j * w[i]
	}
	assert.InDelta(t, 1.0, sumW, 1e-10)
	assert.InDelta(t, 0.0, sumJ2W, 1e-8)
}

func TestHendersonLengthCoercion(t *testing.T) {
	w, warns, err := Weights("henderson", 12)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "corrected to 13")

	exact, _, err := Weights("henderson", 13)
	require.NoError(t, err)
	assert.Equal(t, exact, w)

	// Too-short lengths come back as the minimal 3-term filter.
	w, warns, err = Weights("henderson", 1)
	require.NoError(t, err)
	assert.Len(t, w, 3)
	assert.NotEmpty(t, warns)
}

func TestRehommeLadirayBlend(t *testing.T) {
	hend, _, err := Weights("henderson", 13)
	require.NoError(t, err)
	rl, _, err := Weights("rl", 13, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, hend, rl)

	bon, _, err := Weights("bongard", 13)
	require.NoError(t, err)
	rl0, _, err := Weights("rl", 13, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, bon, rl0)

	// Intermediate blends stay normalized and symmetric.
	mid, _, err := Weights("rl", 13, 3, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sum(mid), 1e-10)
	for i, j := 0, len(mid)-1; i < j; i, j = i+1, j-1 {
		assert.InDelta(t, mid[i], mid[j], 1e-10)
	}
}

func TestRehommeLadirayOutOfRangeBlendWarns(t *testing.T) {
	_, warns, err := Weights("rl", 13, 3, 1.5)
	require.NoError(t, err)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "outside [0,1]")
}

func TestGeneralizedOrderExceedsLength(t *testing.T) {
	_, _, err := Weights("rl", 5, 7)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
