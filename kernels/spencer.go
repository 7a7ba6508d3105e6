package kernels

import "fmt"

// spencerWeights builds the 15-term Spencer filter as successive convolutions
// of a 5-tap alternating kernel, a 5-tap unit window, and two 4-tap unit
// windows. An optional repeat count convolves that many Spencer kernels
// together.
func spencerWeights(params []float64) ([]float64, error) {
	repeat := 1
	if len(params) > 0 {
		if !isInteger(params[0]) || params[0] < 1 {
			return nil, fmt.Errorf("%w: spencer repeat count %v must be a positive integer", ErrInvalidParameter, params[0])
		}
		repeat = int(params[0])
	}

	base := []float64{-3, 3, 4, 3, -3}
	base = Convolve(base, []float64{1, 1, 1, 1, 1})
	base = Convolve(base, []float64{1, 1, 1, 1})
	base = Convolve(base, []float64{1, 1, 1, 1})
	normalize(base)

	w := base
	for i := 1; i < repeat; i++ {
		w = Convolve(w, base)
		normalize(w)
	}
	return w, nil
}
