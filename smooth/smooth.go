package smooth

import (
	"errors"
	"fmt"
	"math"
)

// ErrShapeMismatch is returned for weight vectors the smoother cannot center,
// i.e. vectors of even (or zero) length.
var ErrShapeMismatch = errors.New("shape mismatch")

// Direction selects which half of the weight vector participates.
type Direction int

const (
	// Centered uses the weight vector unmodified.
	Centered Direction = iota
	// Backward zeroes the left half of the weight vector.
	Backward
	// Forward zeroes the right half of the weight vector.
	Forward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Centered:
		return "centered"
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Apply smooths data with an odd-length weight vector. For each position the
// window is intersected with the valid index range and any missing points are
// dropped; the output is the weighted average over the surviving points,
// renormalized by the sum of the weights actually used.
func Apply(data, weights []float64, dir Direction) ([]float64, error) {
	if len(weights)%2 == 0 {
		return nil, fmt.Errorf("%w: weight vector length %d must be odd", ErrShapeMismatch, len(weights))
	}

	w := weights
	half := len(w) / 2
	if dir == Backward || dir == Forward {
		w = make([]float64, len(weights))
		copy(w, weights)
		if dir == Backward {
			for i := 0; i < half; i++ {
				w[i] = 0
			}
		} else {
			for i := half + 1; i < len(w); i++ {
				w[i] = 0
			}
		}
	}

	n := len(data)
	out := make([]float64, n)
	for t := 0; t < n; t++ {
		num, den := 0.0, 0.0
		valid := 0
		lo, hi := t-half, t+half
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		for i := lo; i <= hi; i++ {
			v := data[i]
			if math.IsNaN(v) {
				continue
			}
			wt := w[i-t+half]
			num += wt * v
			den += wt
			valid++
		}
		if valid == 0 || den == 0 {
			out[t] = math.NaN()
			continue
		}
		out[t] = num / den
	}
	return out, nil
}
