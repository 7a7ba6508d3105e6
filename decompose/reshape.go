package decompose

import "math"

// SplitPeriods reshapes a flat series into one row per cycle with period
// columns, column i holding the observations at phase i. The tail of the
// last row is padded with NaN when the length is not a multiple of period.
func SplitPeriods(data []float64, period int) [][]float64 {
	if period < 1 {
		return nil
	}
	rows := (len(data) + period - 1) / period
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		row := make([]float64, period)
		for c := 0; c < period; c++ {
			idx := r*period + c
			if idx < len(data) {
				row[c] = data[idx]
			} else {
				row[c] = math.NaN()
			}
		}
		out[r] = row
	}
	return out
}

// Deviation computes the elementwise deviation of a from b: a-b when
// additive, a/b when multiplicative. Missing values propagate; a
// multiplicative deviation against zero is missing.
func Deviation(a, b []float64, multiplicative bool) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		av, bv := a[i], b[i]
		if math.IsNaN(av) || math.IsNaN(bv) {
			out[i] = math.NaN()
			continue
		}
		if multiplicative {
			if bv == 0 {
				out[i] = math.NaN()
			} else {
				out[i] = av / bv
			}
			continue
		}
		out[i] = av - bv
	}
	return out
}

// broadcastToLength right-pads vals with its last element until it has n
// entries, the documented broadcasting rule for per-period option lists.
// An empty list is filled with def.
func broadcastToLength[T any](vals []T, n int, def T) []T {
	out := make([]T, n)
	for i := 0; i < n; i++ {
		switch {
		case i < len(vals):
			out[i] = vals[i]
		case len(vals) > 0:
			out[i] = vals[len(vals)-1]
		default:
			out[i] = def
		}
	}
	return out
}
