package kernels

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// diff3 holds the third-difference operator coefficients. Its autocorrelation
// under zero extension yields the Gram matrix of the classical Henderson
// roughness criterion.
var diff3 = []float64{1, -3, 3, -1}

// generalizedWeights solves the Rehomme-Ladiray generalized moving average:
// minimize the convex blend h*R + (1-h)*I of the scaled roughness matrix R
// and the identity, subject to exact reproduction of polynomials up to degree
// p-1 over the window. h=1 gives the Henderson filter, h=0 the Bongard filter.
//
// Params are (length, order, convexity weight); order defaults to 3 and the
// convexity weight to the family default. A length that is not an odd integer
// >= 3 is corrected upward with a warning, as is an out-of-range convexity
// weight, which is accepted as an extrapolated blend.
func generalizedWeights(kind Kind, params []float64, defaultH float64) ([]float64, []string, error) {
	if len(params) == 0 {
		return nil, nil, fmt.Errorf("%w: %s requires a filter length", ErrInvalidParameter, kind)
	}
	var warnings []string

	nf := params[0]
	if math.IsNaN(nf) || math.IsInf(nf, 0) {
		return nil, nil, fmt.Errorf("%w: filter length %v", ErrInvalidParameter, nf)
	}
	n := nextOdd(nf)
	if n < 3 {
		n = 3
	}
	if float64(n) != nf {
		warnings = append(warnings, fmt.Sprintf("%s: filter length %v corrected to %d", kind, nf, n))
	}

	pf := 3.0
	if len(params) > 1 {
		pf = params[1]
	}
	if math.IsNaN(pf) || math.IsInf(pf, 0) {
		return nil, nil, fmt.Errorf("%w: polynomial order %v", ErrInvalidParameter, pf)
	}
	p := nextOdd(pf)
	if p < 1 {
		p = 1
	}
	if p > n {
		return nil, nil, fmt.Errorf("%w: polynomial order %v exceeds filter length %d", ErrInvalidParameter, pf, n)
	}

	h := defaultH
	if kind == RehommeLadiray && len(params) > 2 {
		h = params[2]
	}
	if h < 0 || h > 1 {
		warnings = append(warnings, fmt.Sprintf("%s: convexity weight %v outside [0,1], using extrapolated blend", kind, h))
	}

	w, err := solveGeneralized(n, p, h)
	if err != nil {
		return nil, nil, err
	}
	return w, warnings, nil
}

// solveGeneralized computes the filter via the closed-form Lagrange system
// w = A⁻¹C (CᵀA⁻¹C)⁻¹ α, with A the blended penalty matrix, C the constraint
// matrix of even-degree monomials over centered lags, and α selecting
// order-zero reproduction.
func solveGeneralized(n, p int, h float64) ([]float64, error) {
	// Gram bands of the third-difference operator: [20, -15, 6, -1].
	bands := make([]float64, len(diff3))
	for d := range bands {
		for j := 0; j+d < len(diff3); j++ {
			bands[d] += diff3[j] * diff3[j+d]
		}
	}
	scale := bands[0]

	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := i - j
			if d < 0 {
				d = -d
			}
			if d < len(bands) {
				a.Set(i, j, h*bands[d]/scale)
			}
		}
		a.Set(i, i, a.At(i, i)+(1-h))
	}

	// Constraint columns: monomials t^d for even d in 0..p-1; odd degrees
	// hold automatically by symmetry.
	m := (p + 1) / 2
	c := mat.NewDense(n, m, nil)
	half := (n - 1) / 2
	for i := 0; i < n; i++ {
		t := float64(i - half)
		for k := 0; k < m; k++ {
			c.Set(i, k, math.Pow(t, float64(2*k)))
		}
	}

	var x mat.Dense // A⁻¹C
	if err := x.Solve(a, c); err != nil {
		return nil, fmt.Errorf("%w: singular penalty matrix (h=%v)", ErrInvalidParameter, h)
	}
	var g mat.Dense // CᵀA⁻¹C
	g.Mul(c.T(), &x)

	alpha := mat.NewVecDense(m, nil)
	alpha.SetVec(0, 1)
	var y mat.VecDense
	if err := y.SolveVec(&g, alpha); err != nil {
		return nil, fmt.Errorf("%w: degenerate constraint system (n=%d, p=%d)", ErrInvalidParameter, n, p)
	}

	var wv mat.VecDense
	wv.MulVec(&x, &y)
	w := make([]float64, n)
	for i := range w {
		w[i] = wv.AtVec(i)
	}
	return w, nil
}

// nextOdd rounds v up to the nearest odd integer.
func nextOdd(v float64) int {
	n := int(math.Ceil(v))
	if n%2 == 0 {
		n++
	}
	return n
}
