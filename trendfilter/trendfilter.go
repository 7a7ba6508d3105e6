package trendfilter

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidParameter is returned for malformed filter arguments.
var ErrInvalidParameter = errors.New("invalid trend filter parameter")

// Filter implements the decomposition engine's trend-filter collaborator.
type Filter struct{}

// Trend dispatches on the method tag and returns a trend aligned with values.
func (Filter) Trend(values []float64, method string, arg any, dates []float64) ([]float64, error) {
	switch method {
	case "detrend":
		breaks, err := toFloats(arg)
		if err != nil {
			return nil, err
		}
		return Detrend(values, breaks)
	case "polynomial":
		degree, err := toScalar(arg)
		if err != nil {
			return nil, err
		}
		return Polynomial(values, int(degree))
	case "hp":
		lambda, err := toScalar(arg)
		if err != nil {
			return nil, err
		}
		return HP(values, lambda)
	case "spline":
		p, err := toScalar(arg)
		if err != nil {
			return nil, err
		}
		return Spline(values, p)
	}
	return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidParameter, method)
}

// Detrend fits a continuous piecewise-linear trend by least squares. Breaks
// holds interior breakpoint positions in index units; without breaks this is
// a plain linear fit.
func Detrend(values []float64, breaks []float64) ([]float64, error) {
	basis := make([]func(float64) float64, 0, 2+len(breaks))
	basis = append(basis,
		func(x float64) float64 { return 1 },
		func(x float64) float64 { return x },
	)
	for _, b := range breaks {
		b := b
		basis = append(basis, func(x float64) float64 { return math.Max(0, x-b) })
	}
	return fitBasis(values, basis)
}

// Polynomial fits a polynomial trend of the given degree by least squares.
func Polynomial(values []float64, degree int) ([]float64, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: degree %d", ErrInvalidParameter, degree)
	}
	n := float64(len(values))
	basis := make([]func(float64) float64, degree+1)
	for d := range basis {
		d := d
		// Centered and scaled abscissa keeps the normal equations conditioned
		// at higher degrees.
		basis[d] = func(x float64) float64 {
			return math.Pow((2*x-n+1)/n, float64(d))
		}
	}
	return fitBasis(values, basis)
}

// fitBasis solves the least squares fit of values on the basis functions over
// the non-missing points and evaluates the fit everywhere.
func fitBasis(values []float64, basis []func(float64) float64) ([]float64, error) {
	var rows []int
	for i, v := range values {
		if !math.IsNaN(v) {
			rows = append(rows, i)
		}
	}
	if len(rows) < len(basis) {
		return nil, fmt.Errorf("%w: %d valid observations for %d coefficients", ErrInvalidParameter, len(rows), len(basis))
	}

	x := mat.NewDense(len(rows), len(basis), nil)
	y := mat.NewVecDense(len(rows), nil)
	for r, i := range rows {
		for c, f := range basis {
			x.Set(r, c, f(float64(i)))
		}
		y.SetVec(r, values[i])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(x, y); err != nil {
		return nil, fmt.Errorf("%w: degenerate design matrix", ErrInvalidParameter)
	}

	out := make([]float64, len(values))
	for i := range out {
		fit := 0.0
		for c, f := range basis {
			fit += beta.AtVec(c) * f(float64(i))
		}
		out[i] = fit
	}
	return out, nil
}

// HP applies the Hodrick-Prescott filter with penalty lambda.
func HP(values []float64, lambda float64) ([]float64, error) {
	if lambda < 0 || math.IsNaN(lambda) {
		return nil, fmt.Errorf("%w: lambda %v", ErrInvalidParameter, lambda)
	}
	return penalized(values, lambda)
}

// Spline applies a discrete smoothing spline: a second-order penalized
// smoother with smoothing parameter p in (0,1], mapped to penalty (1-p)/p.
// p=1 reproduces the data.
func Spline(values []float64, p float64) ([]float64, error) {
	if p <= 0 || p > 1 || math.IsNaN(p) {
		return nil, fmt.Errorf("%w: smoothing parameter %v must be in (0,1]", ErrInvalidParameter, p)
	}
	return penalized(values, (1-p)/p)
}

// penalized minimizes sum_i w_i (y_i - t_i)^2 + lambda * sum (d2 t)^2, the
// Whittaker form shared by the HP and spline methods. Missing observations
// get zero fidelity weight and are interpolated by the penalty.
func penalized(values []float64, lambda float64) ([]float64, error) {
	n := len(values)
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 observations, got %d", ErrInvalidParameter, n)
	}
	if lambda == 0 {
		return append([]float64(nil), values...), nil
	}

	d := mat.NewDense(n-2, n, nil)
	for i := 0; i < n-2; i++ {
		d.Set(i, i, 1)
		d.Set(i, i+1, -2)
		d.Set(i, i+2, 1)
	}

	var a mat.Dense
	a.Mul(d.T(), d)
	a.Scale(lambda, &a)

	rhs := mat.NewVecDense(n, nil)
	valid := 0
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		a.Set(i, i, a.At(i, i)+1)
		rhs.SetVec(i, v)
		valid++
	}
	if valid < 2 {
		return nil, fmt.Errorf("%w: %d valid observations", ErrInvalidParameter, valid)
	}

	var tau mat.VecDense
	if err := tau.SolveVec(&a, rhs); err != nil {
		return nil, fmt.Errorf("%w: singular smoothing system", ErrInvalidParameter)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = tau.AtVec(i)
	}
	return out, nil
}

// toScalar coerces a method argument to a float64.
func toScalar(arg any) (float64, error) {
	switch v := arg.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: expected a numeric argument, got %T", ErrInvalidParameter, arg)
}

// toFloats coerces a method argument to a float64 slice; nil means none.
func toFloats(arg any) ([]float64, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []float64:
		return v, nil
	case []int:
		out := make([]float64, len(v))
		for i, b := range v {
			out[i] = float64(b)
		}
		return out, nil
	case float64:
		return []float64{v}, nil
	case int:
		return []float64{float64(v)}, nil
	}
	return nil, fmt.Errorf("%w: expected breakpoint positions, got %T", ErrInvalidParameter, arg)
}
