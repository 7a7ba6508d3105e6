// Package kernels synthesizes finite-impulse-response smoothing weight vectors.
//
// A weight vector is a 1-D sequence of reals whose convolution with a data
// window approximates a local average. The package supports:
//
//   - Simple and centered moving averages, including fractional bandwidths
//     ("ma", "cma" and its aliases "uniform", "rectangular", "box")
//   - Finite-support shape kernels (epanechnikov, triangle, biweight,
//     triweight, tricube, cosine, optcosine, cauchy)
//   - Infinite-support kernels truncated at a negligibility threshold
//     (gaussian, logistic, sigmoid, exponential, silverman)
//   - The generalized Henderson/Bongard/Rehomme-Ladiray filter family, solved
//     as a constrained quadratic minimization
//   - The classical 15-term Spencer filter
//
// All returned weight vectors sum to one. Passing several bandwidths to one of
// the moving-average or shape families convolves the per-bandwidth kernels,
// renormalizing after each convolution:
//
//	w, _, _ := kernels.Weights("ma", 5, 4, 4) // 5x4x4 composite moving average
//
// Kernel generation is a pure function. Recoverable irregularities (an
// even Henderson length coerced to the next odd value, an out-of-range
// convexity weight) are reported as warning strings alongside the weights;
// invalid parameters and unknown kernel names are errors.
package kernels
