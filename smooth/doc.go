// Package smooth applies finite-impulse-response weight vectors to data of
// arbitrary length.
//
// Unlike raw convolution there is no "valid" length reduction: the output has
// the same length as the input. Near the boundaries the window is truncated
// to the available indices and the surviving weights are renormalized, so a
// weight vector that sums to one maps a constant series to itself everywhere,
// edges included. Missing observations (NaN) are excluded from both the
// numerator and the weight-sum denominator; a window without any valid point
// produces NaN.
package smooth
