// Package trendfilter provides model-based trend extraction for the
// decomposition engine.
//
// Filter implements the decompose.TrendFilter collaborator contract: given a
// series, a method tag, and a method-specific argument it returns a trend of
// identical length. Supported methods:
//
//   - "detrend": continuous piecewise-linear least squares fit, with optional
//     breakpoint positions
//   - "polynomial": polynomial least squares fit of a given degree
//   - "hp": Hodrick-Prescott filter with penalty lambda
//   - "spline": discrete smoothing spline (second-order penalized smoother)
//     with smoothing parameter p in (0,1]
//
// Missing observations are excluded from every fit; the fitted trend still
// covers the full series, so the filters double as gap interpolators.
package trendfilter
