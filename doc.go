// Package goseasonal provides fixed-period seasonal decomposition of time series.
//
// GoSeasonal splits a regularly sampled series into a long-run trend, one or
// more seasonal components, and an irregular residual using configurable linear
// smoothing kernels. Unlike ARIMA-based seasonal adjustment, the decomposition
// here is purely filter-based: trends come from finite-impulse-response weight
// vectors (moving averages, shape kernels, Henderson-type filters) or from
// pluggable trend-filter collaborators (polynomial, HP, spline, piecewise
// linear detrending).
//
// # Quick Start
//
// Decompose a monthly series additively:
//
//	result, _ := decompose.Decompose(values, []float64{12}, nil)
//	trend := result.Components[0].Trend
//	sa := result.Components[0].SA
//
// Build a 13-term Henderson filter and smooth with it:
//
//	w, _, _ := kernels.Weights("henderson", 13)
//	trend, _ := smooth.Apply(values, w, smooth.Centered)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - kernels: smoothing kernel weight synthesis (moving averages, shape
//     kernels, Henderson/Bongard/Rehomme-Ladiray, Spencer)
//   - smooth: boundary-aware weighted smoothing with missing-value support
//   - decompose: multi-period trend/seasonal/irregular decomposition
//   - trendfilter: model-based trend extraction (detrend, polynomial, HP, spline)
//   - timeseries: time series data structures and CSV loading
//
// # References
//
//   - Ladiray, D., & Quenneville, B. (2001). Seasonal Adjustment with the X-11 Method
//   - Rehomme, M., & Ladiray, D. (2002). Moving Average Trend Filters
package goseasonal
