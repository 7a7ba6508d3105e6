// Package timeseries provides the time series value type and loading helpers.
//
// A Series pairs an ordered sequence of float64 values with optional strictly
// increasing timestamps. Missing observations are represented as NaN and flow
// through the rest of the library; the statistics here (Mean, Min, Max,
// Median) skip missing values rather than poisoning the result.
package timeseries
