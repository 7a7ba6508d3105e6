// Package decompose splits a series into trend, seasonal, and irregular
// components for one or more fixed periodicities.
//
// For each requested period the engine extracts a trend (a kernel-weighted
// smoothing, or a delegated model-based trend filter), removes it to obtain
// the seasonal-irregular, averages the seasonal-irregular by phase into a
// normalized seasonal factor, and derives the seasonally adjusted series and
// the irregular. Periods are processed strictly in caller order; each period
// after the first consumes the seasonally adjusted output of the previous
// one, so decomposing with periods [14, 20] and [20, 14] generally differs.
//
// Modes are "additive" (y = trend + sf + ir), "multiplicative"
// (y = trend * sf * ir), and "log-additive" (additive decomposition of the
// logged series, with all components exponentiated back).
//
// Shorter per-period mode/method/argument lists are broadcast to the period
// count by right-padding with their last element. This mirrors the reference
// behavior and is deliberate, not an oversight.
//
// When several periods share one mode an aggregate pseudo-component is added:
// its trend and seasonally adjusted series are the last period's, while its
// seasonal factor, seasonal-irregular, and irregular combine the per-period
// components elementwise (sum when additive, product otherwise). The
// cumulative seasonal effect is defined as the combination of each stage's
// individually estimated effect, not re-estimated from the original series.
package decompose
