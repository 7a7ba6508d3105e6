package decompose

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sartorproj/goseasonal/kernels"
	"github.com/sartorproj/goseasonal/smooth"
)

var (
	// ErrInvalidConfiguration is returned for unknown modes or trend methods
	// and for malformed decomposition requests.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrShapeMismatch is returned for data/dates misalignment.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Decomposition modes.
const (
	ModeAdditive       = "additive"
	ModeMultiplicative = "multiplicative"
	ModeLogAdditive    = "log-additive"
)

// trendFilterMethods are delegated to the TrendFilter collaborator rather
// than resolved as kernel names.
var trendFilterMethods = map[string]bool{
	"detrend":    true,
	"spline":     true,
	"polynomial": true,
	"hp":         true,
}

// TrendFilter is the model-based trend extraction collaborator. It receives
// the (possibly log-transformed) series, a method tag, a method-specific
// argument, and the date numbers, and must return a trend of identical
// length.
type TrendFilter interface {
	Trend(values []float64, method string, arg any, dates []float64) ([]float64, error)
}

// Options configures a decomposition. Modes, Methods, and MethodArgs are
// per-period lists broadcast to the number of periods by right-padding with
// their last element.
type Options struct {
	// Modes holds per-period decomposition modes; default additive.
	Modes []string
	// Methods holds per-period trend methods: a kernel name understood by
	// the kernels package, or one of detrend, spline, polynomial, hp, which
	// delegate to TrendFilter. Default is a centered moving average.
	Methods []string
	// MethodArgs holds per-period method arguments: kernel parameters
	// (float64 or []float64) or the collaborator argument. Nil entries get
	// the documented per-method default.
	MethodArgs []any
	// Dates optionally holds date numbers aligned with the data, strictly
	// increasing.
	Dates []float64
	// TrendFilter is required when any method delegates to a trend filter.
	TrendFilter TrendFilter
}

// Component holds the decomposition output for a single period.
type Component struct {
	Period    float64
	Mode      string
	Method    string
	MethodArg any

	Input []float64 // series this period consumed
	Trend []float64
	SA    []float64 // seasonally adjusted
	SF    []float64 // seasonal factor
	SI    []float64 // seasonal-irregular (pre-normalization)
	IR    []float64 // irregular
}

// Result is the full decomposition bundle.
type Result struct {
	Original   []float64
	Dates      []float64
	Components []Component

	// Aggregate combines the per-period components when more than one
	// period was requested and all share the same mode.
	Aggregate *Component

	// Warnings carries non-fatal corrections (kernel length coercions and
	// the like) accumulated during the run.
	Warnings []string
}

// Decompose splits values into trend, seasonal, and irregular components for
// each requested period, chaining periods left to right over the seasonally
// adjusted output.
func Decompose(values []float64, periods []float64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	n := len(values)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrShapeMismatch, n)
	}
	if opts.Dates != nil {
		if len(opts.Dates) != n {
			return nil, fmt.Errorf("%w: %d dates for %d observations", ErrShapeMismatch, len(opts.Dates), n)
		}
		for i := 1; i < n; i++ {
			if !(opts.Dates[i] > opts.Dates[i-1]) {
				return nil, fmt.Errorf("%w: dates must be strictly increasing", ErrShapeMismatch)
			}
		}
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: at least one period is required", ErrInvalidConfiguration)
	}
	for _, p := range periods {
		if !(p > 0) || math.IsInf(p, 0) {
			return nil, fmt.Errorf("%w: period %v must be positive", ErrInvalidConfiguration, p)
		}
	}

	modes := broadcastToLength(opts.Modes, len(periods), ModeAdditive)
	methods := broadcastToLength(opts.Methods, len(periods), "cma")
	args := broadcastToLength(opts.MethodArgs, len(periods), nil)
	for i, m := range modes {
		modes[i] = strings.ToLower(strings.TrimSpace(m))
		switch modes[i] {
		case "":
			modes[i] = ModeAdditive
		case ModeAdditive, ModeMultiplicative, ModeLogAdditive:
		default:
			return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, m)
		}
	}

	res := &Result{
		Original: append([]float64(nil), values...),
		Dates:    append([]float64(nil), opts.Dates...),
	}

	cur := append([]float64(nil), values...)
	for q, period := range periods {
		comp, err := decomposeOne(cur, period, modes[q], methods[q], args[q], opts, &res.Warnings)
		if err != nil {
			return nil, err
		}
		res.Components = append(res.Components, comp)
		cur = append([]float64(nil), comp.SA...)
	}

	if len(periods) > 1 && allEqual(modes) {
		agg := aggregate(res.Components)
		res.Aggregate = &agg
	}
	return res, nil
}

// decomposeOne runs the single-period pipeline: trend, seasonal-irregular,
// seasonal factor, seasonally adjusted, irregular.
func decomposeOne(input []float64, period float64, mode, method string, arg any, opts *Options, warnings *[]string) (Component, error) {
	comp := Component{
		Period: period,
		Mode:   mode,
		Method: method,
		Input:  append([]float64(nil), input...),
	}

	work := input
	if mode == ModeLogAdditive {
		work = logSlice(input)
	}
	mult := mode == ModeMultiplicative

	trend, usedArg, err := extractTrend(work, period, method, arg, opts, warnings)
	if err != nil {
		return Component{}, err
	}
	comp.MethodArg = usedArg

	si := Deviation(work, trend, mult)
	sf := seasonalFactor(si, period, mult)
	sa := Deviation(work, sf, mult)
	ir := Deviation(sa, trend, mult)

	if mode == ModeLogAdditive {
		trend = expSlice(trend)
		si = expSlice(si)
		sf = expSlice(sf)
		sa = expSlice(sa)
		ir = expSlice(ir)
	}

	comp.Trend = trend
	comp.SI = si
	comp.SF = sf
	comp.SA = sa
	comp.IR = ir
	return comp, nil
}

// extractTrend resolves the trend method: collaborator tags delegate to the
// configured TrendFilter with the documented default argument, anything else
// is a kernel name smoothed with centered weights. The returned argument is
// the one actually used, defaults included.
func extractTrend(work []float64, period float64, method string, arg any, opts *Options, warnings *[]string) ([]float64, any, error) {
	method = strings.ToLower(strings.TrimSpace(method))
	if method == "" {
		method = "cma"
	}

	if trendFilterMethods[method] {
		if opts.TrendFilter == nil {
			return nil, nil, fmt.Errorf("%w: method %q requires a trend filter", ErrInvalidConfiguration, method)
		}
		if arg == nil {
			arg = defaultFilterArg(method, period, len(work), opts.Dates)
		}
		trend, err := opts.TrendFilter.Trend(work, method, arg, opts.Dates)
		if err != nil {
			return nil, nil, err
		}
		if len(trend) != len(work) {
			return nil, nil, fmt.Errorf("%w: trend filter returned %d values for %d observations", ErrShapeMismatch, len(trend), len(work))
		}
		return trend, arg, nil
	}

	kind, err := kernels.ParseKind(method)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unknown trend method %q", ErrInvalidConfiguration, method)
	}

	params, err := kernelParams(arg)
	if err != nil {
		return nil, nil, err
	}
	if len(params) == 0 {
		switch kind {
		case kernels.Henderson, kernels.Bongard, kernels.RehommeLadiray:
			params = []float64{2*period - 1}
		case kernels.Spencer:
			// Spencer is a fixed-width composite; no default parameter.
		default:
			params = []float64{period}
		}
	}

	w, warns, err := kernels.Spec{Kind: kind, Params: params}.Weights()
	if err != nil {
		return nil, nil, err
	}
	*warnings = append(*warnings, warns...)

	trend, err := smooth.Apply(work, w, smooth.Centered)
	if err != nil {
		return nil, nil, err
	}
	var usedArg any
	if len(params) == 1 {
		usedArg = params[0]
	} else if len(params) > 1 {
		usedArg = params
	}
	return trend, usedArg, nil
}

// kernelParams coerces a method argument into kernel parameters.
func kernelParams(arg any) ([]float64, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case float64:
		return []float64{v}, nil
	case int:
		return []float64{float64(v)}, nil
	case []float64:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: unsupported kernel argument %T", ErrInvalidConfiguration, arg)
	}
}

// defaultFilterArg supplies the collaborator default when the caller omits
// the method argument.
func defaultFilterArg(method string, period float64, n int, dates []float64) any {
	switch method {
	case "spline":
		h := averageInterval(dates) / period
		return 1 / (1 + h*h*h/0.6)
	case "polynomial":
		return math.Floor(float64(n) / period)
	case "hp":
		return math.Exp(-7.10636 + 5.91863781313348*math.Log(period))
	}
	// detrend: no breakpoints.
	return nil
}

// averageInterval is the mean spacing of the date numbers, 1 when absent.
func averageInterval(dates []float64) float64 {
	if len(dates) < 2 {
		return 1
	}
	return (dates[len(dates)-1] - dates[0]) / float64(len(dates)-1)
}

// seasonalFactor averages the seasonal-irregular by phase, recenters the
// per-phase averages to zero mean (unit mean when multiplicative), and
// broadcasts them back to full length.
func seasonalFactor(si []float64, period float64, mult bool) []float64 {
	nPhases := int(math.Ceil(period))

	var avgs []float64
	if period == math.Trunc(period) {
		avgs = columnMeans(SplitPeriods(si, nPhases))
	} else {
		avgs = phaseMeans(si, period, nPhases)
	}

	grand, withData := 0.0, 0
	for _, a := range avgs {
		if !math.IsNaN(a) {
			grand += a
			withData++
		}
	}
	if withData > 0 {
		grand /= float64(withData)
		for p := range avgs {
			if mult {
				if grand != 0 {
					avgs[p] /= grand
				}
			} else {
				avgs[p] -= grand
			}
		}
	}

	sf := make([]float64, len(si))
	for i := range sf {
		sf[i] = avgs[phaseOf(i, period, nPhases)]
	}
	return sf
}

// columnMeans averages each phase column of the cycle matrix, skipping
// missing entries.
func columnMeans(cycles [][]float64) []float64 {
	if len(cycles) == 0 {
		return nil
	}
	avgs := make([]float64, len(cycles[0]))
	for c := range avgs {
		sum, count := 0.0, 0
		for _, row := range cycles {
			if !math.IsNaN(row[c]) {
				sum += row[c]
				count++
			}
		}
		if count == 0 {
			avgs[c] = math.NaN()
		} else {
			avgs[c] = sum / float64(count)
		}
	}
	return avgs
}

// phaseMeans averages by phase directly for fractional periods, where whole
// cycles do not align with the observation grid.
func phaseMeans(si []float64, period float64, nPhases int) []float64 {
	sums := make([]float64, nPhases)
	counts := make([]int, nPhases)
	for i, v := range si {
		if math.IsNaN(v) {
			continue
		}
		ph := phaseOf(i, period, nPhases)
		sums[ph] += v
		counts[ph]++
	}
	avgs := make([]float64, nPhases)
	for p := range avgs {
		if counts[p] == 0 {
			avgs[p] = math.NaN()
		} else {
			avgs[p] = sums[p] / float64(counts[p])
		}
	}
	return avgs
}

// phaseOf maps observation index i to its phase within the cycle. For
// integer periods this is i mod period.
func phaseOf(i int, period float64, nPhases int) int {
	ph := int(math.Mod(float64(i), period))
	if ph >= nPhases {
		ph = nPhases - 1
	}
	return ph
}

// aggregate builds the synthetic combined component across all periods.
// Trend and SA come from the last period; SF, SI, and IR are the elementwise
// sum (additive) or product (multiplicative and log-additive, whose returned
// components live on the exponentiated scale) of the per-period components.
func aggregate(comps []Component) Component {
	mode := comps[0].Mode
	mult := mode != ModeAdditive
	last := comps[len(comps)-1]

	agg := Component{
		Period: 0,
		Mode:   mode,
		Method: "aggregate",
		Input:  append([]float64(nil), comps[0].Input...),
		Trend:  append([]float64(nil), last.Trend...),
		SA:     append([]float64(nil), last.SA...),
	}
	agg.SF = combine(comps, func(c Component) []float64 { return c.SF }, mult)
	agg.SI = combine(comps, func(c Component) []float64 { return c.SI }, mult)
	agg.IR = combine(comps, func(c Component) []float64 { return c.IR }, mult)
	return agg
}

func combine(comps []Component, pick func(Component) []float64, mult bool) []float64 {
	n := len(pick(comps[0]))
	out := make([]float64, n)
	if mult {
		for i := range out {
			out[i] = 1
		}
	}
	for _, c := range comps {
		vals := pick(c)
		for i := range out {
			if mult {
				out[i] *= vals[i]
			} else {
				out[i] += vals[i]
			}
		}
	}
	return out
}

func allEqual(vals []string) bool {
	for _, v := range vals[1:] {
		if v != vals[0] {
			return false
		}
	}
	return true
}

func logSlice(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if v > 0 {
			out[i] = math.Log(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func expSlice(vals []float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = math.Exp(v)
	}
	return out
}
