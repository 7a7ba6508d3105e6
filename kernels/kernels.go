package kernels

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Negligible is the absolute threshold below which the tails of an
// infinite-support kernel are truncated.
const Negligible = 1e-15

var (
	// ErrUnsupportedKernel is returned for kernel names outside the supported set.
	ErrUnsupportedKernel = errors.New("unsupported kernel")
	// ErrInvalidParameter is returned for malformed numeric kernel parameters.
	ErrInvalidParameter = errors.New("invalid kernel parameter")
)

// Kind identifies a smoothing kernel family.
type Kind int

const (
	MA Kind = iota
	CMA
	Epanechnikov
	Triangle
	Biweight
	Triweight
	Tricube
	Cosine
	Optcosine
	Cauchy
	Gaussian
	Logistic
	Sigmoid
	Exponential
	Silverman
	Henderson
	Bongard
	RehommeLadiray
	Spencer
)

var kindNames = map[Kind]string{
	MA:             "ma",
	CMA:            "cma",
	Epanechnikov:   "epanechnikov",
	Triangle:       "triangle",
	Biweight:       "biweight",
	Triweight:      "triweight",
	Tricube:        "tricube",
	Cosine:         "cosine",
	Optcosine:      "optcosine",
	Cauchy:         "cauchy",
	Gaussian:       "gaussian",
	Logistic:       "logistic",
	Sigmoid:        "sigmoid",
	Exponential:    "exponential",
	Silverman:      "silverman",
	Henderson:      "henderson",
	Bongard:        "bongard",
	RehommeLadiray: "rehomme-ladiray",
	Spencer:        "spencer",
}

// String returns the canonical kernel name.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

var kindAliases = map[string]Kind{
	"ma":              MA,
	"sma":             MA,
	"cma":             CMA,
	"uniform":         CMA,
	"rectangular":     CMA,
	"box":             CMA,
	"boxcar":          CMA,
	"epanechnikov":    Epanechnikov,
	"triangle":        Triangle,
	"triangular":      Triangle,
	"biweight":        Biweight,
	"quartic":         Biweight,
	"triweight":       Triweight,
	"tricube":         Tricube,
	"cosine":          Cosine,
	"optcosine":       Optcosine,
	"cauchy":          Cauchy,
	"gaussian":        Gaussian,
	"normal":          Gaussian,
	"logistic":        Logistic,
	"sigmoid":         Sigmoid,
	"exponential":     Exponential,
	"silverman":       Silverman,
	"henderson":       Henderson,
	"bongard":         Bongard,
	"rehomme-ladiray": RehommeLadiray,
	"rehommeladiray":  RehommeLadiray,
	"rl":              RehommeLadiray,
	"spencer":         Spencer,
	"spencer15":       Spencer,
}

// ParseKind maps a kernel name (or alias) to its Kind.
func ParseKind(name string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedKernel, name)
	}
	return k, nil
}

// Spec is a fully resolved kernel request: a kernel family plus its numeric
// parameters. For the moving-average and shape families every parameter is a
// bandwidth and the per-bandwidth kernels are convolved together. For the
// Henderson family the parameters are (length, order, convexity weight); for
// Spencer the single optional parameter is a repeat count.
type Spec struct {
	Kind   Kind
	Params []float64

	// Support, when positive, overrides the automatic half-length used to
	// truncate infinite-support kernels.
	Support int
}

// Weights translates a kernel name and numeric parameters into a normalized
// weight vector. Warnings report documented auto-corrections (odd-length
// coercion, out-of-range convexity weight) without interrupting generation.
func Weights(name string, params ...float64) ([]float64, []string, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return nil, nil, err
	}
	return Spec{Kind: kind, Params: params}.Weights()
}

// Weights builds the weight vector described by the Spec.
func (s Spec) Weights() ([]float64, []string, error) {
	switch s.Kind {
	case Henderson:
		return generalizedWeights(s.Kind, s.Params, 1)
	case Bongard:
		return generalizedWeights(s.Kind, s.Params, 0)
	case RehommeLadiray:
		return generalizedWeights(s.Kind, s.Params, 1)
	case Spencer:
		w, err := spencerWeights(s.Params)
		return w, nil, err
	}

	params := s.Params
	if len(params) == 0 {
		return nil, nil, fmt.Errorf("%w: %s requires a bandwidth", ErrInvalidParameter, s.Kind)
	}
	var combined []float64
	for _, b := range params {
		w, err := s.single(b)
		if err != nil {
			return nil, nil, err
		}
		normalize(w)
		if combined == nil {
			combined = w
			continue
		}
		combined = Convolve(combined, w)
		normalize(combined)
	}
	return combined, nil, nil
}

// single builds one kernel of the Spec's family for bandwidth b.
func (s Spec) single(b float64) ([]float64, error) {
	if b <= 0 || math.IsNaN(b) || math.IsInf(b, 0) {
		return nil, fmt.Errorf("%w: bandwidth %v must be positive", ErrInvalidParameter, b)
	}
	switch s.Kind {
	case MA:
		n := int(math.Ceil(b))
		w := make([]float64, n)
		for i := range w {
			w[i] = 1
		}
		return w, nil
	case CMA:
		return centeredMA(b), nil
	case Epanechnikov, Triangle, Biweight, Triweight, Tricube, Cosine, Optcosine, Cauchy:
		return shapeKernel(s.Kind, b), nil
	case Gaussian, Logistic, Sigmoid, Exponential, Silverman:
		return infiniteKernel(s.Kind, b, s.Support), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedKernel, s.Kind)
}

// centeredMA builds a centered moving average of effective length b. The
// vector has the next-larger odd number of taps and the two extreme taps are
// shrunk so the total support equals b exactly, which makes fractional
// bandwidths (and the classical 2x12 average, b=12) come out right.
func centeredMA(b float64) []float64 {
	n := int(math.Ceil((b-1)/2))*2 + 1
	if n < 1 {
		n = 1
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	// With a single tap both ends coincide and the shrink applies twice,
	// leaving w[0] = b; normalization restores it to 1.
	shrink := (float64(n) - b) / 2
	w[0] -= shrink
	w[n-1] -= shrink
	return w
}

// shapeKernel evaluates a closed-form finite-support kernel over normalized
// lags j/L for half-width L = ceil((b-1)/2), then trims non-positive tails.
func shapeKernel(kind Kind, b float64) []float64 {
	l := int(math.Ceil((b - 1) / 2))
	if l < 1 {
		return []float64{1}
	}
	w := make([]float64, 2*l+1)
	for j := -l; j <= l; j++ {
		w[j+l] = shapeValue(kind, float64(j)/float64(l))
	}
	return trimTails(w, 0)
}

func shapeValue(kind Kind, k float64) float64 {
	switch kind {
	case Epanechnikov:
		return 0.75 * (1 - k*k)
	case Triangle:
		return 1 - math.Abs(k)
	case Biweight:
		u := 1 - k*k
		return 15.0 / 16.0 * u * u
	case Triweight:
		u := 1 - k*k
		return 35.0 / 32.0 * u * u * u
	case Tricube:
		u := 1 - math.Abs(k*k*k)
		return 70.0 / 81.0 * u * u * u
	case Cosine:
		return (1 + math.Cos(math.Pi*k)) / 2
	case Optcosine:
		return math.Pi / 4 * math.Cos(math.Pi*k/2)
	case Cauchy:
		return 1 / (math.Pi * (1 + k*k))
	}
	return 0
}

// tailFactor is the per-kernel multiple of the bandwidth at which the tail
// density has decayed below Negligible.
var tailFactor = map[Kind]float64{
	Gaussian:    9,
	Logistic:    36,
	Sigmoid:     36,
	Exponential: 36,
	Silverman:   52,
}

// infiniteKernel evaluates an infinite-support kernel over lags j/b on a
// symmetric grid and truncates the tails once they drop below Negligible.
// A positive support overrides the automatic grid half-length.
func infiniteKernel(kind Kind, b float64, support int) []float64 {
	m := support
	if m <= 0 {
		m = int(math.Ceil(b * tailFactor[kind]))
	}
	w := make([]float64, 2*m+1)
	for j := -m; j <= m; j++ {
		w[j+m] = infiniteValue(kind, float64(j)/b)
	}
	if support > 0 {
		return w
	}
	return trimTails(w, Negligible)
}

func infiniteValue(kind Kind, k float64) float64 {
	switch kind {
	case Gaussian:
		return math.Exp(-k*k/2) / math.Sqrt(2*math.Pi)
	case Logistic:
		return 1 / (2 + math.Exp(k) + math.Exp(-k))
	case Sigmoid:
		return 2 / math.Pi / (math.Exp(k) + math.Exp(-k))
	case Exponential:
		return math.Exp(-math.Abs(k)) / 2
	case Silverman:
		a := math.Abs(k) / math.Sqrt2
		return 0.5 * math.Exp(-a) * math.Sin(a+math.Pi/4)
	}
	return 0
}

// trimTails drops leading and trailing entries whose magnitude does not
// exceed the threshold, keeping the vector symmetric.
func trimTails(w []float64, threshold float64) []float64 {
	lo, hi := 0, len(w)-1
	for lo <= hi && math.Abs(w[lo]) <= threshold {
		lo++
	}
	for hi >= lo && math.Abs(w[hi]) <= threshold {
		hi--
	}
	if lo > hi {
		return []float64{1}
	}
	return w[lo : hi+1]
}

// Convolve returns the full discrete convolution of a and b,
// of length len(a)+len(b)-1.
func Convolve(a, b []float64) []float64 {
	out := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			out[i+j] += av * bv
		}
	}
	return out
}

// normalize scales w in place to sum to one.
func normalize(w []float64) {
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
}

// isInteger reports whether v is an exact integer.
func isInteger(v float64) bool {
	return v == math.Trunc(v) && !math.IsNaN(v) && !math.IsInf(v, 0)
}
