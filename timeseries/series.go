package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"
)

// Series represents a time series with timestamps and values.
// Missing observations are NaN.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a time series from values with synthetic hourly timestamps.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now()
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps, which
// must be strictly increasing and aligned with the values.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	for i := 1; i < len(timestamps); i++ {
		if !timestamps[i].After(timestamps[i-1]) {
			return nil, errors.New("timestamps must be strictly increasing")
		}
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Valid returns the number of non-missing observations.
func (s *Series) Valid() int {
	count := 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			count++
		}
	}
	return count
}

// Mean calculates the arithmetic mean of the non-missing values.
func (s *Series) Mean() float64 {
	sum, count := 0.0, 0
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Min returns the minimum non-missing value.
func (s *Series) Min() float64 {
	min := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(min) || v < min {
			min = v
		}
	}
	return min
}

// Max returns the maximum non-missing value.
func (s *Series) Max() float64 {
	max := math.NaN()
	for _, v := range s.Values {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(max) || v > max {
			max = v
		}
	}
	return max
}

// Median returns the median of the non-missing values.
func (s *Series) Median() float64 {
	sorted := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Log applies the natural logarithm; non-positive values become NaN.
func (s *Series) Log() *Series {
	out := s.Copy()
	out.Name = s.Name + "_log"
	for i, v := range out.Values {
		if v > 0 {
			out.Values[i] = math.Log(v)
		} else {
			out.Values[i] = math.NaN()
		}
	}
	return out
}

// Exp applies the exponential, undoing Log.
func (s *Series) Exp() *Series {
	out := s.Copy()
	out.Name = s.Name + "_exp"
	for i, v := range out.Values {
		out.Values[i] = math.Exp(v)
	}
	return out
}

// DateNumbers converts the timestamps to fractional day counts since the
// first observation, the numeric form the decomposition engine consumes.
func (s *Series) DateNumbers() []float64 {
	if len(s.Timestamps) == 0 {
		return nil
	}
	out := make([]float64, len(s.Timestamps))
	first := s.Timestamps[0]
	for i, ts := range s.Timestamps {
		out[i] = ts.Sub(first).Hours() / 24
	}
	return out
}
