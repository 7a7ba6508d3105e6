package timeseries

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVBasic(t *testing.T) {
	csvData := `date,value
2024-01-01,10.5
2024-01-02,11.2
2024-01-03,9.8
`
	s, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())
	assert.InDelta(t, 10.5, s.Values[0], 1e-12)
	assert.Equal(t, 1.0, s.DateNumbers()[1])
}

func TestLoadCSVMissingValues(t *testing.T) {
	csvData := `date,value
2024-01-01,10.5
2024-01-02,NA
2024-01-03,
2024-01-04,9.8
`
	s, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	assert.True(t, math.IsNaN(s.Values[1]))
	assert.True(t, math.IsNaN(s.Values[2]))
	assert.InDelta(t, 9.8, s.Values[3], 1e-12)
}

func TestLoadCSVCustomColumns(t *testing.T) {
	csvData := `when;sales
2024-01;100
2024-02;110
`
	opts := &CSVOptions{
		DateColumn:  "when",
		ValueColumn: "sales",
		DateFormat:  "2006-01",
		HasHeader:   true,
		Delimiter:   ';',
	}
	s, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())
	assert.InDelta(t, 100, s.Values[0], 1e-12)
}

func TestLoadCSVNoHeader(t *testing.T) {
	csvData := `2024-01-01,5
2024-01-02,6
`
	opts := DefaultCSVOptions()
	opts.HasHeader = false
	s, err := LoadCSVFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6}, s.Values)
}

func TestLoadCSVBadValue(t *testing.T) {
	csvData := `date,value
2024-01-01,abc
`
	_, err := LoadCSVFromReader(strings.NewReader(csvData), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abc")
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := LoadCSVFromReader(strings.NewReader("date,value\n"), nil)
	require.Error(t, err)
}
