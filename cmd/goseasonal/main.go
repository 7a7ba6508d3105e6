// Command goseasonal decomposes a CSV time series into trend, seasonal, and
// irregular components.
//
// Usage:
//
//	goseasonal --input sales.csv --periods 12 --mode multiplicative
//	goseasonal --input hourly.csv --periods 24,168 --method henderson --dump
package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sartorproj/goseasonal/decompose"
	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/sartorproj/goseasonal/trendfilter"
)

type options struct {
	input       string
	valueColumn string
	dateColumn  string
	dateFormat  string
	periods     []float64
	modes       []string
	methods     []string
	args        []float64
	dump        bool
	verbose     bool
}

func main() {
	opts := options{}

	root := &cobra.Command{
		Use:          "goseasonal",
		Short:        "Fixed-period seasonal decomposition of time series",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			return run(opts)
		},
	}

	root.Flags().StringVarP(&opts.input, "input", "i", "", "input CSV file (required)")
	root.Flags().StringVar(&opts.valueColumn, "value-column", "value", "value column name")
	root.Flags().StringVar(&opts.dateColumn, "date-column", "", "date column name (auto-detected when empty)")
	root.Flags().StringVar(&opts.dateFormat, "date-format", "2006-01-02", "date layout in Go reference time format")
	root.Flags().Float64SliceVarP(&opts.periods, "periods", "p", nil, "periodicities in observations, applied left to right (required)")
	root.Flags().StringSliceVarP(&opts.modes, "mode", "m", nil, "per-period mode: additive, multiplicative, log-additive")
	root.Flags().StringSliceVar(&opts.methods, "method", nil, "per-period trend method: kernel name or detrend/spline/polynomial/hp")
	root.Flags().Float64SliceVar(&opts.args, "arg", nil, "per-period numeric method argument")
	root.Flags().BoolVar(&opts.dump, "dump", false, "write all components as CSV to stdout")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	_ = root.MarkFlagRequired("input")
	_ = root.MarkFlagRequired("periods")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(opts options) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	csvOpts := timeseries.DefaultCSVOptions()
	csvOpts.ValueColumn = opts.valueColumn
	csvOpts.DateColumn = opts.dateColumn
	csvOpts.DateFormat = opts.dateFormat

	series, err := timeseries.LoadCSV(opts.input, csvOpts)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.input, err)
	}
	log.Debug().Int("observations", series.Len()).Int("valid", series.Valid()).
		Str("file", opts.input).Msg("series loaded")

	var methodArgs []any
	for _, a := range opts.args {
		methodArgs = append(methodArgs, a)
	}

	result, err := decompose.Decompose(series.Values, opts.periods, &decompose.Options{
		Modes:       opts.modes,
		Methods:     opts.methods,
		MethodArgs:  methodArgs,
		Dates:       series.DateNumbers(),
		TrendFilter: trendfilter.Filter{},
	})
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		log.Warn().Msg(w)
	}

	printSummary(result)
	if opts.dump {
		dumpCSV(result)
	}
	return nil
}

func printSummary(result *decompose.Result) {
	fmt.Printf("%-10s %-15s %-12s %-10s %12s %12s\n",
		"period", "mode", "method", "arg", "sf range", "ir stddev")
	comps := result.Components
	if result.Aggregate != nil {
		comps = append(comps, *result.Aggregate)
	}
	for _, c := range comps {
		name := fmt.Sprintf("%g", c.Period)
		if c.Method == "aggregate" {
			name = "combined"
		}
		fmt.Printf("%-10s %-15s %-12s %-10s %12.5f %12.5f\n",
			name, c.Mode, c.Method, formatArg(c.MethodArg), rangeOf(c.SF), stddev(c.IR))
	}
}

func formatArg(arg any) string {
	if arg == nil {
		return "-"
	}
	return strings.TrimSpace(fmt.Sprintf("%.4g", arg))
}

func dumpCSV(result *decompose.Result) {
	var header []string
	header = append(header, "original")
	for _, c := range result.Components {
		p := fmt.Sprintf("%g", c.Period)
		header = append(header, "trend_"+p, "sa_"+p, "sf_"+p, "ir_"+p)
	}
	fmt.Println(strings.Join(header, ","))

	for i := range result.Original {
		row := []string{cell(result.Original[i])}
		for _, c := range result.Components {
			row = append(row, cell(c.Trend[i]), cell(c.SA[i]), cell(c.SF[i]), cell(c.IR[i]))
		}
		fmt.Println(strings.Join(row, ","))
	}
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.6f", v)
}

func rangeOf(vals []float64) float64 {
	lo, hi := math.NaN(), math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(lo) || v < lo {
			lo = v
		}
		if math.IsNaN(hi) || v > hi {
			hi = v
		}
	}
	return hi - lo
}

func stddev(vals []float64) float64 {
	sum, count := 0.0, 0
	for _, v := range vals {
		if !math.IsNaN(v) {
			sum += v
			count++
		}
	}
	if count < 2 {
		return math.NaN()
	}
	mean := sum / float64(count)
	sq := 0.0
	for _, v := range vals {
		if !math.IsNaN(v) {
			sq += (v - mean) * (v - mean)
		}
	}
	return math.Sqrt(sq / float64(count-1))
}
