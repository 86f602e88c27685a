// Package aggregate derives the summary tables behind the charts: per-group
// averages and symmetric pairwise aggregates over a categorical domain.
//
// Every function here is a pure transform over immutable rows. Accumulators
// live inside a single call, so callers may run transforms in parallel.
package aggregate

import (
	"math"

	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
	"go.uber.org/multierr"
)

// Options controls numeric coercion for the transforms.
type Options struct {
	// Strict reports missing or non-numeric fields as MalformedValueError
	// instead of folding them into zero.
	Strict bool
	// Number is the numeric format of raw values.
	Number dataset.NumberFormat
}

// DefaultOptions returns the lenient mode: bad values coerce to zero.
func DefaultOptions() Options {
	return Options{Number: dataset.DefaultNumberFormat()}
}

// Aggregator runs the transforms with a fixed set of Options.
type Aggregator struct {
	opt Options
}

// New returns an Aggregator using opt.
func New(opt Options) *Aggregator {
	return &Aggregator{opt: opt}
}

// Options returns the options the aggregator was built with.
func (a *Aggregator) Options() Options { return a.opt }

// Round2 rounds x to two decimals, halves rounding up toward +Inf.
func Round2(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}

// mean finalizes a running sum. count must be positive.
func mean(sum float64, count int) float64 {
	return Round2(sum / float64(count))
}

// fieldReader coerces row fields and, in strict mode, records every field
// that the lenient mode would have folded into zero.
type fieldReader struct {
	opt  Options
	errs error
}

func (r *fieldReader) number(idx int, row dataset.Row, col string) float64 {
	raw, ok := row.Get(col)
	x, parsed := r.opt.Number.Parse(raw)
	if r.opt.Strict && (!ok || !parsed) {
		r.errs = multierr.Append(r.errs, &MalformedValueError{Row: idx, Column: col, Value: raw, Missing: !ok})
	}
	return x
}

// Project coerces cols of every row into one slice of values per row, in
// cols order. Lenient mode folds bad values into zero like the other
// transforms.
func (a *Aggregator) Project(rows []dataset.Row, cols []string) ([][]float64, error) {
	fr := &fieldReader{opt: a.opt}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		vals := make([]float64, len(cols))
		for j, col := range cols {
			vals[j] = fr.number(i, row, col)
		}
		out[i] = vals
	}
	if fr.errs != nil {
		return nil, fr.errs
	}
	return out, nil
}
