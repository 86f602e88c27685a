package aggregate

import (
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// GroupResult holds the averages of one group.
type GroupResult struct {
	// Key is the numeric value of the grouping column shared by the group.
	Key float64 `json:"key" yaml:"key"`
	// Label is the first raw grouping value seen for Key.
	Label string `json:"label" yaml:"label"`
	// Count is the number of rows in the group.
	Count int `json:"count" yaml:"count"`
	// Columns lists the averaged columns in caller order.
	Columns  []string           `json:"columns" yaml:"columns"`
	Averages map[string]float64 `json:"averages" yaml:"averages"`
}

// Average returns the rounded mean of col, or 0 if col was not averaged.
func (g GroupResult) Average(col string) float64 {
	return g.Averages[col]
}

// Values returns the averages in Columns order.
func (g GroupResult) Values() []float64 {
	out := make([]float64, len(g.Columns))
	for i, c := range g.Columns {
		out[i] = g.Averages[c]
	}
	return out
}

type groupAcc struct {
	key   float64
	label string
	count int
	sums  map[string]float64
}

// AverageByGroup groups rows by the numeric value of groupCol and averages
// each of the averaged columns per group, in lenient mode. Groups come out
// in first-seen order.
func AverageByGroup(rows []dataset.Row, averaged []string, groupCol string) []GroupResult {
	out, _ := New(DefaultOptions()).AverageByGroup(rows, averaged, groupCol)
	return out
}

// AverageByGroup is the option-aware form of the package-level function. In
// strict mode a non-numeric group key or averaged value aborts the call with
// every offending field reported.
func (a *Aggregator) AverageByGroup(rows []dataset.Row, averaged []string, groupCol string) ([]GroupResult, error) {
	fr := &fieldReader{opt: a.opt}
	index := make(map[float64]int)
	var accs []*groupAcc

	for i, row := range rows {
		key := fr.number(i, row, groupCol)
		pos, ok := index[key]
		if !ok {
			label, _ := row.Get(groupCol)
			acc := &groupAcc{key: key, label: label, sums: make(map[string]float64, len(averaged))}
			for _, col := range averaged {
				acc.sums[col] = 0
			}
			pos = len(accs)
			index[key] = pos
			accs = append(accs, acc)
		}
		acc := accs[pos]
		for _, col := range averaged {
			acc.sums[col] += fr.number(i, row, col)
		}
		acc.count++
	}
	if fr.errs != nil {
		return nil, fr.errs
	}

	out := make([]GroupResult, 0, len(accs))
	for _, acc := range accs {
		gr := GroupResult{
			Key:      acc.key,
			Label:    acc.label,
			Count:    acc.count,
			Columns:  append([]string(nil), averaged...),
			Averages: make(map[string]float64, len(averaged)),
		}
		for _, col := range averaged {
			gr.Averages[col] = mean(acc.sums[col], acc.count)
		}
		out = append(out, gr)
	}
	return out, nil
}
