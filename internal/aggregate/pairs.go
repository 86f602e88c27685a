package aggregate

import (
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// PairResult is one cell of the pairwise aggregation, addressed by an
// ordered pair of categories. Average is 0 when Count is 0; check Count to
// tell an empty cell from a real zero average.
type PairResult struct {
	Category1 string  `json:"category1" yaml:"category1"`
	Category2 string  `json:"category2" yaml:"category2"`
	Total     float64 `json:"total" yaml:"total"`
	Count     int     `json:"count" yaml:"count"`
	Average   float64 `json:"average" yaml:"average"`
}

// pairKey is the unordered form of a category pair: lo <= hi.
type pairKey struct {
	lo, hi string
}

func unordered(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// AggregatePairs builds the domain × domain cell set and, for every row,
// adds the sum of its quantity columns to each cell whose pair equals the
// row's (typeCol1, typeCol2) values in either order. Lenient mode.
func AggregatePairs(domain []string, rows []dataset.Row, typeCol1, typeCol2 string, quantityCols []string) []PairResult {
	out, _ := New(DefaultOptions()).AggregatePairs(domain, rows, typeCol1, typeCol2, quantityCols)
	return out
}

// AggregatePairs is the option-aware form of the package-level function.
// Strict mode only checks rows that land in at least one cell.
func (a *Aggregator) AggregatePairs(domain []string, rows []dataset.Row, typeCol1, typeCol2 string, quantityCols []string) ([]PairResult, error) {
	cells := make([]PairResult, 0, len(domain)*len(domain))
	index := make(map[pairKey][]int, len(domain)*len(domain))
	for _, c1 := range domain {
		for _, c2 := range domain {
			k := unordered(c1, c2)
			index[k] = append(index[k], len(cells))
			cells = append(cells, PairResult{Category1: c1, Category2: c2})
		}
	}

	fr := &fieldReader{opt: a.opt}
	for i, row := range rows {
		v1, _ := row.Get(typeCol1)
		v2, _ := row.Get(typeCol2)
		matched := index[unordered(v1, v2)]
		if len(matched) == 0 {
			continue
		}
		var qty float64
		for _, col := range quantityCols {
			qty += fr.number(i, row, col)
		}
		// (a,b) and (b,a) are separate cells; both take the same update.
		for _, idx := range matched {
			cells[idx].Total += qty
			cells[idx].Count++
		}
	}
	if fr.errs != nil {
		return nil, fr.errs
	}

	for i := range cells {
		if cells[i].Count > 0 {
			cells[i].Average = mean(cells[i].Total, cells[i].Count)
		}
	}
	return cells, nil
}

// Lookup returns the cell for the ordered pair (c1, c2).
func Lookup(cells []PairResult, c1, c2 string) (PairResult, bool) {
	for _, c := range cells {
		if c.Category1 == c1 && c.Category2 == c2 {
			return c, true
		}
	}
	return PairResult{}, false
}
