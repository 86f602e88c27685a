// Package charts turns a dataset into the view models of the three charts
// (star plot, heat map, parallel coordinates) and renders them as Markdown
// or HTML reports.
package charts

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// Options configures all three charts.
type Options struct {
	Star     StarOptions     `mapstructure:"star" yaml:"star"`
	Heat     HeatOptions     `mapstructure:"heat" yaml:"heat"`
	Parallel ParallelOptions `mapstructure:"parallel" yaml:"parallel"`
}

// DefaultOptions returns the chart layout of the creature dashboard.
func DefaultOptions() Options {
	return Options{
		Star:     DefaultStarOptions(),
		Heat:     DefaultHeatOptions(),
		Parallel: DefaultParallelOptions(),
	}
}

// Report bundles the view models derived from one dataset.
type Report struct {
	Name     string        `json:"name" yaml:"name"`
	Rows     int           `json:"rows" yaml:"rows"`
	Star     *StarPlot     `json:"star" yaml:"star"`
	Heat     *HeatMap      `json:"heat" yaml:"heat"`
	Parallel *ParallelPlot `json:"parallel" yaml:"parallel"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build derives every chart from ds. With a strict aggregator the first
// chart that meets a malformed value aborts the build.
func Build(ds *dataset.Dataset, opt Options, agg *aggregate.Aggregator) (*Report, error) {
	rep := &Report{Name: ds.Name, Rows: ds.Len()}
	rep.Warnings = missingColumns(ds, opt)

	var err error
	if rep.Star, err = BuildStarPlot(ds.Rows, opt.Star, agg); err != nil {
		return nil, fmt.Errorf("star plot: %w", err)
	}
	if rep.Heat, err = BuildHeatMap(ds.Rows, opt.Heat, agg); err != nil {
		return nil, fmt.Errorf("heat map: %w", err)
	}
	if rep.Parallel, err = BuildParallel(ds.Rows, opt.Parallel, agg); err != nil {
		return nil, fmt.Errorf("parallel coordinates: %w", err)
	}
	return rep, nil
}

func missingColumns(ds *dataset.Dataset, opt Options) []string {
	if len(ds.Columns) == 0 {
		return nil
	}
	var cols []string
	cols = append(cols, opt.Star.GroupColumn)
	cols = append(cols, opt.Star.Features...)
	cols = append(cols, opt.Heat.TypeColumn1, opt.Heat.TypeColumn2)
	cols = append(cols, opt.Heat.Quantity...)
	cols = append(cols, opt.Parallel.Dimensions...)
	seen := map[string]bool{}
	var out []string
	for _, c := range cols {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		if !ds.HasColumn(c) {
			out = append(out, fmt.Sprintf("column %q not found; its values count as 0", c))
		}
	}
	return out
}

// Markdown renders a compact text report of all three charts.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))

	if s := r.Star; s != nil {
		b.WriteString(fmt.Sprintf("\n[STAR PLOT] averages by %s\n", safeName(s.GroupColumn)))
		writeTableHeader(&b, append([]string{safeName(s.GroupColumn), "n"}, s.Features...))
		for _, ser := range s.Series {
			cells := []string{safeVal(ser.Label), fmt.Sprintf("%d", ser.Count)}
			for _, v := range ser.Values {
				cells = append(cells, formatNum(v))
			}
			writeTableRow(&b, cells)
		}
	}

	if h := r.Heat; h != nil {
		b.WriteString(fmt.Sprintf("\n[HEAT MAP] %s x %s, average of %s\n",
			safeName(h.TypeColumn1), safeName(h.TypeColumn2), strings.Join(h.Quantity, " + ")))
		b.WriteString(fmt.Sprintf("Categories: %d, color scale 0..%s\n", len(h.Domain), formatNum(h.ColorMax)))
		top := topPairs(h, 10)
		for _, c := range top {
			b.WriteString(fmt.Sprintf("- %s / %s: avg %s (n=%d)\n",
				safeVal(h.Label(c.Category1)), safeVal(h.Label(c.Category2)), formatNum(c.Average), c.Count))
		}
	}

	if p := r.Parallel; p != nil {
		b.WriteString("\n[PARALLEL COORDINATES]\n")
		for _, ax := range p.Axes {
			b.WriteString(fmt.Sprintf("- %s: %s .. %s\n", safeName(ax.Name), formatNum(ax.Min), formatNum(ax.Max)))
		}
		b.WriteString(fmt.Sprintf("Lines: %d\n", len(p.Lines)))
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// topPairs lists the non-empty unordered pairs by descending average; each
// pair appears once with Category1 <= Category2.
func topPairs(h *HeatMap, n int) []aggregate.PairResult {
	var out []aggregate.PairResult
	for _, c := range h.Cells {
		if c.Count == 0 || c.Category1 > c.Category2 {
			continue
		}
		out = append(out, c)
	}
	sortPairs(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortPairs(pairs []aggregate.PairResult) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Average == pairs[j].Average {
			return pairs[i].Category1+"/"+pairs[i].Category2 < pairs[j].Category1+"/"+pairs[j].Category2
		}
		return pairs[i].Average > pairs[j].Average
	})
}

func writeTableHeader(b *strings.Builder, cols []string) {
	writeTableRow(b, cols)
	sep := make([]string, len(cols))
	for i := range sep {
		sep[i] = "---"
	}
	writeTableRow(b, sep)
}

func writeTableRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
