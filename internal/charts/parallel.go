package charts

import (
	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// ParallelOptions lists the axes of the parallel-coordinates plot, left to right.
type ParallelOptions struct {
	Dimensions []string `mapstructure:"dimensions" yaml:"dimensions"`
}

// DefaultParallelOptions returns the four base-stat axes.
func DefaultParallelOptions() ParallelOptions {
	return ParallelOptions{Dimensions: []string{"HP", "Attack", "Speed", "Defense"}}
}

// ParallelAxis is one vertical axis and its value extent.
type ParallelAxis struct {
	Name string  `json:"name" yaml:"name"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
}

// Normalize maps v into [0, 1] over the axis extent. A flat axis maps to 0.5.
func (a ParallelAxis) Normalize(v float64) float64 {
	if a.Max == a.Min {
		return 0.5
	}
	return (v - a.Min) / (a.Max - a.Min)
}

// ParallelPlot holds one polyline per row across the axes.
type ParallelPlot struct {
	Axes  []ParallelAxis `json:"axes" yaml:"axes"`
	Lines [][]float64    `json:"lines" yaml:"lines"`
}

// BuildParallel projects every row onto the dimensions and bounds each axis.
func BuildParallel(rows []dataset.Row, opt ParallelOptions, agg *aggregate.Aggregator) (*ParallelPlot, error) {
	lines, err := agg.Project(rows, opt.Dimensions)
	if err != nil {
		return nil, err
	}
	p := &ParallelPlot{Lines: lines}
	col := make([]float64, len(lines))
	for j, name := range opt.Dimensions {
		ax := ParallelAxis{Name: name}
		if len(lines) > 0 {
			for i, l := range lines {
				col[i] = l[j]
			}
			ax.Min, ax.Max = stats.Bounds(col)
		}
		p.Axes = append(p.Axes, ax)
	}
	return p, nil
}
