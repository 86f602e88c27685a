package charts

import (
	"math"
	"sort"
	"strconv"

	"github.com/aclements/go-moremath/stats"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// StarOptions selects the columns of the star plot.
type StarOptions struct {
	Features    []string `mapstructure:"features" yaml:"features"`
	GroupColumn string   `mapstructure:"group_column" yaml:"group_column"`
	// Labels name integral group keys by index; other keys keep their raw label.
	Labels []string `mapstructure:"labels" yaml:"labels"`
	// Colors are assigned to series in key order and cycle when exhausted.
	Colors []string `mapstructure:"colors" yaml:"colors"`
	// ScaleMax is the value drawn at the rim of the plot.
	ScaleMax float64 `mapstructure:"scale_max" yaml:"scale_max"`
}

// DefaultStarOptions returns the base-stat radar grouped by evolution stage.
func DefaultStarOptions() StarOptions {
	return StarOptions{
		Features:    []string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"},
		GroupColumn: "Evolution",
		Labels:      []string{"Does Not Evolve", "1st Evolution", "2nd Evolution", "3rd Evolution"},
		Colors:      []string{"darkgreen", "deeppink", "darkorange", "navy"},
		ScaleMax:    100,
	}
}

// StarAxis is one spoke of the radar.
type StarAxis struct {
	Feature string  `json:"feature" yaml:"feature"`
	Angle   float64 `json:"angle" yaml:"angle"`
}

// StarSeries is the averaged profile of one group.
type StarSeries struct {
	Key    float64   `json:"key" yaml:"key"`
	Label  string    `json:"label" yaml:"label"`
	Color  string    `json:"color" yaml:"color"`
	Count  int       `json:"count" yaml:"count"`
	Values []float64 `json:"values" yaml:"values"`
	// Mean is the plain mean of Values.
	Mean float64 `json:"mean" yaml:"mean"`
}

// Point is an offset from the plot center in SVG orientation (y grows down).
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// StarPlot is the view model of the radar chart.
type StarPlot struct {
	GroupColumn string       `json:"group_column" yaml:"group_column"`
	Features    []string     `json:"features" yaml:"features"`
	Axes        []StarAxis   `json:"axes" yaml:"axes"`
	Ticks       []float64    `json:"ticks" yaml:"ticks"`
	ScaleMax    float64      `json:"scale_max" yaml:"scale_max"`
	Series      []StarSeries `json:"series" yaml:"series"`
}

// BuildStarPlot averages the feature columns per group and orders the
// groups by key.
func BuildStarPlot(rows []dataset.Row, opt StarOptions, agg *aggregate.Aggregator) (*StarPlot, error) {
	groups, err := agg.AverageByGroup(rows, opt.Features, opt.GroupColumn)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })

	scaleMax := opt.ScaleMax
	if scaleMax <= 0 {
		scaleMax = 100
	}
	p := &StarPlot{
		GroupColumn: opt.GroupColumn,
		Features:    append([]string(nil), opt.Features...),
		ScaleMax:    scaleMax,
	}
	n := len(opt.Features)
	for i, f := range opt.Features {
		p.Axes = append(p.Axes, StarAxis{Feature: f, Angle: math.Pi/2 + 2*math.Pi*float64(i)/float64(n)})
	}
	for t := 1; t <= 5; t++ {
		p.Ticks = append(p.Ticks, scaleMax*float64(t)/5)
	}
	for i, g := range groups {
		s := StarSeries{
			Key:    g.Key,
			Label:  seriesLabel(g, opt.Labels),
			Count:  g.Count,
			Values: g.Values(),
		}
		if len(opt.Colors) > 0 {
			s.Color = opt.Colors[i%len(opt.Colors)]
		}
		if len(s.Values) > 0 {
			s.Mean = aggregate.Round2(stats.Mean(s.Values))
		}
		p.Series = append(p.Series, s)
	}
	return p, nil
}

func seriesLabel(g aggregate.GroupResult, labels []string) string {
	if g.Key == math.Trunc(g.Key) && g.Key >= 0 && g.Key < float64(len(labels)) {
		return labels[int(g.Key)]
	}
	if g.Label != "" {
		return g.Label
	}
	return strconv.FormatFloat(g.Key, 'g', -1, 64)
}

// Point maps value on the spoke at angle to an offset from the center, with
// the radial scale [0, ScaleMax] -> [0, radius]. Values past ScaleMax are
// not clamped.
func (p *StarPlot) Point(angle, value, radius float64) Point {
	r := value / p.ScaleMax * radius
	return Point{X: math.Cos(angle) * r, Y: -math.Sin(angle) * r}
}

// Polygon returns the vertices of series s, one per axis.
func (p *StarPlot) Polygon(s StarSeries, radius float64) []Point {
	pts := make([]Point, len(p.Axes))
	for i, ax := range p.Axes {
		var v float64
		if i < len(s.Values) {
			v = s.Values[i]
		}
		pts[i] = p.Point(ax.Angle, v, radius)
	}
	return pts
}
