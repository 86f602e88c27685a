package charts

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

func sampleDataset() *dataset.Dataset {
	cols := []string{"Name", "Type 1", "Type 2", "HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed", "Evolution"}
	raw := [][]string{
		{"Bulbasaur", "Grass", "Poison", "45", "49", "49", "65", "65", "45", "1"},
		{"Ivysaur", "Grass", "Poison", "60", "62", "63", "80", "80", "60", "2"},
		{"Charmander", "Fire", "", "39", "52", "43", "60", "50", "65", "1"},
		{"Charizard", "Fire", "Flying", "78", "84", "78", "109", "85", "100", "3"},
		{"Pidgey", "Normal", "Flying", "40", "45", "40", "35", "35", "56", "1"},
		{"Tauros", "Normal", "", "75", "100", "95", "40", "70", "110", "0"},
		{"Zubat", "Poison", "Flying", "40", "45", "35", "30", "40", "55", "1"},
	}
	ds := &dataset.Dataset{Name: "mini.csv", Columns: cols}
	for _, r := range raw {
		row := dataset.Row{}
		for i, c := range cols {
			row[c] = r[i]
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func TestBuildStarPlot(t *testing.T) {
	ds := sampleDataset()
	p, err := BuildStarPlot(ds.Rows, DefaultStarOptions(), aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)

	require.Len(t, p.Axes, 6)
	require.InDelta(t, math.Pi/2, p.Axes[0].Angle, 1e-12)
	require.Equal(t, []float64{20, 40, 60, 80, 100}, p.Ticks)

	require.Len(t, p.Series, 4)
	var keys []float64
	var labels, colors []string
	for _, s := range p.Series {
		keys = append(keys, s.Key)
		labels = append(labels, s.Label)
		colors = append(colors, s.Color)
	}
	require.Equal(t, []float64{0, 1, 2, 3}, keys)
	require.Equal(t, []string{"Does Not Evolve", "1st Evolution", "2nd Evolution", "3rd Evolution"}, labels)
	require.Equal(t, []string{"darkgreen", "deeppink", "darkorange", "navy"}, colors)

	first := p.Series[1]
	require.Equal(t, 4, first.Count)
	// HP of Bulbasaur, Charmander, Pidgey, Zubat
	require.Equal(t, 41.0, first.Values[0])
	// Sp. Atk (65+60+35+30)/4
	require.Equal(t, 47.5, first.Values[3])
}

func TestStarPlotGeometry(t *testing.T) {
	p := &StarPlot{ScaleMax: 100}
	pt := p.Point(math.Pi/2, 50, 200)
	require.InDelta(t, 0, pt.X, 1e-9)
	require.InDelta(t, -100, pt.Y, 1e-9)

	p.Axes = []StarAxis{{Feature: "HP", Angle: 0}, {Feature: "Speed", Angle: math.Pi}}
	poly := p.Polygon(StarSeries{Values: []float64{100}}, 10)
	require.Len(t, poly, 2)
	require.InDelta(t, 10, poly[0].X, 1e-9)
	require.InDelta(t, 0, poly[1].X, 1e-9)
}

func TestStarLabelFallback(t *testing.T) {
	rows := []dataset.Row{{"g": "7", "x": "1"}, {"g": "1.5", "x": "2"}}
	opt := StarOptions{Features: []string{"x"}, GroupColumn: "g", Labels: []string{"zero", "one"}, Colors: []string{"red"}}
	p, err := BuildStarPlot(rows, opt, aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)
	require.Equal(t, "1.5", p.Series[0].Label)
	require.Equal(t, "7", p.Series[1].Label)
	require.Equal(t, "red", p.Series[1].Color)
}

func TestBuildHeatMap(t *testing.T) {
	ds := sampleDataset()
	h, err := BuildHeatMap(ds.Rows, DefaultHeatOptions(), aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)

	require.Equal(t, []string{"", "Fire", "Flying", "Grass", "Normal", "Poison"}, h.Domain)
	require.Len(t, h.Cells, 36)
	require.Equal(t, "None", h.Label(""))
	require.Equal(t, "Fire", h.Label("Fire"))

	gp, ok := h.Cell("Grass", "Poison")
	require.True(t, ok)
	require.Equal(t, 2, gp.Count)
	require.Equal(t, 290.0, gp.Total)
	require.Equal(t, 145.0, gp.Average)
	pg, _ := h.Cell("Poison", "Grass")
	require.Equal(t, gp.Total, pg.Total)
	require.Equal(t, gp.Average, pg.Average)

	ff, _ := h.Cell("Fire", "Flying")
	require.Equal(t, 194.0, ff.Average)
	require.Equal(t, 194.0, h.ColorMax)

	empty, _ := h.Cell("Grass", "Grass")
	require.Zero(t, empty.Count)
	require.Zero(t, empty.Average)
}

func TestColorDomainMax(t *testing.T) {
	require.Zero(t, ColorDomainMax(nil))
	cells := []aggregate.PairResult{
		{Category1: "A", Category2: "A"},
		{Category1: "A", Category2: "B", Count: 3, Average: -2.5},
	}
	require.Equal(t, -2.0, ColorDomainMax(cells))
	cells = append(cells, aggregate.PairResult{Count: 1, Average: 101.01})
	require.Equal(t, 102.0, ColorDomainMax(cells))
}

func TestHeatColor(t *testing.T) {
	h := &HeatMap{ColorMax: 200}
	require.Equal(t, "#000000", Hex(h.Color(0)))
	require.Equal(t, "#ffa500", Hex(h.Color(200)))
	require.Equal(t, "#ffa500", Hex(h.Color(500)))
	require.Equal(t, "#805300", Hex(h.Color(100)))
	require.Equal(t, 0, h.Bucket(0, 5))
	require.Equal(t, 2, h.Bucket(100, 5))
	require.Equal(t, 4, h.Bucket(200, 5))

	flat := &HeatMap{}
	require.Equal(t, "#000000", Hex(flat.Color(10)))
}

func TestBuildParallel(t *testing.T) {
	ds := sampleDataset()
	p, err := BuildParallel(ds.Rows, DefaultParallelOptions(), aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)
	require.Len(t, p.Lines, len(ds.Rows))
	require.Equal(t, []ParallelAxis{
		{Name: "HP", Min: 39, Max: 78},
		{Name: "Attack", Min: 45, Max: 100},
		{Name: "Speed", Min: 45, Max: 110},
		{Name: "Defense", Min: 35, Max: 95},
	}, p.Axes)
	require.Equal(t, []float64{45, 49, 45, 49}, p.Lines[0])
	require.InDelta(t, 0.5, p.Axes[0].Normalize(58.5), 1e-9)
	require.Equal(t, 0.5, ParallelAxis{Min: 3, Max: 3}.Normalize(3))

	empty, err := BuildParallel(nil, DefaultParallelOptions(), aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)
	require.Equal(t, ParallelAxis{Name: "HP"}, empty.Axes[0])
}

func TestBuildReportMarkdownAndHTML(t *testing.T) {
	ds := sampleDataset()
	opt := DefaultOptions()
	opt.Parallel.Dimensions = append(opt.Parallel.Dimensions, "Legendary")
	rep, err := Build(ds, opt, aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)
	require.Equal(t, []string{`column "Legendary" not found; its values count as 0`}, rep.Warnings)

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET]",
		"File: mini.csv",
		"Rows: 7",
		"[STAR PLOT] averages by Evolution",
		"| 1st Evolution | 4 | 41 |",
		"[HEAT MAP] Type 1 x Type 2, average of Sp. Atk + Sp. Def",
		"color scale 0..194",
		"- Fire / Flying: avg 194 (n=1)",
		"- None / Fire: avg 110 (n=1)",
		"[PARALLEL COORDINATES]",
		"- HP: 39 .. 78",
		"[NOTES]",
	} {
		require.Contains(t, md, want)
	}

	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, rep))
	html := buf.String()
	require.Contains(t, html, "<title>mini.csv</title>")
	require.Contains(t, html, "<td>3rd Evolution</td>")
	require.Contains(t, html, `<td class="h4">194</td>`)
	require.Contains(t, html, `<td class="empty"></td>`)
	require.True(t, strings.Count(html, "<tr>") > 10)
}

func TestReportKeepsTwoDecimals(t *testing.T) {
	ds := &dataset.Dataset{
		Name:    "one.csv",
		Columns: []string{"HP", "Evolution"},
		Rows:    []dataset.Row{{"HP": "105.33", "Evolution": "0"}},
	}
	opt := DefaultOptions()
	opt.Star.Features = []string{"HP"}
	rep, err := Build(ds, opt, aggregate.New(aggregate.DefaultOptions()))
	require.NoError(t, err)
	require.Contains(t, rep.Markdown(), "| Does Not Evolve | 1 | 105.33 |")
	require.Contains(t, rep.Markdown(), "- HP: 105.33 .. 105.33")

	r, err := NewHTMLRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, rep))
	require.Contains(t, buf.String(), "<td>105.33</td>")
}

func TestBuildReportStrict(t *testing.T) {
	ds := sampleDataset()
	ds.Rows[2]["Sp. Def"] = "?"
	_, err := Build(ds, DefaultOptions(), aggregate.New(aggregate.Options{Strict: true}))
	require.Error(t, err)
	bad := aggregate.MalformedValues(err)
	require.Len(t, bad, 1)
	require.Equal(t, 2, bad[0].Row)
	require.Equal(t, "Sp. Def", bad[0].Column)
}
