package charts

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

// HeatOptions selects the type columns and the summed quantity of the heat map.
type HeatOptions struct {
	TypeColumn1 string   `mapstructure:"type_column_1" yaml:"type_column_1"`
	TypeColumn2 string   `mapstructure:"type_column_2" yaml:"type_column_2"`
	Quantity    []string `mapstructure:"quantity" yaml:"quantity"`
	// EmptyLabel names the empty category on the axes.
	EmptyLabel string `mapstructure:"empty_label" yaml:"empty_label"`
	// Domain overrides the categories taken from the data.
	Domain []string `mapstructure:"domain" yaml:"domain"`
}

// DefaultHeatOptions pairs the two type columns on special attack + defense.
func DefaultHeatOptions() HeatOptions {
	return HeatOptions{
		TypeColumn1: "Type 1",
		TypeColumn2: "Type 2",
		Quantity:    []string{"Sp. Atk", "Sp. Def"},
		EmptyLabel:  "None",
	}
}

var (
	heatLow  = color.RGBA{R: 0, G: 0, B: 0, A: 0xff}
	heatHigh = color.RGBA{R: 0xff, G: 0xa5, B: 0, A: 0xff}
)

// HeatMap is the view model of the type-pair heat map.
type HeatMap struct {
	TypeColumn1 string                 `json:"type_column_1" yaml:"type_column_1"`
	TypeColumn2 string                 `json:"type_column_2" yaml:"type_column_2"`
	Quantity    []string               `json:"quantity" yaml:"quantity"`
	Domain      []string               `json:"domain" yaml:"domain"`
	Cells       []aggregate.PairResult `json:"cells" yaml:"cells"`
	// ColorMax is the top of the color scale; the bottom is 0.
	ColorMax   float64 `json:"color_max" yaml:"color_max"`
	EmptyLabel string  `json:"empty_label" yaml:"empty_label"`
}

// TypeDomain returns the distinct values of both type columns, sorted.
func TypeDomain(rows []dataset.Row, typeCol1, typeCol2 string) []string {
	d := dataset.Distinct(rows, typeCol1, typeCol2)
	sort.Strings(d)
	return d
}

// BuildHeatMap aggregates the quantity over unordered type pairs.
func BuildHeatMap(rows []dataset.Row, opt HeatOptions, agg *aggregate.Aggregator) (*HeatMap, error) {
	domain := opt.Domain
	if len(domain) == 0 {
		domain = TypeDomain(rows, opt.TypeColumn1, opt.TypeColumn2)
	}
	cells, err := agg.AggregatePairs(domain, rows, opt.TypeColumn1, opt.TypeColumn2, opt.Quantity)
	if err != nil {
		return nil, err
	}
	h := &HeatMap{
		TypeColumn1: opt.TypeColumn1,
		TypeColumn2: opt.TypeColumn2,
		Quantity:    append([]string(nil), opt.Quantity...),
		Domain:      append([]string(nil), domain...),
		Cells:       cells,
		ColorMax:    ColorDomainMax(cells),
		EmptyLabel:  opt.EmptyLabel,
	}
	return h, nil
}

// ColorDomainMax is the largest average over non-empty cells rounded up to
// an integer, or 0 when every cell is empty.
func ColorDomainMax(cells []aggregate.PairResult) float64 {
	var (
		top   float64
		found bool
	)
	for _, c := range cells {
		if c.Count == 0 {
			continue
		}
		if !found || c.Average > top {
			top = c.Average
			found = true
		}
	}
	if !found {
		return 0
	}
	return math.Ceil(top)
}

// Label is the axis text for category c.
func (h *HeatMap) Label(c string) string {
	if c == "" && h.EmptyLabel != "" {
		return h.EmptyLabel
	}
	return c
}

// Cell returns the cell at (c1, c2).
func (h *HeatMap) Cell(c1, c2 string) (aggregate.PairResult, bool) {
	return aggregate.Lookup(h.Cells, c1, c2)
}

// Intensity places v on the color scale, clamped to [0, 1].
func (h *HeatMap) Intensity(v float64) float64 {
	if h.ColorMax <= 0 {
		return 0
	}
	t := v / h.ColorMax
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	}
	return t
}

// Color interpolates linearly in RGB between black and orange.
func (h *HeatMap) Color(v float64) color.RGBA {
	t := h.Intensity(v)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{R: lerp(heatLow.R, heatHigh.R), G: lerp(heatLow.G, heatHigh.G), B: lerp(heatLow.B, heatHigh.B), A: 0xff}
}

// Hex renders c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Bucket splits the color scale into n equal bands and returns the band of v.
func (h *HeatMap) Bucket(v float64, n int) int {
	if n <= 1 {
		return 0
	}
	b := int(h.Intensity(v) * float64(n))
	if b >= n {
		b = n - 1
	}
	return b
}
