package charts

import (
	"embed"
	"fmt"
	"io"

	"github.com/google/safehtml/template"
)

//go:embed templates/*
var templateFS embed.FS

// heatBuckets is the number of color bands defined in report.html.
const heatBuckets = 5

// HTMLRenderer renders reports through the embedded templates.
type HTMLRenderer struct {
	report *template.Template
}

// NewHTMLRenderer parses the embedded report template.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	trustedFS := template.TrustedFSFromEmbed(templateFS)
	t, err := template.New("report.html").ParseFS(trustedFS, "templates/report.html")
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &HTMLRenderer{report: t}, nil
}

// Render writes r as a standalone HTML page.
func (h *HTMLRenderer) Render(w io.Writer, r *Report) error {
	return h.report.Execute(w, newHTMLView(r))
}

type htmlView struct {
	Name     string
	Rows     int
	Star     *htmlStar
	Heat     *htmlHeat
	Parallel *htmlParallel
	Warnings []string
}

type htmlStar struct {
	GroupColumn string
	Features    []string
	Series      []htmlSeries
}

type htmlSeries struct {
	Label  string
	Color  string
	Count  int
	Values []string
	Mean   string
}

type htmlHeat struct {
	Title    string
	Columns  []string
	Rows     []htmlHeatRow
	ColorMax string
}

type htmlHeatRow struct {
	Label string
	Cells []htmlHeatCell
}

type htmlHeatCell struct {
	Text   string
	Bucket int
	Empty  bool
}

type htmlParallel struct {
	Axes  []htmlAxis
	Lines int
}

type htmlAxis struct {
	Name, Min, Max string
}

func newHTMLView(r *Report) htmlView {
	v := htmlView{Name: safeName(r.Name), Rows: r.Rows, Warnings: r.Warnings}
	if s := r.Star; s != nil {
		hs := &htmlStar{GroupColumn: s.GroupColumn, Features: s.Features}
		for _, ser := range s.Series {
			row := htmlSeries{Label: ser.Label, Color: ser.Color, Count: ser.Count, Mean: formatNum(ser.Mean)}
			for _, x := range ser.Values {
				row.Values = append(row.Values, formatNum(x))
			}
			hs.Series = append(hs.Series, row)
		}
		v.Star = hs
	}
	if h := r.Heat; h != nil {
		hh := &htmlHeat{
			Title:    fmt.Sprintf("%s x %s", h.TypeColumn1, h.TypeColumn2),
			ColorMax: formatNum(h.ColorMax),
		}
		for _, c := range h.Domain {
			hh.Columns = append(hh.Columns, h.Label(c))
		}
		// rows run top-down from the last category, as on the chart's y axis
		for i := len(h.Domain) - 1; i >= 0; i-- {
			c2 := h.Domain[i]
			row := htmlHeatRow{Label: h.Label(c2)}
			for _, c1 := range h.Domain {
				cell, _ := h.Cell(c1, c2)
				hc := htmlHeatCell{Bucket: h.Bucket(cell.Average, heatBuckets), Empty: cell.Count == 0}
				if !hc.Empty {
					hc.Text = formatNum(cell.Average)
				}
				row.Cells = append(row.Cells, hc)
			}
			hh.Rows = append(hh.Rows, row)
		}
		v.Heat = hh
	}
	if p := r.Parallel; p != nil {
		hp := &htmlParallel{Lines: len(p.Lines)}
		for _, ax := range p.Axes {
			hp.Axes = append(hp.Axes, htmlAxis{Name: ax.Name, Min: formatNum(ax.Min), Max: formatNum(ax.Max)})
		}
		v.Parallel = hp
	}
	return v
}
