package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/charts"
)

var (
	pairType1    string
	pairType2    string
	pairQuantity []string
	pairDomain   []string
	pairNonEmpty bool
	pairFormat   string
	pairOutput   string
)

// pairsResult is the structured form of the pairs command.
type pairsResult struct {
	TypeColumn1 string                 `json:"type_column_1" yaml:"type_column_1"`
	TypeColumn2 string                 `json:"type_column_2" yaml:"type_column_2"`
	Quantity    []string               `json:"quantity" yaml:"quantity"`
	Domain      []string               `json:"domain" yaml:"domain"`
	Cells       []aggregate.PairResult `json:"cells" yaml:"cells"`
}

var pairsCmd = &cobra.Command{
	Use:   "pairs <file>",
	Short: "Aggregate a quantity over unordered category pairs (heat map data)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := pickFormat(pairFormat, false)
		if err != nil {
			return err
		}
		ds, agg, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		heat := cfg.Charts.Heat
		if pairType1 != "" {
			heat.TypeColumn1 = pairType1
		}
		if pairType2 != "" {
			heat.TypeColumn2 = pairType2
		}
		if len(pairQuantity) > 0 {
			heat.Quantity = pairQuantity
		}
		if cmd.Flags().Changed("domain") {
			heat.Domain = pairDomain
		}
		heat.TypeColumn1 = resolveColumn(ds, heat.TypeColumn1)
		heat.TypeColumn2 = resolveColumn(ds, heat.TypeColumn2)
		heat.Quantity = resolveColumns(ds, heat.Quantity)

		domain := heat.Domain
		if len(domain) == 0 {
			domain = charts.TypeDomain(ds.Rows, heat.TypeColumn1, heat.TypeColumn2)
		}
		debugf("pairing %q x %q over %d categories", heat.TypeColumn1, heat.TypeColumn2, len(domain))

		cells, err := agg.AggregatePairs(domain, ds.Rows, heat.TypeColumn1, heat.TypeColumn2, heat.Quantity)
		if err != nil {
			return strictError(err)
		}
		if pairNonEmpty {
			kept := cells[:0]
			for _, c := range cells {
				if c.Count > 0 {
					kept = append(kept, c)
				}
			}
			cells = kept
		}
		res := pairsResult{
			TypeColumn1: heat.TypeColumn1,
			TypeColumn2: heat.TypeColumn2,
			Quantity:    heat.Quantity,
			Domain:      domain,
			Cells:       cells,
		}
		if res.Cells == nil {
			res.Cells = []aggregate.PairResult{}
		}
		out, err := encode(res, format, func() string { return pairsMarkdown(ds.Name, res, heat.EmptyLabel) })
		if err != nil {
			return err
		}
		return writeResult(pairOutput, out, "pair aggregates")
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
	pairsCmd.Flags().StringVar(&pairType1, "type1", "", "first category column (default: charts.heat.type_column_1)")
	pairsCmd.Flags().StringVar(&pairType2, "type2", "", "second category column (default: charts.heat.type_column_2)")
	pairsCmd.Flags().StringSliceVar(&pairQuantity, "quantity", nil, "comma-separated columns summed per row (default: charts.heat.quantity)")
	pairsCmd.Flags().StringSliceVar(&pairDomain, "domain", nil, "explicit category list (default: distinct values of both columns, sorted)")
	pairsCmd.Flags().BoolVar(&pairNonEmpty, "non-empty", false, "only list pairs with at least one row")
	pairsCmd.Flags().StringVar(&pairFormat, "format", "", "output format: md|json|yaml (default: output_format)")
	pairsCmd.Flags().StringVarP(&pairOutput, "output", "o", "", "optional path to write the result")
}

func pairsMarkdown(name string, res pairsResult, emptyLabel string) string {
	label := func(c string) string {
		if c == "" && emptyLabel != "" {
			return emptyLabel
		}
		return c
	}
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", name))
	b.WriteString(fmt.Sprintf("\n[PAIRS] %s x %s, sum of %s\n", res.TypeColumn1, res.TypeColumn2, strings.Join(res.Quantity, " + ")))
	b.WriteString(fmt.Sprintf("Categories: %d\n", len(res.Domain)))
	if len(res.Cells) == 0 {
		b.WriteString("(no pairs)\n")
		return b.String()
	}
	rows := make([][]string, 0, len(res.Cells))
	for _, c := range res.Cells {
		rows = append(rows, []string{
			label(c.Category1), label(c.Category2),
			fmt.Sprintf("%d", c.Count), formatNum(c.Total), formatNum(c.Average),
		})
	}
	markdownTable(&b, []string{"Category 1", "Category 2", "n", "total", "average"}, rows)
	return b.String()
}
