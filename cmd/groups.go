package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
)

var (
	grpColumns []string
	grpBy      string
	grpFormat  string
	grpOutput  string
)

var groupsCmd = &cobra.Command{
	Use:   "groups <file>",
	Short: "Average numeric columns per group (star plot data)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := pickFormat(grpFormat, false)
		if err != nil {
			return err
		}
		ds, agg, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		cols := grpColumns
		if len(cols) == 0 {
			cols = cfg.Charts.Star.Features
		}
		by := grpBy
		if by == "" {
			by = cfg.Charts.Star.GroupColumn
		}
		if by == "" {
			return fmt.Errorf("no group column: pass --by or set charts.star.group_column")
		}
		cols = resolveColumns(ds, cols)
		by = resolveColumn(ds, by)
		debugf("averaging %v by %q", cols, by)

		groups, err := agg.AverageByGroup(ds.Rows, cols, by)
		if err != nil {
			return strictError(err)
		}
		if groups == nil {
			groups = []aggregate.GroupResult{}
		}
		out, err := encode(groups, format, func() string { return groupsMarkdown(ds.Name, by, cols, groups) })
		if err != nil {
			return err
		}
		return writeResult(grpOutput, out, "group averages")
	},
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().StringSliceVar(&grpColumns, "columns", nil, "comma-separated columns to average (default: charts.star.features)")
	groupsCmd.Flags().StringVar(&grpBy, "by", "", "group column (default: charts.star.group_column)")
	groupsCmd.Flags().StringVar(&grpFormat, "format", "", "output format: md|json|yaml (default: output_format)")
	groupsCmd.Flags().StringVarP(&grpOutput, "output", "o", "", "optional path to write the result")
}

func groupsMarkdown(name, by string, cols []string, groups []aggregate.GroupResult) string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	b.WriteString(fmt.Sprintf("File: %s\n", name))
	b.WriteString(fmt.Sprintf("\n[GROUPS] averages by %s\n", by))
	if len(groups) == 0 {
		b.WriteString("(no rows)\n")
		return b.String()
	}
	header := append([]string{by, "n"}, cols...)
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		r := []string{g.Label, fmt.Sprintf("%d", g.Count)}
		for _, v := range g.Values() {
			r = append(r, formatNum(v))
		}
		rows = append(rows, r)
	}
	markdownTable(&b, header, rows)
	return b.String()
}
