package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/creaturestats-cli/internal/bundle"
	"github.com/KaramelBytes/creaturestats-cli/internal/charts"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

var (
	chFormat string
	chOutput string
	chBundle string
)

var chartsCmd = &cobra.Command{
	Use:   "charts <file>",
	Short: "Build the star plot, heat map and parallel-coordinates views of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		format, err := pickFormat(chFormat, true)
		if err != nil {
			return err
		}
		ds, agg, err := loadDataset(path)
		if err != nil {
			return err
		}
		opt := resolveChartOptions(cfg.Charts, ds)
		rep, err := charts.Build(ds, opt, agg)
		if err != nil {
			return strictError(err)
		}
		for _, w := range rep.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}

		explicit := cmd.Flags().Changed("output") || cmd.Flags().Changed("format")
		if bundleDir := pickBundleDir(chBundle, cfg.BundleDir, explicit); bundleDir != "" {
			return writeBundle(bundleDir, path, rep)
		}
		out, err := renderReport(rep, format)
		if err != nil {
			return err
		}
		return writeResult(chOutput, out, "charts")
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
	chartsCmd.Flags().StringVar(&chFormat, "format", "", "output format: md|json|yaml|html (default: output_format)")
	chartsCmd.Flags().StringVarP(&chOutput, "output", "o", "", "optional path to write the report")
	chartsCmd.Flags().StringVar(&chBundle, "bundle", "", "write every format plus a bundle.json manifest into this directory")
}

// pickBundleDir prefers --bundle. The configured bundle_dir applies only
// when no explicit --output or --format was given.
func pickBundleDir(flagDir, cfgDir string, explicitOutput bool) string {
	if flagDir != "" {
		return flagDir
	}
	if explicitOutput {
		if cfgDir != "" {
			debugf("ignoring bundle_dir %s: explicit output requested", cfgDir)
		}
		return ""
	}
	return cfgDir
}

// resolveChartOptions maps the configured column names onto the header so
// case differences do not zero out a chart.
func resolveChartOptions(opt charts.Options, ds *dataset.Dataset) charts.Options {
	one := func(c string) string {
		if actual, ok := ds.Column(c); ok {
			return actual
		}
		return c
	}
	many := func(cols []string) []string {
		out := make([]string, len(cols))
		for i, c := range cols {
			out[i] = one(c)
		}
		return out
	}
	opt.Star.GroupColumn = one(opt.Star.GroupColumn)
	opt.Star.Features = many(opt.Star.Features)
	opt.Heat.TypeColumn1 = one(opt.Heat.TypeColumn1)
	opt.Heat.TypeColumn2 = one(opt.Heat.TypeColumn2)
	opt.Heat.Quantity = many(opt.Heat.Quantity)
	opt.Parallel.Dimensions = many(opt.Parallel.Dimensions)
	return opt
}

func renderReport(rep *charts.Report, format outputFormat) ([]byte, error) {
	if format != formatHTML {
		return encode(rep, format, rep.Markdown)
	}
	r, err := charts.NewHTMLRenderer()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, rep); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func writeBundle(dir, source string, rep *charts.Report) error {
	b := bundle.New(dir, source)
	for _, f := range []outputFormat{formatMarkdown, formatJSON, formatYAML, formatHTML} {
		data, err := renderReport(rep, f)
		if err != nil {
			return err
		}
		name := "report." + string(f)
		if _, err := b.AddArtifact(name, string(f), data); err != nil {
			return fmt.Errorf("add %s: %w", name, err)
		}
		debugf("bundle artifact %s (%d bytes)", name, len(data))
	}
	if err := b.Save(); err != nil {
		return err
	}
	names := make([]string, 0, len(b.Artifacts))
	for _, a := range b.List() {
		names = append(names, a.Name)
	}
	fmt.Printf("✓ Wrote bundle %s to %s (%s)\n", b.ID, b.RootDir(), strings.Join(names, ", "))
	return nil
}
