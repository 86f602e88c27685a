package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/creaturestats-cli/internal/charts"
	cfgpkg "github.com/KaramelBytes/creaturestats-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// Dataset flags (override config if set)
	flagStrict    bool
	flagDelimiter string
	flagMaxRows   int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "creaturestats",
	Short: "Aggregate creature stat tables for star, heat map and parallel-coordinates charts",
	Long: `creaturestats reads a creature dataset (CSV/TSV with a header row) and computes
the aggregates behind three charts: per-group averages for a star plot, symmetric
type-pair averages for a heat map, and per-row projections for parallel coordinates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.creaturestats/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "fail on malformed numeric values instead of counting them as 0")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default: by extension)")
	rootCmd.PersistentFlags().IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{OutputFormat: "md", Charts: charts.DefaultOptions()}
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("strict") {
		cfg.Strict = flagStrict
	}
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("max-rows") && flagMaxRows >= 0 {
		cfg.MaxRows = flagMaxRows
	}
	debugf("config loaded: strict=%v delimiter=%q max_rows=%d", cfg.Strict, cfg.Delimiter, cfg.MaxRows)
}

func debugf(format string, args ...any) {
	if !debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
}
