package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/creaturestats-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set creaturestats configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "strict: %v\n", cfg.Strict)
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %q\n", cfg.Delimiter)
		}
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		fmt.Fprintf(out, "decimal_separator: %q\n", cfg.DecimalSeparator)
		if cfg.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		if cfg.BundleDir != "" {
			fmt.Fprintf(out, "bundle_dir: %s\n", cfg.BundleDir)
		}
		c := cfg.Charts
		fmt.Fprintf(out, "charts.star.group_column: %s\n", c.Star.GroupColumn)
		fmt.Fprintf(out, "charts.star.features: %s\n", strings.Join(c.Star.Features, ","))
		fmt.Fprintf(out, "charts.heat.type_columns: %s, %s\n", c.Heat.TypeColumn1, c.Heat.TypeColumn2)
		fmt.Fprintf(out, "charts.heat.quantity: %s\n", strings.Join(c.Heat.Quantity, ","))
		fmt.Fprintf(out, "charts.parallel.dimensions: %s\n", strings.Join(c.Parallel.Dimensions, ","))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "strict":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for strict: %v", val)
			}
			cfg.Strict = b
		case "delimiter":
			cfg.Delimiter = val
			if _, err := cfg.DelimiterRune(); err != nil {
				return err
			}
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "decimal_separator":
			cfg.DecimalSeparator = val
			if _, err := cfg.NumberFormat(); err != nil {
				return err
			}
		case "thousands_separator":
			cfg.ThousandsSeparator = val
			if _, err := cfg.NumberFormat(); err != nil {
				return err
			}
		case "output_format":
			if _, err := parseFormat(val, true); err != nil {
				return err
			}
			cfg.OutputFormat = val
		case "bundle_dir":
			cfg.BundleDir = val
		case "charts.star.group_column":
			cfg.Charts.Star.GroupColumn = val
		case "charts.star.features":
			cfg.Charts.Star.Features = splitList(val)
		case "charts.heat.type_column_1":
			cfg.Charts.Heat.TypeColumn1 = val
		case "charts.heat.type_column_2":
			cfg.Charts.Heat.TypeColumn2 = val
		case "charts.heat.quantity":
			cfg.Charts.Heat.Quantity = splitList(val)
		case "charts.parallel.dimensions":
			cfg.Charts.Parallel.Dimensions = splitList(val)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
