package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/charts"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
)

const dirName = ".creaturestats"

// Global configuration structure.
type Global struct {
	// Strict rejects malformed numeric values instead of counting them as 0.
	Strict bool `mapstructure:"strict" yaml:"strict"`
	// Delimiter is a single character, or "tab"; empty sniffs from the file extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	MaxRows   int    `mapstructure:"max_rows" yaml:"max_rows"`

	DecimalSeparator   string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string `mapstructure:"thousands_separator" yaml:"thousands_separator"`

	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	// BundleDir, when set, collects chart outputs with a bundle.json manifest.
	BundleDir string `mapstructure:"bundle_dir" yaml:"bundle_dir"`

	Charts charts.Options `mapstructure:"charts" yaml:"charts"`
}

// Dir returns ~/.creaturestats.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.creaturestats/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("CREATURESTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := charts.DefaultOptions()
	v.SetDefault("strict", false)
	v.SetDefault("delimiter", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("decimal_separator", ".")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("output_format", "md")
	v.SetDefault("bundle_dir", "")
	// Chart layout
	v.SetDefault("charts.star.features", def.Star.Features)
	v.SetDefault("charts.star.group_column", def.Star.GroupColumn)
	v.SetDefault("charts.star.labels", def.Star.Labels)
	v.SetDefault("charts.star.colors", def.Star.Colors)
	v.SetDefault("charts.star.scale_max", def.Star.ScaleMax)
	v.SetDefault("charts.heat.type_column_1", def.Heat.TypeColumn1)
	v.SetDefault("charts.heat.type_column_2", def.Heat.TypeColumn2)
	v.SetDefault("charts.heat.quantity", def.Heat.Quantity)
	v.SetDefault("charts.heat.empty_label", def.Heat.EmptyLabel)
	v.SetDefault("charts.heat.domain", []string{})
	v.SetDefault("charts.parallel.dimensions", def.Parallel.Dimensions)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// DelimiterRune resolves the configured delimiter; 0 means sniff.
func (c *Global) DelimiterRune() (rune, error) {
	switch d := c.Delimiter; strings.ToLower(d) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	default:
		return singleRune("delimiter", d)
	}
}

// NumberFormat resolves the configured separators.
func (c *Global) NumberFormat() (dataset.NumberFormat, error) {
	f := dataset.DefaultNumberFormat()
	if c.DecimalSeparator != "" {
		r, err := singleRune("decimal_separator", c.DecimalSeparator)
		if err != nil {
			return f, err
		}
		f.DecimalSeparator = r
	}
	if c.ThousandsSeparator != "" {
		r, err := singleRune("thousands_separator", c.ThousandsSeparator)
		if err != nil {
			return f, err
		}
		f.ThousandsSeparator = r
	}
	if f.DecimalSeparator == f.ThousandsSeparator {
		return f, fmt.Errorf("decimal_separator and thousands_separator are both %q", string(f.DecimalSeparator))
	}
	return f, nil
}

// LoadOptions returns the dataset loader options.
func (c *Global) LoadOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	d, err := c.DelimiterRune()
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	if c.MaxRows > 0 {
		opt.MaxRows = c.MaxRows
	}
	return opt, nil
}

// AggregateOptions returns the aggregator options.
func (c *Global) AggregateOptions() (aggregate.Options, error) {
	nf, err := c.NumberFormat()
	if err != nil {
		return aggregate.Options{}, err
	}
	return aggregate.Options{Strict: c.Strict, Number: nf}, nil
}

func singleRune(key, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%s must be a single character, got %q", key, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
