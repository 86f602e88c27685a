package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/creaturestats-cli/internal/aggregate"
	"github.com/KaramelBytes/creaturestats-cli/internal/dataset"
	"github.com/KaramelBytes/creaturestats-cli/internal/utils"
)

// maxListedErrors caps the malformed values echoed to stderr in strict mode.
const maxListedErrors = 20

type outputFormat string

const (
	formatMarkdown outputFormat = "md"
	formatJSON     outputFormat = "json"
	formatYAML     outputFormat = "yaml"
	formatHTML     outputFormat = "html"
)

func parseFormat(s string, allowHTML bool) (outputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md", "markdown":
		return formatMarkdown, nil
	case "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	case "html":
		if allowHTML {
			return formatHTML, nil
		}
	}
	if allowHTML {
		return "", fmt.Errorf("unsupported --format: %s (use md|json|yaml|html)", s)
	}
	return "", fmt.Errorf("unsupported --format: %s (use md|json|yaml)", s)
}

// pickFormat prefers the flag, then the configured default. A configured
// html default falls back to Markdown for commands without an HTML view.
func pickFormat(flag string, allowHTML bool) (outputFormat, error) {
	if flag != "" {
		return parseFormat(flag, allowHTML)
	}
	if cfg == nil {
		return formatMarkdown, nil
	}
	f, err := parseFormat(cfg.OutputFormat, true)
	if err != nil {
		return "", fmt.Errorf("output_format: %w", err)
	}
	if f == formatHTML && !allowHTML {
		return formatMarkdown, nil
	}
	return f, nil
}

// loadDataset reads path using the effective config and returns it with a
// matching aggregator.
func loadDataset(path string) (*dataset.Dataset, *aggregate.Aggregator, error) {
	lo, err := cfg.LoadOptions()
	if err != nil {
		return nil, nil, err
	}
	ao, err := cfg.AggregateOptions()
	if err != nil {
		return nil, nil, err
	}
	ds, err := dataset.Load(path, lo)
	if err != nil {
		return nil, nil, err
	}
	debugf("loaded %s: %d rows, %d columns", ds.Name, ds.Len(), len(ds.Columns))
	return ds, aggregate.New(ao), nil
}

// resolveColumns maps each requested column onto the header, warning about
// columns the dataset does not have.
func resolveColumns(ds *dataset.Dataset, cols []string) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if actual, ok := ds.Column(c); ok {
			out = append(out, actual)
			continue
		}
		fmt.Fprintf(os.Stderr, "⚠ Warning: column %q not found; its values count as 0\n", c)
		out = append(out, c)
	}
	return out
}

func resolveColumn(ds *dataset.Dataset, col string) string {
	return resolveColumns(ds, []string{col})[0]
}

// encode renders v in the requested structured format, or md() for Markdown.
func encode(v any, f outputFormat, md func() string) ([]byte, error) {
	switch f {
	case formatJSON:
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case formatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return b, nil
	default:
		return []byte(md()), nil
	}
}

// writeResult writes data to the -o path, or to stdout when none is given.
func writeResult(path string, data []byte, what string) error {
	if path == "" {
		return utils.WriteOutput("", data)
	}
	if err := utils.WriteOutput(path, data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s to %s\n", what, path)
	return nil
}

// strictError lists malformed values on stderr and condenses err.
func strictError(err error) error {
	bad := aggregate.MalformedValues(err)
	if len(bad) == 0 {
		return err
	}
	for i, mv := range bad {
		if i == maxListedErrors {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(bad)-i)
			break
		}
		fmt.Fprintf(os.Stderr, "  - %v\n", mv)
	}
	return fmt.Errorf("%d malformed value(s) in strict mode", len(bad))
}

func markdownTable(b *strings.Builder, header []string, rows [][]string) {
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	writeRow(header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(sep)
	for _, r := range rows {
		writeRow(r)
	}
}

func formatNum(v float64) string {
	return fmt.Sprintf("%g", v)
}
