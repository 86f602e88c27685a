package dataset

import "strings"

// Row is one record of a tabular dataset: column name to raw field value.
// Rows are never mutated after loading.
type Row map[string]string

// Get returns the raw value of col and whether the row carries that column.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Number coerces the value at col. A missing column or a value that does not
// parse yields 0 and false.
func (r Row) Number(col string, f NumberFormat) (float64, bool) {
	v, ok := r[col]
	if !ok {
		return 0, false
	}
	return f.Parse(v)
}

// Dataset is an ordered, immutable sequence of rows loaded from one source.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// HasColumn reports whether the header contains col (exact match).
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Column resolves name against the header, falling back to a
// case-insensitive match. The second result is false when nothing matches.
func (d *Dataset) Column(name string) (string, bool) {
	want := strings.TrimSpace(name)
	for _, c := range d.Columns {
		if c == want {
			return c, true
		}
	}
	for _, c := range d.Columns {
		if strings.EqualFold(c, want) {
			return c, true
		}
	}
	return "", false
}

// Distinct returns the distinct values found across cols, in first-seen
// order. Rows are scanned column by column, so all values of cols[0] come
// before new values of cols[1]. Missing fields count as "".
func Distinct(rows []Row, cols ...string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, col := range cols {
		for _, r := range rows {
			v := r[col]
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
