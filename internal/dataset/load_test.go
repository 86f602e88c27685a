package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var pokemonRows = []string{
	"#,Name,Type 1,Type 2,HP,Attack,Defense,Sp. Atk,Sp. Def,Speed,Evolution",
	"1,Bulbasaur,Grass,Poison,45,49,49,65,65,45,1",
	"4,Charmander,Fire,,39,52,43,60,50,65,1",
	"6,Charizard,Fire,Flying,78,84,78,109,85,100,3",
	"7,Squirtle,Water",
}

func writeCSV(t *testing.T, name string, lines []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeCSV(t, "Pokemon-Dataset.csv", pokemonRows)
	ds, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "Pokemon-Dataset.csv" {
		t.Fatalf("name = %q", ds.Name)
	}
	if ds.Len() != 4 {
		t.Fatalf("rows = %d, want 4", ds.Len())
	}
	if !ds.HasColumn("Sp. Atk") {
		t.Fatalf("missing Sp. Atk column: %#v", ds.Columns)
	}
	want := Row{
		"#": "4", "Name": "Charmander", "Type 1": "Fire", "Type 2": "",
		"HP": "39", "Attack": "52", "Defense": "43", "Sp. Atk": "60", "Sp. Def": "50", "Speed": "65", "Evolution": "1",
	}
	if diff := cmp.Diff(want, ds.Rows[1]); diff != "" {
		t.Fatalf("row 1 mismatch (-want +got):\n%s", diff)
	}
	// short record is padded
	if v, ok := ds.Rows[3].Get("HP"); !ok || v != "" {
		t.Fatalf("padded HP = %q, %v", v, ok)
	}
}

func TestLoadTSVAndMaxRows(t *testing.T) {
	lines := make([]string, len(pokemonRows))
	for i, l := range pokemonRows {
		lines[i] = strings.ReplaceAll(l, ",", "\t")
	}
	p := writeCSV(t, "dex.tsv", lines)
	ds, err := LoadCSV(p, Options{MaxRows: 2})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("rows = %d, want 2", ds.Len())
	}
	if got := ds.Rows[0]["Name"]; got != "Bulbasaur" {
		t.Fatalf("first name = %q", got)
	}
}

func TestReadCSVStopsAtMaxRows(t *testing.T) {
	// the record past the limit is malformed and must not be parsed
	ds, err := ReadCSV(strings.NewReader("a,b\n1,2\n3,\"x\"y\n"), ',', 1)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if ds.Len() != 1 || ds.Rows[0]["b"] != "2" {
		t.Fatalf("rows = %#v", ds.Rows)
	}
	if _, err := ReadCSV(strings.NewReader("a,b\n1,2\n3,\"x\"y\n"), ',', 0); err == nil {
		t.Fatalf("expected parse error without a row limit")
	}
}

func TestLoadEmptyAndUnsupported(t *testing.T) {
	p := writeCSV(t, "empty.csv", nil)
	ds, err := Load(p, DefaultOptions())
	if err != nil {
		t.Fatalf("Load empty: %v", err)
	}
	if ds.Len() != 0 {
		t.Fatalf("rows = %d", ds.Len())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "dex.xlsx"), DefaultOptions()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestColumnResolution(t *testing.T) {
	ds := &Dataset{Columns: []string{"Type 1", "Sp. Atk"}}
	if c, ok := ds.Column(" sp. atk "); !ok || c != "Sp. Atk" {
		t.Fatalf("Column = %q, %v", c, ok)
	}
	if _, ok := ds.Column("Speed"); ok {
		t.Fatalf("unexpected match for Speed")
	}
}

func TestDistinct(t *testing.T) {
	rows := []Row{
		{"Type 1": "Grass", "Type 2": "Poison"},
		{"Type 1": "Fire", "Type 2": ""},
		{"Type 1": "Fire", "Type 2": "Flying"},
		{"Type 1": "Poison"},
	}
	got := Distinct(rows, "Type 1", "Type 2")
	want := []string{"Grass", "Fire", "Poison", "", "Flying"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Distinct mismatch (-want +got):\n%s", diff)
	}
}

func TestNumberFormat(t *testing.T) {
	cases := []struct {
		in   string
		f    NumberFormat
		want float64
		ok   bool
	}{
		{"45", DefaultNumberFormat(), 45, true},
		{" 12.5 ", DefaultNumberFormat(), 12.5, true},
		{"-3", DefaultNumberFormat(), -3, true},
		{"", DefaultNumberFormat(), 0, false},
		{"abc", DefaultNumberFormat(), 0, false},
		{"NaN", DefaultNumberFormat(), 0, false},
		{"inf", DefaultNumberFormat(), 0, false},
		{"+Inf", DefaultNumberFormat(), 0, false},
		{"-Infinity", DefaultNumberFormat(), 0, false},
		{"1e400", DefaultNumberFormat(), 0, false},
		{"1.000,5", NumberFormat{DecimalSeparator: ',', ThousandsSeparator: '.'}, 1000.5, true},
		{"1,5", NumberFormat{DecimalSeparator: ','}, 1.5, true},
		{"1.5", NumberFormat{DecimalSeparator: ','}, 0, false},
	}
	for _, tc := range cases {
		got, ok := tc.f.Parse(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("Parse(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	r := Row{"HP": "45"}
	if x, ok := r.Number("Attack", DefaultNumberFormat()); ok || x != 0 {
		t.Fatalf("missing column = %v, %v", x, ok)
	}
}
