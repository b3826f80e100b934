// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package survey_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/ertsoil/survey"
)

// dataLine returns a raw measurement line
// with 22 fields.
func dataLine(num, a, b, m, n int, rho, x16, x18, z float64) string {
	f := make([]string, survey.MinFields)
	for i := range f {
		f[i] = "0"
	}
	f[0] = fmt.Sprintf("%d", num)
	f[1] = fmt.Sprintf("%d", a)
	f[2] = fmt.Sprintf("%d", b)
	f[3] = fmt.Sprintf("%d", m)
	f[4] = fmt.Sprintf("%d", n)
	f[10] = fmt.Sprintf("%.2f", rho)
	f[16] = fmt.Sprintf("%.3f", x16)
	f[18] = fmt.Sprintf("%.3f", x18)
	f[20] = fmt.Sprintf("%.3f", z)
	return "  " + strings.Join(f, "  ")
}

type rawRow struct {
	a, b, m, n int
	rho, x, z  float64
}

func rawDump(electrodes int, rows []rawRow) string {
	var b strings.Builder
	b.WriteString("* Instrument: test resistivity meter\n")
	b.WriteString("* Project: ertsoil\n")
	b.WriteString("* Electrode positions\n")
	for i := 0; i < electrodes; i++ {
		fmt.Fprintf(&b, "* Electrode [%d] = %.3f 0.000 0.000 1\n", i+1, float64(i))
	}
	b.WriteString("* Remote electrode positions\n")
	b.WriteString("* Electrode [1] = 999.000 0.000 0.000\n")
	b.WriteString("******************* * Data *******************\n")
	for i, r := range rows {
		b.WriteString(dataLine(i+1, r.a, r.b, r.m, r.n, r.rho, r.x+100, r.x, r.z))
		b.WriteString("\n")
	}
	return b.String()
}

var testRows = []rawRow{
	{5, 8, 6, 7, 152.31, 1.5, -0.519},
	{6, 9, 7, 8, 148.2, 2.5, -0.519},
	{5, 11, 7, 9, 160, 3, -1.038},
	{7, 13, 9, 11, 171.55, 5, -1.557},
}

func TestParse(t *testing.T) {
	in := rawDump(4, testRows)
	rec, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}

	if len(rec.Electrodes) != 4 {
		t.Fatalf("electrodes: got %d, want %d", len(rec.Electrodes), 4)
	}
	for i, e := range rec.Electrodes {
		if e.Index != i+1 {
			t.Errorf("electrode %d: index: got %d, want %d", i, e.Index, i+1)
		}
		if e.X != float64(i) {
			t.Errorf("electrode %d: x: got %.3f, want %.3f", i, e.X, float64(i))
		}
	}

	if len(rec.Data) != len(testRows) {
		t.Fatalf("data: got %d, want %d", len(rec.Data), len(testRows))
	}
	for i, m := range rec.Data {
		r := testRows[i]
		got := [4]int{m.A, m.B, m.M, m.N}
		want := [4]int{r.a - 4, r.b - 4, r.m - 4, r.n - 4}
		if got != want {
			t.Errorf("data %d: indices: got %v, want %v", i, got, want)
		}
		if m.X != r.x {
			t.Errorf("data %d: x: got %.3f, want %.3f", i, m.X, r.x)
		}
		if m.Z != r.z {
			t.Errorf("data %d: z: got %.3f, want %.3f", i, m.Z, r.z)
		}
	}
	if len(rec.Header) == 0 {
		t.Errorf("header: expecting header lines")
	}
}

func TestParseXField(t *testing.T) {
	o := survey.DefaultOptions()
	o.XField = 16
	rec, err := survey.Parse(strings.NewReader(rawDump(4, testRows)), o)
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}
	for i, m := range rec.Data {
		if w := testRows[i].x + 100; m.X != w {
			t.Errorf("data %d: x: got %.3f, want %.3f", i, m.X, w)
		}
	}
}

func TestParseShortLines(t *testing.T) {
	in := rawDump(4, testRows)
	in += "  99 1 2 3 4 100.0 truncated line\n"
	in += "\n"
	in += "* end of data\n"

	rec, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}
	if len(rec.Data) != len(testRows) {
		t.Errorf("data: got %d, want %d", len(rec.Data), len(testRows))
	}
}

func TestParseDecimalIndex(t *testing.T) {
	in := rawDump(4, testRows)
	in += strings.Replace(dataLine(5, 6, 9, 7, 8, 150, 0, 2.5, -0.5), "  6  ", "  6.0  ", 1) + "\n"
	rec, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}
	if len(rec.Data) != len(testRows)+1 {
		t.Fatalf("data: got %d, want %d", len(rec.Data), len(testRows)+1)
	}
	last := rec.Data[len(rec.Data)-1]
	if got, want := [4]int{last.A, last.B, last.M, last.N}, [4]int{2, 5, 3, 4}; got != want {
		t.Errorf("whole decimal index: got %v, want %v", got, want)
	}

	in = rawDump(4, testRows)
	in += strings.Replace(dataLine(5, 6, 9, 7, 8, 150, 0, 2.5, -0.5), "  6  ", "  5.7  ", 1) + "\n"
	if _, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions()); !errors.Is(err, survey.ErrFormat) {
		t.Errorf("fractional index: got %v, want %v", err, survey.ErrFormat)
	}
}

func TestParseEmpty(t *testing.T) {
	in := "* Instrument: test\n******************* * Data *******************\n"
	rec, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}
	if len(rec.Electrodes) != 0 || len(rec.Data) != 0 {
		t.Fatalf("got %d electrodes and %d data, want empty record", len(rec.Electrodes), len(rec.Data))
	}

	var buf bytes.Buffer
	if err := survey.Write(&buf, rec, survey.WithXZ); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	want := "0# Number of electrodes\n# x z\n0# Number of data\n# a b m n rhoa x z\n"
	if buf.String() != want {
		t.Errorf("output: got %q, want %q", buf.String(), want)
	}
}

func TestParseFormatError(t *testing.T) {
	in := "1 2 3 4\nnot a survey file\n"
	_, err := survey.Parse(strings.NewReader(in), survey.DefaultOptions())
	if !errors.Is(err, survey.ErrFormat) {
		t.Errorf("error: got %v, want %v", err, survey.ErrFormat)
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name    string
		opt     survey.Options
		wantErr bool
	}{
		{name: "default", opt: survey.DefaultOptions()},
		{name: "x at 16", opt: survey.Options{Layout: survey.WithXZ, XField: 16, ZField: 20}},
		{name: "no xz", opt: survey.Options{Layout: survey.WithoutXZ, XField: 18, ZField: 20}},
		{name: "field out of range", opt: survey.Options{XField: 25, ZField: 20}, wantErr: true},
		{name: "same fields", opt: survey.Options{XField: 20, ZField: 20}, wantErr: true},
		{name: "unknown layout", opt: survey.Options{Layout: 7, XField: 18, ZField: 20}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opt.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error: got %v, want error %v", err, tt.wantErr)
			}
		})
	}
}

func TestCorrectOffsets(t *testing.T) {
	start1 := []survey.Measurement{
		survey.NewMeasurement(1, 4, 2, 3, 100, 1.5, -0.5),
		survey.NewMeasurement(2, 5, 3, 4, 110, 2.5, -0.5),
	}
	if got := survey.CorrectOffsets(start1); !reflect.DeepEqual(got, start1) {
		t.Errorf("data starting at 1: got %v, want %v", got, start1)
	}

	for _, k := range []int{2, 5, 49} {
		data := []survey.Measurement{
			survey.NewMeasurement(k+1, k+4, k+2, k+3, 100, 1.5, -0.5),
			survey.NewMeasurement(k, k+6, k+2, k+4, 110, 2.5, -1),
			survey.NewMeasurement(k+3, k+9, k+5, k+7, 120, 3.5, -1.5),
		}
		got := survey.CorrectOffsets(data)
		if o := survey.Offset(got); o != 0 {
			t.Errorf("data starting at %d: offset after correction: got %d, want 0", k, o)
		}
		for i := range data {
			if d := data[i].B - data[i].A; got[i].B-got[i].A != d {
				t.Errorf("data starting at %d: row %d: spacing: got %d, want %d", k, i, got[i].B-got[i].A, d)
			}
			if w := data[i].Shift(k - 1); got[i] != w {
				t.Errorf("data starting at %d: row %d: got %v, want %v", k, i, got[i], w)
			}
		}
		if got[1].A != 1 {
			t.Errorf("data starting at %d: minimum index: got %d, want 1", k, got[1].A)
		}
	}

	if got := survey.CorrectOffsets(nil); len(got) != 0 {
		t.Errorf("empty data: got %v, want empty", got)
	}
}

func TestWriteLayouts(t *testing.T) {
	rows := testRows[:2]
	rec, err := survey.Parse(strings.NewReader(rawDump(2, rows)), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}

	tests := map[survey.Layout]string{
		survey.WithXZ: `2# Number of electrodes
# x z
0.000     0.000
1.000     0.000
2# Number of data
# a b m n rhoa x z
1 4 2 3 152.31 1.500 -0.519
2 5 3 4 148.20 2.500 -0.519
`,
		survey.WithoutXZ: `2# Number of electrodes
# x z
0.000     0.000
1.000     0.000
2# Number of data
# a b m n rhoa
1 4 2 3 152.31
2 5 3 4 148.20
`,
	}
	for l, want := range tests {
		var buf bytes.Buffer
		if err := survey.Write(&buf, rec, l); err != nil {
			t.Fatalf("layout %s: unable to write data: %v", l, err)
		}
		if buf.String() != want {
			t.Errorf("layout %s: got\n%s\nwant\n%s", l, buf.String(), want)
		}
	}
}

func TestReadTable(t *testing.T) {
	rec, err := survey.Parse(strings.NewReader(rawDump(48, testRows)), survey.DefaultOptions())
	if err != nil {
		t.Fatalf("unable to parse data: %v", err)
	}
	var buf bytes.Buffer
	if err := survey.Write(&buf, rec, survey.WithXZ); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	buf.WriteString("9 12 10 11 bad 1.0 -0.5\n")
	buf.WriteString("9 12 10 11 120.5 1.0 --\n")
	buf.WriteString("9.5 12 10 11 120.5 1.0 -0.5\n")

	tab, err := survey.ReadTable(&buf)
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}

	// 48 electrodes + count lines and the x z comment
	if len(tab.Header) != 51 {
		t.Errorf("header: got %d lines, want %d", len(tab.Header), 51)
	}
	if tab.Columns != "# a b m n rhoa x z" {
		t.Errorf("columns: got %q, want %q", tab.Columns, "# a b m n rhoa x z")
	}
	if len(tab.Electrodes) != 48 {
		t.Errorf("electrodes: got %d, want %d", len(tab.Electrodes), 48)
	}
	if len(tab.Data) != len(testRows) {
		t.Errorf("data: got %d, want %d", len(tab.Data), len(testRows))
	}
	if tab.Dropped != 3 {
		t.Errorf("dropped: got %d, want %d", tab.Dropped, 3)
	}
	for i, m := range tab.Data {
		if m != rec.Data[i] {
			t.Errorf("data %d: got %v, want %v", i, m, rec.Data[i])
		}
	}
}

func TestReadTableFormatError(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"no count":     "# x z\n0 0\n",
		"truncated":    "3# Number of electrodes\n# x z\n0 0\n1 0\n",
		"no data line": "1# Number of electrodes\n# x z\n0 0\n",
	}
	for name, in := range tests {
		_, err := survey.ReadTable(strings.NewReader(in))
		if !errors.Is(err, survey.ErrFormat) {
			t.Errorf("%s: error: got %v, want %v", name, err, survey.ErrFormat)
		}
	}
}

func TestConvertDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "txt")

	files := map[string]string{
		"2024-07-10_a.tx0": rawDump(4, testRows),
		"2024-07-11_b.tx0": rawDump(4, testRows[:2]),
		"broken.tx0":       "no header here\n",
		"notes.txt":        "ignored",
	}
	for n, d := range files {
		if err := os.WriteFile(filepath.Join(in, n), []byte(d), 0o644); err != nil {
			t.Fatalf("unable to write %q: %v", n, err)
		}
	}

	done, failed, err := survey.ConvertDir(in, out, survey.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("unable to convert: %v", err)
	}
	want := []string{
		filepath.Join(out, "2024-07-10_a.txt"),
		filepath.Join(out, "2024-07-11_b.txt"),
	}
	if !reflect.DeepEqual(done, want) {
		t.Errorf("converted: got %v, want %v", done, want)
	}
	if len(failed) != 1 || filepath.Base(failed[0].File) != "broken.tx0" {
		t.Errorf("failed: got %v, want [broken.tx0]", failed)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("unable to read output: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("output files: got %d, want %d", len(entries), 2)
	}
}

func TestTableName(t *testing.T) {
	tests := map[string]string{
		"dir/2024-07-10_a.tx0": "2024-07-10_a.txt",
		"survey.TX0":           "survey.txt",
		"other":                "other.txt",
	}
	for in, want := range tests {
		if got := survey.TableName(in); got != want {
			t.Errorf("%q: got %q, want %q", in, got, want)
		}
	}
}
