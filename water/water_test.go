// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package water_test

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

var testPoints = []water.Point{
	{Depth: 0, Temp: 25},
	{Depth: -10, Temp: 15},
}

func expectWater(rho, t float64, law water.Law) float64 {
	return law.A * math.Pow(rho*(1+0.025*(t-25)), law.B)
}

func TestConvertEveryCell(t *testing.T) {
	res := []float64{100, 120, 140, 160}
	y := []float64{-1, -5, -9, -9.5}
	temps := []float64{24, 20, 16, 15.5}

	wc, err := water.Convert(res, y, testPoints, water.DefaultLaw)
	if err != nil {
		t.Fatalf("unable to convert cells: %v", err)
	}
	if len(wc) != len(res) {
		t.Fatalf("cells: got %d, want %d", len(wc), len(res))
	}
	for i := range wc {
		want := expectWater(res[i], temps[i], water.DefaultLaw)
		if math.Abs(wc[i]-want) > 1e-9 {
			t.Errorf("cell %d: got %.6f, want %.6f", i+1, wc[i], want)
		}
	}
}

func TestConvertClamp(t *testing.T) {
	cells := []water.Cell{
		{ID: 1, Y: -20, Rho: 100},
		{ID: 2, Y: 3, Rho: 100},
		{ID: 3, Y: -10, Rho: 100},
	}
	if err := water.Correct(cells, testPoints, water.DefaultLaw); err != nil {
		t.Fatalf("unable to correct cells: %v", err)
	}
	want := []float64{15, 25, 15}
	for i, c := range cells {
		if c.Temp != want[i] {
			t.Errorf("cell %d: temperature got %.3f, want %.3f", c.ID, c.Temp, want[i])
		}
	}
	if cells[1].Corrected != 100 {
		t.Errorf("cell 2: corrected got %.3f, want %.3f", cells[1].Corrected, 100.0)
	}
}

func TestSinglePoint(t *testing.T) {
	pts := []water.Point{{Depth: 0, Temp: 18}}
	cells := []water.Cell{
		{ID: 1, Y: -0.5, Rho: 80},
		{ID: 2, Y: -4, Rho: 90},
		{ID: 3, Y: -7.9, Rho: 100},
	}
	if err := water.Correct(cells, pts, water.DefaultLaw); err != nil {
		t.Fatalf("unable to correct cells: %v", err)
	}
	for _, c := range cells {
		if c.Temp != 18 {
			t.Errorf("cell %d: temperature got %.3f, want %.3f", c.ID, c.Temp, 18.0)
		}
	}
}

func TestMonotonic(t *testing.T) {
	for _, law := range []water.Law{water.DefaultLaw, water.AltLaw} {
		prev := math.Inf(1)
		for r := 1.0; r < 2000; r *= 1.5 {
			v := law.Content(r)
			if !(v < prev) {
				t.Errorf("law %v: resistivity %.3f: got %.6f, want < %.6f", law, r, v, prev)
			}
			prev = v
		}
	}

	if v := water.DefaultLaw.Content(0); !math.IsNaN(v) {
		t.Errorf("zero resistivity: got %.3f, want NaN", v)
	}
	if v := water.DefaultLaw.Content(-10); !math.IsNaN(v) {
		t.Errorf("negative resistivity: got %.3f, want NaN", v)
	}
}

func TestParseLaw(t *testing.T) {
	tests := map[string]water.Law{
		"":          water.DefaultLaw,
		"default":   water.DefaultLaw,
		"Alternate": water.AltLaw,
		"alt":       water.AltLaw,
	}
	for in, want := range tests {
		got, err := water.ParseLaw(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
	if _, err := water.ParseLaw("archie"); err == nil {
		t.Errorf("expecting error for unknown law")
	}

	alt, err := water.Convert([]float64{100}, []float64{-1}, testPoints, water.AltLaw)
	if err != nil {
		t.Fatalf("unable to convert cells: %v", err)
	}
	if want := expectWater(100, 24, water.AltLaw); math.Abs(alt[0]-want) > 1e-9 {
		t.Errorf("alternate law: got %.6f, want %.6f", alt[0], want)
	}
}

func TestConvertErrors(t *testing.T) {
	if _, err := water.Convert([]float64{1, 2}, []float64{1}, testPoints, water.DefaultLaw); err == nil {
		t.Errorf("expecting error for different lengths")
	}
	if _, err := water.Convert([]float64{1}, []float64{1}, nil, water.DefaultLaw); err == nil {
		t.Errorf("expecting error for empty control points")
	}
	if _, err := water.Convert([]float64{1}, []float64{1}, testPoints, water.Law{A: 200, B: 0.5}); err == nil {
		t.Errorf("expecting error for invalid law")
	}
}

func TestProfilePoints(t *testing.T) {
	p, err := tempseries.Manual(time.Time{}, []float64{20, 21, 22, 23, 24, 25})
	if err != nil {
		t.Fatalf("unable to build profile: %v", err)
	}
	pts := water.ProfilePoints(p)
	if len(pts) != 6 {
		t.Fatalf("points: got %d, want %d", len(pts), 6)
	}
	if pts[0] != (water.Point{Depth: -4, Temp: 20}) {
		t.Errorf("first point: got %v, want %v", pts[0], water.Point{Depth: -4, Temp: 20})
	}

	p.Temps[2] = math.NaN()
	if pts := water.ProfilePoints(p); len(pts) != 5 {
		t.Errorf("points with invalid temperature: got %d, want %d", len(pts), 5)
	}
}

func TestCellTable(t *testing.T) {
	in := `# inverted mesh
cell	x	y	resistivity
1	0.25	-1	100
2	0.75	-5	120
3	1.25	-9	0
`
	cells, err := water.ReadCells(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read cells: %v", err)
	}
	if len(cells) != 3 {
		t.Fatalf("cells: got %d, want %d", len(cells), 3)
	}
	if cells[1].X != 0.75 || cells[1].Y != -5 || cells[1].Rho != 120 {
		t.Errorf("cell 2: got %+v", cells[1])
	}

	if err := water.Correct(cells, testPoints, water.DefaultLaw); err != nil {
		t.Fatalf("unable to correct cells: %v", err)
	}

	var buf bytes.Buffer
	if err := water.WriteCells(&buf, cells, water.DefaultLaw); err != nil {
		t.Fatalf("unable to write cells: %v", err)
	}

	var rows []string
	for _, ln := range strings.Split(buf.String(), "\n") {
		ln = strings.TrimSuffix(ln, "\r")
		if ln == "" || strings.HasPrefix(ln, "#") {
			continue
		}
		rows = append(rows, ln)
	}
	if len(rows) != 4 {
		t.Fatalf("rows: got %d, want %d", len(rows), 4)
	}
	if want := "cell\tx\ty\tresistivity\ttemperature\tcorrected\twater"; rows[0] != want {
		t.Errorf("header: got %q, want %q", rows[0], want)
	}
	f := strings.Split(rows[1], "\t")
	if f[4] != "24.000" || f[5] != "97.500" {
		t.Errorf("cell 1: got temperature %q, corrected %q, want %q, %q", f[4], f[5], "24.000", "97.500")
	}
	f = strings.Split(rows[3], "\t")
	if f[6] != "" {
		t.Errorf("cell 3: water got %q, want empty", f[6])
	}
}

func TestReadCellsErrors(t *testing.T) {
	tests := map[string]string{
		"missing field": "cell\tx\ty\n1\t0\t0\n",
		"bad value":     "cell\tx\ty\tresistivity\n1\t0\tdeep\t100\n",
		"bad cell":      "cell\tx\ty\tresistivity\none\t0\t0\t100\n",
	}
	for name, in := range tests {
		if _, err := water.ReadCells(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestReadPoints(t *testing.T) {
	in := `# control points
depth	temperature
0	19.5
-4	14.2
-1	18
`
	pts, err := water.ReadPoints(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read points: %v", err)
	}
	want := []water.Point{
		{Depth: -4, Temp: 14.2},
		{Depth: -1, Temp: 18},
		{Depth: 0, Temp: 19.5},
	}
	if len(pts) != len(want) {
		t.Fatalf("points: got %d, want %d", len(pts), len(want))
	}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, pts[i], want[i])
		}
	}

	if _, err := water.ReadPoints(strings.NewReader("depth\ttemperature\n")); err == nil {
		t.Errorf("expecting error for empty control points")
	}
}

func TestSummarize(t *testing.T) {
	cells := []water.Cell{
		{ID: 1, Water: 3},
		{ID: 2, Water: 1},
		{ID: 3, Water: math.NaN()},
		{ID: 4, Water: 4},
		{ID: 5, Water: 2},
	}
	s := water.Summarize(cells)
	if s.N != 4 || s.Undefined != 1 {
		t.Errorf("cells: got %d defined, %d undefined, want %d, %d", s.N, s.Undefined, 4, 1)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Errorf("range: got %.3f-%.3f, want %.3f-%.3f", s.Min, s.Max, 1.0, 4.0)
	}
	if s.Mean != 2.5 {
		t.Errorf("mean: got %.3f, want %.3f", s.Mean, 2.5)
	}
	if s.Median != 2 {
		t.Errorf("median: got %.3f, want %.3f", s.Median, 2.0)
	}

	empty := water.Summarize(nil)
	if empty.N != 0 || !math.IsNaN(empty.Mean) {
		t.Errorf("empty: got %+v", empty)
	}
}
