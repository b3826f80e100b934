// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package water

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

var cellHeader = []string{
	"cell",
	"x",
	"y",
	"resistivity",
}

// ReadCells reads the cells of an inverted mesh
// from a TSV file.
//
// The TSV must contain the following fields:
//
//   - cell, the cell identifier
//   - x, the x coordinate of the cell center
//   - y, the y coordinate (depth) of the cell center
//   - resistivity, the inverted resistivity of the cell
//
// Here is an example file:
//
//	# inverted mesh cells
//	cell	x	y	resistivity
//	1	0.25	-0.12	152.3
//	2	0.75	-0.12	148.9
func ReadCells(r io.Reader) ([]Cell, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range cellHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var cells []Cell
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "cell"
		id, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		c := Cell{ID: id}

		f = "x"
		c.X, err = strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "y"
		c.Y, err = strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "resistivity"
		c.Rho, err = strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

// ReadCellFile reads the cells of an inverted mesh
// from a file.
func ReadCellFile(name string) ([]Cell, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cells, err := ReadCells(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return cells, nil
}

// WriteCells writes the corrected cells
// as a TSV file.
// Undefined values are written as empty fields.
func WriteCells(w io.Writer, cells []Cell, law Law) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# soil water content\n")
	fmt.Fprintf(bw, "# law: %.4g * rho^%.4g\n", law.A, law.B)
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"cell", "x", "y", "resistivity", "temperature", "corrected", "water"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, c := range cells {
		row := []string{
			strconv.Itoa(c.ID),
			strconv.FormatFloat(c.X, 'f', 3, 64),
			strconv.FormatFloat(c.Y, 'f', 3, 64),
			formatNum(c.Rho, 3),
			formatNum(c.Temp, 3),
			formatNum(c.Corrected, 3),
			formatNum(c.Water, 3),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

func formatNum(v float64, prec int) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

var pointHeader = []string{
	"depth",
	"temperature",
}

// ReadPoints reads temperature control points
// from a TSV file.
//
// The TSV must contain the following fields:
//
//   - depth, the depth of the control point, in meters
//   - temperature, the temperature at that depth, in °C
//
// Here is an example file:
//
//	# temperature control points
//	depth	temperature
//	0	19.5
//	-4	14.2
//
// The points are returned sorted by depth.
func ReadPoints(r io.Reader) ([]Point, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range pointHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var pts []Point
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "depth"
		d, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "temperature"
		t, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		pts = append(pts, Point{Depth: d, Temp: t})
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("no control points")
	}
	SortPoints(pts)
	return pts, nil
}

// ReadPointFile reads temperature control points
// from a file.
func ReadPointFile(name string) ([]Point, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pts, err := ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return pts, nil
}
