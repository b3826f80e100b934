// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package survey

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Layout defines the columns of a normalized measurement table.
type Layout int

// Valid layouts.
const (
	// WithXZ writes a, b, m, n, rhoa, x, and z.
	WithXZ Layout = iota

	// WithoutXZ writes only a, b, m, n, and rhoa.
	WithoutXZ
)

// ParseLayout returns a layout from its name.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xz", "withxz", "":
		return WithXZ, nil
	case "noxz", "withoutxz":
		return WithoutXZ, nil
	}
	return WithXZ, fmt.Errorf("unknown layout %q", s)
}

func (l Layout) String() string {
	if l == WithoutXZ {
		return "noxz"
	}
	return "xz"
}

// Header lines of a normalized table.
const (
	electrodeCount = "# Number of electrodes"
	electrodeCols  = "# x z"
	dataCount      = "# Number of data"
)

func (l Layout) columns() string {
	if l == WithoutXZ {
		return "# a b m n rhoa"
	}
	return "# a b m n rhoa x z"
}

// Write writes a record as a normalized measurement table
// used as input by the inversion engine.
//
// The output has the form:
//
//	48# Number of electrodes
//	# x z
//	0.000     0.000
//	...
//	909# Number of data
//	# a b m n rhoa x z
//	1 4 2 3 152.31 1.500 -0.519
//	...
func Write(w io.Writer, rec *Record, l Layout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%d%s\n", len(rec.Electrodes), electrodeCount)
	fmt.Fprintf(bw, "%s\n", electrodeCols)
	for _, e := range rec.Electrodes {
		fmt.Fprintf(bw, "%s     %s\n", numText(e.x, e.X), numText(e.z, e.Z))
	}

	fmt.Fprintf(bw, "%d%s\n", len(rec.Data), dataCount)
	fmt.Fprintf(bw, "%s\n", l.columns())
	for _, m := range rec.Data {
		fmt.Fprintf(bw, "%d %d %d %d %s", m.A, m.B, m.M, m.N, m.RhoText())
		if l == WithXZ {
			fmt.Fprintf(bw, " %s %s", m.XText(), m.ZText())
		}
		fmt.Fprintf(bw, "\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// A Table is a normalized measurement table.
type Table struct {
	// Header contains the lines of the file
	// up to, and including,
	// the line with the number of data.
	Header []string

	// Columns is the comment line
	// with the names of the data columns.
	Columns string

	Electrodes []Electrode
	Data       []Measurement

	// Number of data lines dropped
	// because of non-numeric values.
	Dropped int
}

// ReadTable reads a normalized measurement table.
//
// The header is detected from the electrode
// and data count lines,
// so files with any number of electrodes are accepted.
// Data lines with non-numeric resistivity
// or depth values are dropped
// and counted in the Dropped field.
func ReadTable(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	t := &Table{}
	ln := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		ln++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	line, ok := next()
	if !ok {
		return nil, fmt.Errorf("%w: empty file", ErrFormat)
	}
	ne, err := countLine(line, electrodeCount)
	if err != nil {
		return nil, fmt.Errorf("on line %d: %w", ln, err)
	}
	t.Header = append(t.Header, line)

	for len(t.Electrodes) < ne {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: expecting %d electrodes, found %d", ErrFormat, ne, len(t.Electrodes))
		}
		t.Header = append(t.Header, line)
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil, fmt.Errorf("%w: on line %d: expecting electrode coordinates", ErrFormat, ln)
		}
		t.Electrodes = append(t.Electrodes, Electrode{
			Index: len(t.Electrodes) + 1,
			X:     parseNum(f[0]),
			Z:     parseNum(f[1]),
			x:     f[0],
			z:     f[1],
		})
	}

	for {
		line, ok := next()
		if !ok {
			return nil, fmt.Errorf("%w: number of data line not found", ErrFormat)
		}
		t.Header = append(t.Header, line)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if _, err := countLine(line, dataCount); err != nil {
			return nil, fmt.Errorf("on line %d: %w", ln, err)
		}
		break
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		if strings.HasPrefix(s, "#") {
			if t.Columns == "" && len(t.Data) == 0 {
				t.Columns = line
			}
			continue
		}
		m, ok := parseRow(strings.Fields(s))
		if !ok {
			t.Dropped++
			continue
		}
		t.Data = append(t.Data, m)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func countLine(line, label string) (int, error) {
	v, rest, ok := strings.Cut(line, "#")
	if !ok || strings.TrimSpace("#"+rest) != label {
		return 0, fmt.Errorf("%w: expecting %q line", ErrFormat, label)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid count %q", ErrFormat, v)
	}
	return n, nil
}

// ParseRow returns false
// if any of the required values is not a number.
func parseRow(f []string) (Measurement, bool) {
	if len(f) < 5 {
		return Measurement{}, false
	}
	var idx [4]int
	for i := range idx {
		v, err := strconv.ParseFloat(f[i], 64)
		if err != nil || v != math.Trunc(v) {
			return Measurement{}, false
		}
		idx[i] = int(v)
	}

	m := Measurement{
		A:    idx[0],
		B:    idx[1],
		M:    idx[2],
		N:    idx[3],
		text: [3]string{f[4], "", ""},
	}
	m.Rho = parseNum(f[4])
	if len(f) >= 7 {
		m.text[1] = f[5]
		m.text[2] = f[6]
		m.X = parseNum(f[5])
		m.Z = parseNum(f[6])
	} else {
		m.X = parseNum("")
		m.Z = parseNum("")
	}
	if !m.Valid() {
		return Measurement{}, false
	}
	return m, true
}
