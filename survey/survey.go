// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package survey implements reading of raw multi-electrode
// resistivity survey dumps (tx0 files)
// and reading and writing of normalized measurement tables.
//
// A raw dump is a text file
// with a header of instrument comment lines
// (lines starting with "*"),
// a section of electrode positions,
// and a data section with one measurement per line.
package survey

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrFormat is returned when a file
// does not have the expected structure.
var ErrFormat = errors.New("invalid format")

// Section markers of a raw dump.
const (
	electrodeMark = "* Electrode positions"
	remoteMark    = "* Remote electrode positions"
	electrodeLine = "* Electrode ["
	dataMark      = "* Data"
	dataBorder    = "*******************"
)

// MinFields is the minimum number of fields
// of a valid measurement line in a raw dump.
const MinFields = 22

// Fixed field positions of a raw measurement line.
const (
	fieldA   = 1
	fieldB   = 2
	fieldM   = 3
	fieldN   = 4
	fieldRho = 10
)

// An Electrode is the position of an electrode
// in a 2-D survey line.
type Electrode struct {
	Index int
	X, Z  float64

	// original text of the coordinates
	x, z string
}

// A Measurement is a four-electrode measurement.
// Electrode indices are 1-based.
type Measurement struct {
	A, B, M, N int

	// Apparent resistivity
	Rho float64

	// Pseudo-section coordinates
	X, Z float64

	// original text of rho, x, and z
	text [3]string
}

// NewMeasurement returns a measurement
// from numerical values.
func NewMeasurement(a, b, m, n int, rho, x, z float64) Measurement {
	return Measurement{
		A:   a,
		B:   b,
		M:   m,
		N:   n,
		Rho: rho,
		X:   x,
		Z:   z,
	}
}

// Valid returns true if resistivity and depth
// of the measurement are numbers.
func (m Measurement) Valid() bool {
	return !math.IsNaN(m.Rho) && !math.IsNaN(m.Z)
}

// Shift returns a copy of the measurement
// with all the electrode indices decreased by d.
func (m Measurement) Shift(d int) Measurement {
	m.A -= d
	m.B -= d
	m.M -= d
	m.N -= d
	return m
}

// RhoText returns the resistivity as written in the source file.
func (m Measurement) RhoText() string {
	return numText(m.text[0], m.Rho)
}

// XText returns the x coordinate as written in the source file.
func (m Measurement) XText() string {
	return numText(m.text[1], m.X)
}

// ZText returns the z coordinate as written in the source file.
func (m Measurement) ZText() string {
	return numText(m.text[2], m.Z)
}

func numText(s string, v float64) string {
	if s != "" {
		return s
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// A Record is the content of a raw survey dump.
type Record struct {
	// Header holds the instrument comment lines
	// found before the data section.
	Header []string

	Electrodes []Electrode
	Data       []Measurement
}

// Options define how a raw dump is read
// and how it is written as a normalized table.
type Options struct {
	Layout Layout

	// If Offset is true,
	// electrode indices will be rebased to start at 1.
	Offset bool

	// Field positions of the x and z pseudo-coordinates.
	XField int
	ZField int
}

// DefaultOptions returns the options
// used by most instrument dumps.
func DefaultOptions() Options {
	return Options{
		Layout: WithXZ,
		Offset: true,
		XField: 18,
		ZField: 20,
	}
}

// Validate returns an error
// if the options are not valid.
func (o Options) Validate() error {
	if o.Layout != WithXZ && o.Layout != WithoutXZ {
		return fmt.Errorf("unknown layout %d", o.Layout)
	}
	for _, f := range []int{o.XField, o.ZField} {
		if f <= fieldN || f >= MinFields {
			return fmt.Errorf("invalid coordinate field %d: must be between %d and %d", f, fieldN+1, MinFields-1)
		}
	}
	if o.XField == o.ZField {
		return fmt.Errorf("x and z fields must be different")
	}
	return nil
}

// Parse reads a raw survey dump.
//
// Electrode positions are read from lines of the form
//
//	* Electrode [1] = 0.000 0.000 0.000 ...
//
// between the "* Electrode positions"
// and "* Remote electrode positions" markers.
// The y coordinate is ignored.
//
// Measurements are read after a line
// containing the "* Data" marker inside an asterisk border.
// Lines with less than MinFields fields are ignored.
//
// If o.Offset is true,
// electrode indices of the measurements are rebased
// (see CorrectOffsets).
func Parse(r io.Reader, o Options) (*Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rec := &Record{}
	inElectrodes := false
	doneElectrodes := false
	inData := false
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")

		if !inData {
			if strings.HasPrefix(line, "*") {
				rec.Header = append(rec.Header, line)
			}
			if strings.Contains(line, dataMark) && strings.Contains(line, dataBorder) {
				inData = true
				continue
			}
			if doneElectrodes {
				continue
			}
			if strings.Contains(line, electrodeMark) {
				inElectrodes = true
				continue
			}
			if strings.Contains(line, remoteMark) {
				inElectrodes = false
				doneElectrodes = true
				continue
			}
			if inElectrodes && strings.Contains(line, electrodeLine) {
				e, ok := parseElectrode(line, len(rec.Electrodes)+1)
				if ok {
					rec.Electrodes = append(rec.Electrodes, e)
				}
			}
			continue
		}

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "*") {
			continue
		}
		m, err := parseMeasurement(line, o)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %w", ln, err)
		}
		if m == nil {
			continue
		}
		rec.Data = append(rec.Data, *m)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rec.Header) == 0 {
		return nil, fmt.Errorf("%w: instrument header not found", ErrFormat)
	}

	if o.Offset {
		rec.Data = CorrectOffsets(rec.Data)
	}
	return rec, nil
}

func parseElectrode(line string, def int) (Electrode, bool) {
	_, val, ok := strings.Cut(line, "=")
	if !ok {
		return Electrode{}, false
	}
	parts := strings.Fields(val)
	if len(parts) < 3 {
		return Electrode{}, false
	}

	e := Electrode{
		Index: def,
		x:     parts[0],
		z:     parts[2],
	}
	if i := strings.Index(line, "["); i >= 0 {
		if j := strings.Index(line[i:], "]"); j > 0 {
			if v, err := strconv.Atoi(strings.TrimSpace(line[i+1 : i+j])); err == nil {
				e.Index = v
			}
		}
	}
	e.X = parseNum(e.x)
	e.Z = parseNum(e.z)
	return e, true
}

// ParseMeasurement returns nil
// if the line has too few fields.
func parseMeasurement(line string, o Options) (*Measurement, error) {
	parts := strings.Fields(line)
	if len(parts) < MinFields {
		return nil, nil
	}

	var idx [4]int
	for i, f := range []int{fieldA, fieldB, fieldM, fieldN} {
		v, err := strconv.Atoi(parts[f])
		if err != nil {
			// some instruments write indices as decimals
			fv, ferr := strconv.ParseFloat(parts[f], 64)
			if ferr != nil || fv != math.Trunc(fv) {
				return nil, fmt.Errorf("%w: field %d: invalid electrode index %q", ErrFormat, f, parts[f])
			}
			v = int(fv)
		}
		idx[i] = v
	}

	m := &Measurement{
		A:    idx[0],
		B:    idx[1],
		M:    idx[2],
		N:    idx[3],
		text: [3]string{parts[fieldRho], parts[o.XField], parts[o.ZField]},
	}
	m.Rho = parseNum(m.text[0])
	m.X = parseNum(m.text[1])
	m.Z = parseNum(m.text[2])
	return m, nil
}

// ParseNum returns NaN
// if the string is not a number.
func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Offset returns the value that must be subtracted
// from electrode indices
// so the smallest current electrode (a)
// is equal to 1.
func Offset(data []Measurement) int {
	if len(data) == 0 {
		return 0
	}
	min := data[0].A
	for _, m := range data[1:] {
		if m.A < min {
			min = m.A
		}
	}
	return min - 1
}

// CorrectOffsets returns a new slice of measurements
// with electrode indices rebased
// so the smallest a index is 1.
// The spacing between indices is preserved.
func CorrectOffsets(data []Measurement) []Measurement {
	d := Offset(data)
	out := make([]Measurement, len(data))
	for i, m := range data {
		out[i] = m.Shift(d)
	}
	return out
}

// NegativeRho returns the number of measurements
// with a negative apparent resistivity.
func NegativeRho(data []Measurement) int {
	var n int
	for _, m := range data {
		if m.Rho < 0 {
			n++
		}
	}
	return n
}
