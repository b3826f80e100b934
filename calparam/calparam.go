// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package calparam implements reading and writing
// of the ertsoil calibration parameters.
package calparam

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/ertsoil/outfile"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Layout is the layout of the normalized tables,
	// either "xz" or "noxz".
	Layout Param = "layout"

	// Offset indicates if electrode indices
	// are rebased to start at 1.
	Offset Param = "offset"

	// XField is the field of the raw measurement line
	// with the x pseudo-coordinate.
	XField Param = "xfield"

	// ZField is the field of the raw measurement line
	// with the z pseudo-coordinate.
	ZField Param = "zfield"

	// Mode is the matching mode of the temperature series,
	// either "day" or "time".
	Mode Param = "mode"

	// Law sets both coefficients
	// of the water content law
	// from a named law,
	// either "default" or "alternate".
	Law Param = "law"

	// A is the coefficient of the water content law.
	A Param = "a"

	// B is the exponent of the water content law.
	B Param = "b"
)

// P represents a collection of calibration parameters.
type P struct {
	name string // file name

	opts survey.Options
	mode tempseries.Mode
	law  water.Law
}

// New creates a new parameter collection
// with the default values.
func New(name string) *P {
	return &P{
		name: name,
		opts: survey.DefaultOptions(),
		mode: tempseries.ByDay,
		law:  water.DefaultLaw,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# ertsoil calibration parameters
//	parameter	value
//	layout	xz
//	offset	true
//	xfield	18
//	zfield	20
//	mode	day
//	a	246.47
//	b	-0.627
//
// Parameters not defined in the file
// keep their default value.
// Any invalid value is an error.
func Read(name string) (*P, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		param := Param(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "value"
		if err := p.Set(param, row[fields[f]]); err != nil {
			return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
		}
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return p, nil
}

// Set sets a parameter from a string value.
func (p *P) Set(param Param, v string) error {
	v = strings.TrimSpace(v)
	switch param {
	case Layout:
		l, err := survey.ParseLayout(v)
		if err != nil {
			return err
		}
		p.opts.Layout = l
	case Offset:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid offset value %q", v)
		}
		p.opts.Offset = b
	case XField:
		x, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		p.opts.XField = x
	case ZField:
		z, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		p.opts.ZField = z
	case Mode:
		m, err := tempseries.ParseMode(v)
		if err != nil {
			return err
		}
		p.mode = m
	case Law:
		l, err := water.ParseLaw(v)
		if err != nil {
			return err
		}
		p.law = l
	case A:
		a, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		p.law.A = a
	case B:
		b, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		p.law.B = b
	default:
		return fmt.Errorf("unknown parameter %q", param)
	}
	return nil
}

// Validate returns an error
// if the parameters are not valid.
func (p *P) Validate() error {
	if err := p.opts.Validate(); err != nil {
		return err
	}
	if err := p.law.Validate(); err != nil {
		return err
	}
	return nil
}

// Name returns the file name of the parameters.
func (p *P) Name() string {
	return p.name
}

// SetName sets the name of a parameter collection.
func (p *P) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	p.name = name
}

// Options returns the options
// used to read raw survey dumps.
func (p *P) Options() survey.Options {
	return p.opts
}

// Mode returns the matching mode
// of the temperature series.
func (p *P) Mode() tempseries.Mode {
	return p.mode
}

// Law returns the water content law.
func (p *P) Law() water.Law {
	return p.law
}

// Values returns the parameters
// as pairs of names and values,
// in the order used in a parameter file.
func (p *P) Values() [][2]string {
	return [][2]string{
		{string(Layout), p.opts.Layout.String()},
		{string(Offset), strconv.FormatBool(p.opts.Offset)},
		{string(XField), strconv.Itoa(p.opts.XField)},
		{string(ZField), strconv.Itoa(p.opts.ZField)},
		{string(Mode), p.mode.String()},
		{string(A), strconv.FormatFloat(p.law.A, 'g', -1, 64)},
		{string(B), strconv.FormatFloat(p.law.B, 'g', -1, 64)},
	}
}

// Write writes a parameter collection into a file.
func (p *P) Write() error {
	if err := p.Validate(); err != nil {
		return err
	}

	err := outfile.Write(p.name, func(w io.Writer) error {
		fmt.Fprintf(w, "# ertsoil calibration parameters\n")
		fmt.Fprintf(w, "# data save on: %s\n", time.Now().Format(time.RFC3339))
		tsv := csv.NewWriter(w)
		tsv.Comma = '\t'
		tsv.UseCRLF = true

		if err := tsv.Write(header); err != nil {
			return fmt.Errorf("while writing header: %v", err)
		}
		for _, v := range p.Values() {
			if err := tsv.Write(v[:]); err != nil {
				return err
			}
		}

		tsv.Flush()
		if err := tsv.Error(); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}
