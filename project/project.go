// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of ertsoil project files.
//
// An ertsoil project is a tab-delimited file (TSV)
// used to store the different data files and directories
// required by ertsoil commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/js-arias/ertsoil/outfile"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// Directory with the raw survey dumps
	// (tx0 files).
	Surveys Dataset = "surveys"

	// Directory for the normalized measurement tables.
	Data Dataset = "data"

	// File for the soil temperature log.
	Temperature Dataset = "temperature"

	// Directory for the detailed calibrated tables.
	Detailed Dataset = "detailed"

	// Directory for the simplified calibrated tables,
	// used by the inversion engine.
	Simplified Dataset = "simplified"

	// File for the calibration parameters.
	Params Dataset = "params"

	// File for the temperature control points
	// used in water content estimation.
	TempField Dataset = "tempfield"

	// Directory for the water content tables.
	Water Dataset = "water"
)

// A Project represents a collection of paths
// for particular datasets.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[Dataset]string),
	}
}

var header = []string{
	"dataset",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# ertsoil project files
//	dataset	path
//	surveys	raw
//	data	normalized
//	temperature	temperature.txt
//	detailed	calibrated/detailed
//	simplified	calibrated/simplified
//	params	params.tab
func Read(name string) (*Project, error) {
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

	p := New()
	p.name = name
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "dataset"
		s := Dataset(strings.ToLower(strings.TrimSpace(row[fields[f]])))

		f = "path"
		path := row[fields[f]]
		p.paths[s] = path
	}

	return p, nil
}

// ParseDataset returns a dataset from its name.
func ParseDataset(s string) (Dataset, error) {
	set := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Datasets(), set) {
		return "", fmt.Errorf("unknown dataset %q", s)
	}
	return set, nil
}

// Datasets returns the valid datasets.
func Datasets() []Dataset {
	return []Dataset{
		Surveys,
		Data,
		Temperature,
		Detailed,
		Simplified,
		Params,
		TempField,
		Water,
	}
}

// Add adds a filepath of a dataset to a given project.
// It returns the previous value
// for the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}

	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for s := range p.paths {
		sets = append(sets, s)
	}
	slices.Sort(sets)
	return sets
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Name returns the file name of the project.
func (p *Project) Name() string {
	return p.name
}

// Write writes a project into a file.
func (p *Project) Write() error {
	err := outfile.Write(p.name, func(w io.Writer) error {
		bw := bufio.NewWriter(w)
		fmt.Fprintf(bw, "# ertsoil project files\n")
		fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
		tsv := csv.NewWriter(bw)
		tsv.Comma = '\t'
		tsv.UseCRLF = true

		if err := tsv.Write(header); err != nil {
			return fmt.Errorf("while writing header: %v", err)
		}

		sets := p.Sets()
		for _, s := range sets {
			row := []string{
				string(s),
				p.paths[s],
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
	})
	if err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}
