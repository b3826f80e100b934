// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package survey

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/js-arias/ertsoil/outfile"
)

// Extension of raw survey dumps.
const RawExt = ".tx0"

// Extension of normalized tables.
const TableExt = ".txt"

// TableName returns the name of the normalized table
// for a raw dump.
func TableName(raw string) string {
	base := filepath.Base(raw)
	if strings.HasSuffix(strings.ToLower(base), RawExt) {
		return base[:len(base)-len(RawExt)] + TableExt
	}
	return base + TableExt
}

// ReadFile reads a raw survey dump from a file.
func ReadFile(name string, o Options) (*Record, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Parse(f, o)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return rec, nil
}

// ConvertFile reads a raw dump
// and writes its normalized table
// in the output directory.
// It returns the name of the written file.
//
// The logger can be nil.
func ConvertFile(name, outDir string, o Options, logger *log.Logger) (string, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	rec, err := ReadFile(name, o)
	if err != nil {
		return "", err
	}
	if len(rec.Electrodes) == 0 {
		logger.Printf("%s: convert: no electrode positions found", filepath.Base(name))
	}
	if len(rec.Data) == 0 {
		logger.Printf("%s: convert: no measurements found", filepath.Base(name))
	}
	if n := NegativeRho(rec.Data); n > 0 {
		logger.Printf("%s: convert: %d measurements with negative resistivity", filepath.Base(name), n)
	}

	out := filepath.Join(outDir, TableName(name))
	err = outfile.Write(out, func(w io.Writer) error {
		return Write(w, rec, o.Layout)
	})
	if err != nil {
		return "", fmt.Errorf("on file %q: %v", out, err)
	}
	return out, nil
}

// A Failure is a file that could not be processed.
type Failure struct {
	File  string
	Stage string
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", filepath.Base(f.File), f.Stage, f.Err)
}

// ConvertDir converts all the raw dumps of a directory.
// A file that fails is logged and skipped,
// and the conversion continues with the next file.
//
// It returns the written files
// and the files that failed.
func ConvertDir(inDir, outDir string, o Options, logger *log.Logger) ([]string, []Failure, error) {
	if err := o.Validate(); err != nil {
		return nil, nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	files, err := ListFiles(inDir, RawExt)
	if err != nil {
		return nil, nil, err
	}

	var done []string
	var failed []Failure
	for _, f := range files {
		out, err := ConvertFile(f, outDir, o, logger)
		if err != nil {
			fl := Failure{File: f, Stage: "convert", Err: err}
			logger.Print(fl.Error())
			failed = append(failed, fl)
			continue
		}
		logger.Printf("%s: converted to %s", filepath.Base(f), out)
		done = append(done, out)
	}
	return done, failed, nil
}

// ListFiles returns the files of a directory
// with the given extension,
// sorted by name.
func ListFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
}
