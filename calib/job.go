// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package calib

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/js-arias/ertsoil/outfile"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
)

// ErrNoDate is returned when the date of a survey
// can not be found in its file name.
var ErrNoDate = errors.New("date not found in file name")

// ErrNoTemperature is returned when there is no
// temperature profile for the date of a survey.
var ErrNoTemperature = errors.New("temperature profile not found")

// ErrNoDepth is returned when no measurement of a table
// has a pseudo-depth.
var ErrNoDepth = errors.New("no depth column")

// ErrLayout is returned when tables
// are converted without pseudo-depths.
var ErrLayout = errors.New("layout without pseudo-depths")

// CheckOptions returns an error
// if the tables converted with the given options
// can not be calibrated.
func CheckOptions(o survey.Options) error {
	if o.Layout == survey.WithoutXZ {
		return fmt.Errorf("%w: layout %q can not be calibrated", ErrLayout, o.Layout)
	}
	return nil
}

// Status is the outcome of calibrating a file.
type Status int

// Valid status values.
const (
	Done Status = iota

	// Skipped files are files without a temperature profile.
	Skipped

	// Failed files are files that can not be read or written.
	Failed
)

func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Skipped:
		return "skipped"
	}
	return "failed"
}

// A Result is the outcome of calibrating a file.
type Result struct {
	File   string
	Status Status
	Err    error

	// Profile used for the calibration.
	Profile time.Time

	// Number of written rows
	// and of dropped data lines.
	Rows    int
	Dropped int

	// Number of measurements outside the sensor depths,
	// calibrated with the nearest sensor.
	Outside int

	// Output files.
	Detailed   string
	Simplified string
}

// A Report is the outcome of a batch.
type Report struct {
	Results []Result
}

// Count returns the number of files
// with the given status.
func (r Report) Count(s Status) int {
	var n int
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// A Job calibrates normalized tables
// using a temperature series.
type Job struct {
	Series tempseries.Series

	// Output directories
	// for the detailed and simplified tables.
	Detailed   string
	Simplified string

	// Logger receives a line for each processed file.
	// It can be nil.
	Logger *log.Logger
}

func (j Job) logger() *log.Logger {
	if j.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return j.Logger
}

// File calibrates a normalized table.
//
// The date of the survey is taken from the file name,
// and used to find the temperature profile.
// Both output tables are written,
// or none of them.
func (j Job) File(name string) Result {
	lg := j.logger()
	base := filepath.Base(name)
	res := Result{File: name}

	fail := func(stage string, st Status, err error) Result {
		res.Status = st
		res.Err = err
		lg.Printf("%s: %s: %v", base, stage, err)
		return res
	}

	p, err := j.Match(base)
	if errors.Is(err, ErrNoTemperature) {
		return fail("temperature", Skipped, err)
	}
	if err != nil {
		return fail("date", Skipped, err)
	}
	res.Profile = p.Time

	tab, err := readTable(name)
	if err != nil {
		return fail("read", Failed, err)
	}
	res.Dropped = tab.Dropped
	if len(tab.Data) == 0 && tab.Dropped > 0 {
		return fail("read", Failed, fmt.Errorf("%w: %d data lines without valid values", ErrNoDepth, tab.Dropped))
	}
	if tab.Dropped > 0 {
		lg.Printf("%s: read: %d data lines with invalid values dropped", base, tab.Dropped)
	}

	rows, err := Calibrate(tab.Data, p)
	if err != nil {
		return fail("calibrate", Failed, err)
	}
	res.Rows = len(rows)
	if n := outside(rows, p); n > 0 {
		res.Outside = n
		lg.Printf("%s: calibrate: %d measurements outside the sensor depths", base, n)
	}

	det := filepath.Join(j.Detailed, base)
	simp := filepath.Join(j.Simplified, base)
	err = outfile.WriteAll(map[string]func(io.Writer) error{
		det: func(w io.Writer) error {
			return WriteDetailed(w, tab.Header, rows)
		},
		simp: func(w io.Writer) error {
			return WriteSimplified(w, tab.Header, rows)
		},
	})
	if err != nil {
		return fail("write", Failed, err)
	}
	res.Detailed = det
	res.Simplified = simp
	res.Status = Done
	lg.Printf("%s: calibrated with profile %s: %d rows", base, p.Time.Format(time.DateTime), len(rows))
	return res
}

// Match returns the temperature profile
// of a survey file.
// It returns ErrNoDate if the file name has no date,
// and ErrNoTemperature if the series
// has no profile for the date.
func (j Job) Match(name string) (tempseries.Profile, error) {
	name = filepath.Base(name)
	t, err := j.surveyTime(name)
	if err != nil {
		return tempseries.Profile{}, err
	}
	p, ok := j.Series.Lookup(t)
	if !ok {
		return tempseries.Profile{}, fmt.Errorf("%w for %s", ErrNoTemperature, t.Format(tempseries.DateLayout))
	}
	return p, nil
}

// Dir calibrates all the normalized tables of a directory.
// A file that fails is logged and skipped.
// The error is only returned if the directory
// can not be read.
func (j Job) Dir(dir string) (Report, error) {
	files, err := survey.ListFiles(dir, survey.TableExt)
	if err != nil {
		return Report{}, err
	}

	var r Report
	for _, f := range files {
		r.Results = append(r.Results, j.File(f))
	}
	return r, nil
}

// SurveyTime returns the time of a survey
// from its file name.
//
// When the series is keyed by day,
// the leading date of the file name is used
// (for example "2024-07-10_line1.txt"),
// or any of the date patterns of a file stamp.
// When the series is keyed by time
// the file stamp is used
// (for example "2024-07-10_12-00-00.txt"),
// if the stamp has no clock time,
// the midnight of the day is used.
func (j Job) surveyTime(name string) (time.Time, error) {
	if j.Series.Mode() == tempseries.ByDay {
		if t, ok := tempseries.LeadingDate(name); ok {
			return t, nil
		}
	}
	s, ok := tempseries.FileStamp(name)
	if !ok {
		return time.Time{}, ErrNoDate
	}
	if j.Series.Mode() == tempseries.ByTime && s.Clock == "" {
		j.logger().Printf("%s: date: no time in file name, using midnight", name)
	}
	t, err := s.Time()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	return t, nil
}

// Outside returns the number of rows
// with a depth outside the range of the profile.
func outside(rows []Row, p tempseries.Profile) int {
	c, err := NewCurve(p.Depths, p.Temps)
	if err != nil {
		return 0
	}
	deep, shallow := c.Range()
	var n int
	for _, r := range rows {
		if r.Z < deep || r.Z > shallow {
			n++
		}
	}
	return n
}

func readTable(name string) (*survey.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := survey.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return t, nil
}
