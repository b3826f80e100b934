// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package calibcmd implements a command to calibrate
// normalized measurement tables
// with soil temperature profiles.
package calibcmd

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calib"
	"github.com/js-arias/ertsoil/cmd/ertsoil/convert"
	"github.com/js-arias/ertsoil/outfile"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
)

var Command = &command.Command{
	Usage: `calib [--mode <value>] [--manual <temperatures>]
	[--report <file>] [-v|--verbose] <project-file>`,
	Short: "calibrate resistivity with soil temperature",
	Long: `
Command calib reads the normalized measurement tables of an ertsoil project
and corrects the apparent resistivity of each measurement to the reference
temperature of 25 °C, using the law:

	corrected = rho * (1 + 0.025 * (T - 25))

The argument of the command is the name of the project file. Tables are read
from the "data" directory of the project. Two tables are written for each
input table, with the same name: a detailed table, in the "detailed"
directory, with the interpolated temperature and the corrected resistivity of
each measurement, and a simplified table, in the "simplified" directory, with
the format used by the inversion engine.

The temperature T of a measurement is interpolated from the temperature
profile at the pseudo-depth (z) of the measurement. Below the deepest sensor,
or above the shallowest sensor, the temperature of that sensor is used.

The temperature profile is taken from the "temperature" log of the project.
By default, the date is read from the start of the file name (for example
"2024-07-10_line1.txt"), and the first profile of that day is used. With
--mode time, the date and time are read from the file name (for example
"2024-07-10_12-00-00.txt"), and the closest profile in time is used. The flag
overrides the mode of the project parameters.

The flag --manual sets a single temperature profile used for all tables,
instead of the temperature log. The value is a list of six temperatures,
separated by commas, for the sensors at -4, -3.5, -3, -1.5, -1, and -0.5 m.

Tables must be converted with the "xz" layout (the default), as the
pseudo-depth of each measurement is required. Tables without a date or
without a temperature profile are skipped. Tables that can not be read, or
without valid pseudo-depths, are reported as failed. By default only skipped and
failed tables are reported in the standard error, use the flag --verbose, or
-v, to report every table. The flag --report sets the name of a file to write
a report of the calibration, as a YAML document with the outcome of each
table.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var modeFlag string
var manualFlag string
var verboseFlag bool
var reportFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&modeFlag, "mode", "", "")
	c.Flags().StringVar(&manualFlag, "manual", "", "")
	c.Flags().BoolVar(&verboseFlag, "verbose", false, "")
	c.Flags().BoolVar(&verboseFlag, "v", false, "")
	c.Flags().StringVar(&reportFlag, "report", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	o, err := convert.Options(p, "", "", 0)
	if err != nil {
		return err
	}
	job, err := NewJob(p, o, modeFlag, manualFlag, c.Stderr(), verboseFlag)
	if err != nil {
		return err
	}

	data, err := p.Dir(project.Data)
	if err != nil {
		return err
	}
	r, err := job.Dir(data)
	if err != nil {
		return err
	}
	PrintReport(c.Stdout(), r)
	return WriteReport(reportFlag, r)
}

// NewJob returns a calibration job
// for a project.
// The options are the conversion options
// used to write the normalized tables.
// The mode and the manual profile
// override the project values if they are not empty.
// Any configuration error is returned
// before a file is processed.
func NewJob(p *project.Project, o survey.Options, mode, manual string, stderr io.Writer, verbose bool) (calib.Job, error) {
	if err := calib.CheckOptions(o); err != nil {
		return calib.Job{}, err
	}
	cp, err := p.Params()
	if err != nil {
		return calib.Job{}, err
	}
	m := cp.Mode()
	if mode != "" {
		m, err = tempseries.ParseMode(mode)
		if err != nil {
			return calib.Job{}, fmt.Errorf("flag --mode: %v", err)
		}
	}

	det, err := p.Dir(project.Detailed)
	if err != nil {
		return calib.Job{}, err
	}
	simp, err := p.Dir(project.Simplified)
	if err != nil {
		return calib.Job{}, err
	}

	logger := log.New(stderr, "", 0)
	var series tempseries.Series
	if manual != "" {
		pf, err := ManualProfile(manual)
		if err != nil {
			return calib.Job{}, fmt.Errorf("flag --manual: %v", err)
		}
		series = tempseries.Fixed(pf)
	} else {
		series = p.Temperature(m, logger)
	}

	job := calib.Job{
		Series:     series,
		Detailed:   det,
		Simplified: simp,
		Logger:     logger,
	}
	if !verbose {
		job.Logger = log.New(&quiet{w: stderr}, "", 0)
	}
	return job, nil
}

// ManualProfile returns a temperature profile
// from a list of comma separated temperatures.
func ManualProfile(s string) (tempseries.Profile, error) {
	f := strings.Split(s, ",")
	temps := make([]float64, 0, len(f))
	for _, v := range f {
		t, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return tempseries.Profile{}, fmt.Errorf("invalid temperature %q", v)
		}
		temps = append(temps, t)
	}
	return tempseries.Manual(time.Time{}, temps)
}

// PrintReport prints a summary of a calibration batch.
func PrintReport(w io.Writer, r calib.Report) {
	var rows int
	for _, res := range r.Results {
		rows += res.Rows
	}
	fmt.Fprintf(w, "calibrated: %d\tskipped: %d\tfailed: %d\trows: %d\n", r.Count(calib.Done), r.Count(calib.Skipped), r.Count(calib.Failed), rows)
}

// WriteReport writes a calibration report
// in a YAML file.
// If the name is empty,
// no report is written.
func WriteReport(name string, r calib.Report) error {
	if name == "" {
		return nil
	}
	return outfile.Write(name, r.WriteYAML)
}

// Quiet is a writer that only writes log lines
// of files that were not calibrated.
type quiet struct {
	w io.Writer
}

func (q *quiet) Write(p []byte) (int, error) {
	if strings.Contains(string(p), ": calibrated with profile ") {
		return len(p), nil
	}
	return q.w.Write(p)
}
