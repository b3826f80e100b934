// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package runcmd implements a command to run
// the conversion and the calibration of a project
// in a single step.
package runcmd

import (
	"fmt"
	"log"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calib"
	"github.com/js-arias/ertsoil/cmd/ertsoil/calibcmd"
	"github.com/js-arias/ertsoil/cmd/ertsoil/convert"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
)

var Command = &command.Command{
	Usage: `run [--layout <value>] [--offset <value>] [--xfield <value>]
	[--mode <value>] [--manual <temperatures>]
	[--report <file>] [-v|--verbose] <project-file>`,
	Short: "convert and calibrate the surveys of a project",
	Long: `
Command run converts the raw survey dumps of an ertsoil project into
normalized measurement tables, and then calibrates the tables with the soil
temperature profiles. It is the same as running 'ertsoil convert' and then
'ertsoil calib'.

The argument of the command is the name of the project file.

The configuration is checked before any file is processed. As the
calibration requires the pseudo-depth of each measurement, the "noxz" layout
is rejected. A file that fails
on any stage is reported in the standard error and the process continues with
the next file.

The flags --layout, --offset, and --xfield are the same as in 'ertsoil
convert'. The flags --mode, --manual, --report, and --verbose are the same as
in 'ertsoil calib'.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var layoutFlag string
var offsetFlag string
var xField int
var modeFlag string
var manualFlag string
var verboseFlag bool
var reportFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&layoutFlag, "layout", "", "")
	c.Flags().StringVar(&offsetFlag, "offset", "", "")
	c.Flags().IntVar(&xField, "xfield", 0, "")
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

	// configuration
	o, err := convert.Options(p, layoutFlag, offsetFlag, xField)
	if err != nil {
		return err
	}
	if err := calib.CheckOptions(o); err != nil {
		return err
	}
	in, err := p.Dir(project.Surveys)
	if err != nil {
		return err
	}
	data, err := p.Dir(project.Data)
	if err != nil {
		return err
	}
	job, err := calibcmd.NewJob(p, o, modeFlag, manualFlag, c.Stderr(), verboseFlag)
	if err != nil {
		return err
	}

	logger := log.New(c.Stderr(), "", 0)
	done, failed, err := survey.ConvertDir(in, data, o, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "converted: %d\tfailed: %d\n", len(done), len(failed))

	var r calib.Report
	for _, f := range done {
		r.Results = append(r.Results, job.File(f))
	}
	calibcmd.PrintReport(c.Stdout(), r)
	return calibcmd.WriteReport(reportFlag, r)
}
