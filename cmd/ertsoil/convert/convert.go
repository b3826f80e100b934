// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package convert implements a command to convert
// raw survey dumps into normalized measurement tables.
package convert

import (
	"fmt"
	"log"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calparam"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
)

var Command = &command.Command{
	Usage: `convert [--layout <value>] [--offset <value>]
	[--xfield <value>] <project-file>`,
	Short: "convert raw survey dumps",
	Long: `
Command convert reads the raw survey dumps (tx0 files) of an ertsoil project
and writes them as normalized measurement tables, used by the inversion
engine and by the temperature calibration.

The argument of the command is the name of the project file. Raw dumps are
read from the "surveys" directory of the project, and the normalized tables
are written in the "data" directory, with the same name and the extension
".txt".

By default the layout, the offset correction, and the coordinate fields are
taken from the project parameters (see 'ertsoil help param'). The flags
--layout, --offset, and --xfield override the parameters for this run.

A file that can not be read or converted is reported in the standard error
and the conversion continues with the next file. Type 'ertsoil help
tx0-files' for a description of the raw dump format.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var layoutFlag string
var offsetFlag string
var xField int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&layoutFlag, "layout", "", "")
	c.Flags().StringVar(&offsetFlag, "offset", "", "")
	c.Flags().IntVar(&xField, "xfield", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	o, err := Options(p, layoutFlag, offsetFlag, xField)
	if err != nil {
		return err
	}

	in, err := p.Dir(project.Surveys)
	if err != nil {
		return err
	}
	out, err := p.Dir(project.Data)
	if err != nil {
		return err
	}

	logger := log.New(c.Stderr(), "", 0)
	done, failed, err := survey.ConvertDir(in, out, o, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "converted: %d\tfailed: %d\n", len(done), len(failed))
	return nil
}

// Options returns the conversion options of a project
// with the values of the command flags.
// Empty values keep the project value.
func Options(p *project.Project, layout, offset string, xField int) (survey.Options, error) {
	cp, err := p.Params()
	if err != nil {
		return survey.Options{}, err
	}
	if layout != "" {
		if err := cp.Set(calparam.Layout, layout); err != nil {
			return survey.Options{}, fmt.Errorf("flag --layout: %v", err)
		}
	}
	if offset != "" {
		if err := cp.Set(calparam.Offset, offset); err != nil {
			return survey.Options{}, fmt.Errorf("flag --offset: %v", err)
		}
	}
	if xField > 0 {
		if err := cp.Set(calparam.XField, fmt.Sprintf("%d", xField)); err != nil {
			return survey.Options{}, fmt.Errorf("flag --xfield: %v", err)
		}
	}
	o := cp.Options()
	if err := o.Validate(); err != nil {
		return survey.Options{}, err
	}
	return o, nil
}
