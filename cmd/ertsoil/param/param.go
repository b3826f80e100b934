// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the calibration parameters of a project.
package param

import (
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calparam"
	"github.com/js-arias/ertsoil/project"
)

var Command = &command.Command{
	Usage: `param [--file <file-name>]
	[--layout <value>] [--offset <value>]
	[--xfield <value>] [--zfield <value>]
	[--mode <value>] [--law <value>] [--a <value>] [--b <value>]
	<project-file>`,
	Short: "manage calibration parameters",
	Long: `
Command param manages the parameters used to convert raw survey dumps, to
match surveys with temperature profiles, and to estimate water content, as
defined for an ertsoil project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, or the flag
--file is defined, a new parameters file will be created and added to the
project.

The flag --layout sets the columns of the normalized tables. Valid values are
"xz" (the default), to write electrode indices, apparent resistivity, and x
and z pseudo-coordinates, and "noxz", to write only electrode indices and
apparent resistivity.

The flag --offset sets whether electrode indices are rebased so the smallest
current electrode is 1. By default it is true.

The flags --xfield and --zfield set the fields of a raw measurement line that
store the x and z pseudo-coordinates. By default they are 18 and 20. Some
instruments store x in field 16.

The flag --mode sets how surveys are matched with temperature profiles. Valid
values are "day" (the default), which uses the first profile of the survey
day, and "time", which uses the profile closest to the survey time.

The flag --law sets the water content law. Valid values are "default"
(246.47 * rho^-0.627) and "alternate" (211 * rho^-0.59). The flags --a and
--b set the coefficient and exponent of the law.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var paramFile string
var layoutFlag string
var offsetFlag string
var xField int
var zField int
var modeFlag string
var lawFlag string
var aFlag string
var bFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&layoutFlag, "layout", "", "")
	c.Flags().StringVar(&offsetFlag, "offset", "", "")
	c.Flags().IntVar(&xField, "xfield", 0, "")
	c.Flags().IntVar(&zField, "zfield", 0, "")
	c.Flags().StringVar(&modeFlag, "mode", "", "")
	c.Flags().StringVar(&lawFlag, "law", "", "")
	c.Flags().StringVar(&aFlag, "a", "", "")
	c.Flags().StringVar(&bFlag, "b", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	cp, err := p.Params()
	if err != nil {
		return err
	}
	if paramFile != "" {
		cp.SetName(paramFile)
	}
	if cp.Name() == "" {
		cp.SetName("params.tab")
	}

	// law must be set before the coefficients
	sets := []struct {
		param calparam.Param
		val   string
	}{
		{calparam.Layout, layoutFlag},
		{calparam.Offset, offsetFlag},
		{calparam.XField, intFlag(xField)},
		{calparam.ZField, intFlag(zField)},
		{calparam.Mode, modeFlag},
		{calparam.Law, lawFlag},
		{calparam.A, aFlag},
		{calparam.B, bFlag},
	}

	ed := false
	for _, s := range sets {
		if s.val == "" {
			continue
		}
		if err := cp.Set(s.param, s.val); err != nil {
			return fmt.Errorf("flag --%s: %v", s.param, err)
		}
		ed = true
	}

	if p.Path(project.Params) != cp.Name() {
		if err := cp.Write(); err != nil {
			return err
		}
		p.Add(project.Params, cp.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := cp.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), cp)
	return nil
}

func intFlag(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func printParams(w io.Writer, cp *calparam.P) {
	fmt.Fprintf(w, "file:    %s\n", cp.Name())
	for _, v := range cp.Values() {
		fmt.Fprintf(w, "%-8s %s\n", v[0]+":", v[1])
	}
}
