// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package match implements a command to print
// the temperature profile matched with each survey table.
package match

import (
	"fmt"
	"io"
	"log"
	"math"
	"path/filepath"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calib"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
)

var Command = &command.Command{
	Usage: "match [--mode <value>] <project-file>",
	Short: "print the temperature profile of each table",
	Long: `
Command match prints the temperature profile that will be used to calibrate
each normalized measurement table of an ertsoil project, without doing the
calibration.

The argument of the command is the name of the project file.

The output is a tab-delimited table with the name of the table, the time of
the matched profile, and the temperature at each sensor depth. Tables without
a matching profile are printed with an empty profile time.

The flag --mode overrides the matching mode of the project parameters. Valid
values are "day" and "time".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var modeFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&modeFlag, "mode", "", "")
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
	m := cp.Mode()
	if modeFlag != "" {
		m, err = tempseries.ParseMode(modeFlag)
		if err != nil {
			return fmt.Errorf("flag --mode: %v", err)
		}
	}

	dir, err := p.Dir(project.Data)
	if err != nil {
		return err
	}
	files, err := survey.ListFiles(dir, survey.TableExt)
	if err != nil {
		return err
	}

	s := p.Temperature(m, log.New(c.Stderr(), "", 0))
	printMatches(c.Stdout(), files, s)
	return nil
}

func printMatches(w io.Writer, files []string, s tempseries.Series) {
	fmt.Fprintf(w, "file\tprofile")
	for _, d := range tempseries.Depths() {
		fmt.Fprintf(w, "\t%g", d)
	}
	fmt.Fprintf(w, "\n")

	j := calib.Job{Series: s}
	for _, f := range files {
		name := filepath.Base(f)
		pf, err := j.Match(name)
		if err != nil {
			fmt.Fprintf(w, "%s\t\n", name)
			continue
		}
		fmt.Fprintf(w, "%s\t%s", name, pf.Time.Format(time.DateTime))
		for _, v := range pf.Temps {
			if math.IsNaN(v) {
				fmt.Fprintf(w, "\t")
				continue
			}
			fmt.Fprintf(w, "\t%.2f", v)
		}
		fmt.Fprintf(w, "\n")
	}
}
