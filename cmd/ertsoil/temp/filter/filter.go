// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package filter implements a command to filter
// a soil temperature log
// with the dates of the surveys of a project.
package filter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/outfile"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
)

var Command = &command.Command{
	Usage: `filter [-o|--output <file>] [--set] <project-file>`,
	Short: "filter a temperature log with the survey dates",
	Long: `
Command filter reads the raw survey dumps of an ertsoil project, and keeps
the rows of the soil temperature log of the project whose calendar day is the
day of a survey.

The argument of the command is the name of the project file.

The date of a survey is read from the name of the raw dump, that must encode
a date, for example "2024-07-10_12-00-00.tx0", "10_07_2024.tx0", or
"2024_07_10.tx0". Files without a date are reported in the standard error.

By default the filtered log is written in the standard output. Use the flag
--output, or -o, to write the filtered log in a file. If the flag --set is
defined, the output file will be used as the temperature log of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var setFlag bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().BoolVar(&setFlag, "set", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if setFlag && output == "" {
		return c.UsageError("flag --set requires an output file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	dir, err := p.Dir(project.Surveys)
	if err != nil {
		return err
	}
	tName, err := p.Dir(project.Temperature)
	if err != nil {
		return err
	}

	files, err := survey.ListFiles(dir, survey.RawExt)
	if err != nil {
		return err
	}
	dates, unknown := tempseries.SurveyDates(files)
	for _, u := range unknown {
		fmt.Fprintf(c.Stderr(), "%s: date: no date in file name\n", filepath.Base(u))
	}
	if len(dates) == 0 {
		return fmt.Errorf("no survey dates found in %q", dir)
	}

	f, err := os.Open(tName)
	if err != nil {
		return err
	}
	defer f.Close()

	var n int
	filter := func(w io.Writer) error {
		n, err = tempseries.Filter(w, f, dates)
		if err != nil {
			return fmt.Errorf("on file %q: %v", tName, err)
		}
		return nil
	}

	if output == "" {
		return filter(c.Stdout())
	}
	if err := outfile.Write(output, filter); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "dates: %d\trows: %d\n", len(dates), n)

	if setFlag {
		p.Add(project.Temperature, output)
		if err := p.Write(); err != nil {
			return err
		}
	}
	return nil
}
