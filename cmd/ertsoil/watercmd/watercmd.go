// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package watercmd implements a command to estimate
// the soil water content
// of the cells of an inverted resistivity section.
package watercmd

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/outfile"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/section"
	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

var Command = &command.Command{
	Usage: `water [--alt] [--date <date>]
	[--plot <file>] [--min <value>] [--max <value>]
	[--key <key-file>] [--gray]
	<project-file> <cell-file>...`,
	Short: "estimate soil water content",
	Long: `
Command water reads the cells of one or more inverted resistivity sections,
corrects the resistivity of each cell to the reference temperature of 25 °C,
and estimates the volumetric water content (in percent) of each cell, using
a power law of the corrected resistivity:

	water = a * corrected^b

The first argument of the command is the name of the project file. The rest
of the arguments are the cell files. Type 'ertsoil help cell-files' for a
description of the format.

The temperature of each cell is interpolated at the depth of the cell (its y
coordinate) from a set of temperature control points. By default the control
points are taken from the "tempfield" file of the project. Use the flag
--date, with a day in the YYYY-MM-DD format, to use the temperature profile of
that day from the temperature log of the project.

By default the law of the project parameters is used (246.47 * rho^-0.627
unless changed with 'ertsoil param'). The flag --alt uses the alternate law
(211 * rho^-0.59).

The results are written in the "water" directory of the project, with the
name of the cell file and the suffix "-water.tab". A summary of the water
content of each file is printed in the standard output. A file that can not
be processed is reported in the standard error, and the process continues
with the next file.

If the flag --plot is defined, a section of the water content will be drawn
for each file in the "water" directory of the project, with the name of the
flag value prefixed by the name of the cell file. The image format is taken from the extension of the flag value
(for example ".png"). The flags --min and --max set the range of the color
scale, by default from 0 to 30%.

The flag --key sets a key file with the colors of water content classes,
used instead of the color scale. A key file is a tab-delimited file with the
columns "min", the lower bound of the class (in percent), and "color", an RGB
value separated by commas. An optional column "gray" sets a gray scale value,
used if the flag --gray is defined. Here is an example of a key file:

	min	color	gray	comment
	0	165, 0, 38	20	dry
	10	253, 174, 97	80	moist
	20	171, 217, 233	160	wet
	`,
	SetFlags: setFlags,
	Run:      run,
}

var altFlag bool
var dateFlag string
var plotFlag string
var minFlag float64
var maxFlag float64
var keyFlag string
var grayFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&altFlag, "alt", false, "")
	c.Flags().StringVar(&dateFlag, "date", "", "")
	c.Flags().StringVar(&plotFlag, "plot", "", "")
	c.Flags().Float64Var(&minFlag, "min", section.MinWater, "")
	c.Flags().Float64Var(&maxFlag, "max", section.MaxWater, "")
	c.Flags().StringVar(&keyFlag, "key", "", "")
	c.Flags().BoolVar(&grayFlag, "gray", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting cell file")
	}
	if maxFlag <= minFlag {
		return fmt.Errorf("flag --max: value %.3f must be greater than %.3f", maxFlag, minFlag)
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	cp, err := p.Params()
	if err != nil {
		return err
	}
	law := cp.Law()
	if altFlag {
		law = water.AltLaw
	}
	if err := law.Validate(); err != nil {
		return err
	}

	pts, err := controlPoints(p, dateFlag, log.New(c.Stderr(), "", 0))
	if err != nil {
		return err
	}
	out, err := p.Dir(project.Water)
	if err != nil {
		return err
	}

	var col section.Colorer = section.Scale{
		Min:      minFlag,
		Max:      maxFlag,
		Gradient: section.RainbowPurpleToRed{},
	}
	if keyFlag != "" {
		k, err := section.ReadKeyFile(keyFlag)
		if err != nil {
			return err
		}
		k.SetGray(grayFlag)
		col = k
	}

	job := Job{
		Points:  pts,
		Law:     law,
		Out:     out,
		Plot:    plotFlag,
		Colorer: col,
		Logger:  log.New(c.Stderr(), "", 0),
	}
	done, failed := job.Files(c.Stdout(), args[1:])
	fmt.Fprintf(c.Stdout(), "done: %d\tfailed: %d\n", done, failed)
	return nil
}

// A Job estimates the water content
// of a set of cell files.
type Job struct {
	// Temperature control points
	Points []water.Point

	// Water content law
	Law water.Law

	// Output directory
	Out string

	// Suffix of the plot files,
	// with the image format as extension.
	// If empty,
	// no plot is drawn.
	Plot    string
	Colorer section.Colorer

	// Logger for the files that fail.
	// If nil, nothing is logged.
	Logger *log.Logger
}

// Files processes a set of cell files
// and prints the summary of each file in w.
// A file that fails is logged
// and the process continues with the next file.
// It returns the number of files processed
// and the number of files that fail.
func (j Job) Files(w io.Writer, names []string) (done, failed int) {
	lg := j.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	for _, name := range names {
		stage, err := j.file(w, name)
		if err != nil {
			lg.Printf("%s: %s: %v", filepath.Base(name), stage, err)
			failed++
			continue
		}
		done++
	}
	return done, failed
}

func (j Job) file(w io.Writer, name string) (stage string, err error) {
	cells, err := water.ReadCellFile(name)
	if err != nil {
		return "read", err
	}
	if err := water.Correct(cells, j.Points, j.Law); err != nil {
		return "correct", err
	}

	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	oName := filepath.Join(j.Out, base+"-water.tab")
	err = outfile.Write(oName, func(w io.Writer) error {
		return water.WriteCells(w, cells, j.Law)
	})
	if err != nil {
		return "write", err
	}
	printSummary(w, base, water.Summarize(cells))

	if j.Plot == "" {
		return "", nil
	}
	plt, err := section.Water(base, cells, j.Colorer)
	if err != nil {
		return "plot", err
	}
	if err := section.Save(plt, filepath.Join(j.Out, base+"-"+j.Plot)); err != nil {
		return "plot", err
	}
	return "", nil
}

// ControlPoints returns the temperature control points
// of a project.
// If date is defined,
// the points are taken from the profile of the day
// in the temperature log.
func controlPoints(p *project.Project, date string, logger *log.Logger) ([]water.Point, error) {
	if date == "" {
		return p.TempField()
	}

	t, err := time.Parse(tempseries.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("flag --date: %v", err)
	}
	s := p.Temperature(tempseries.ByDay, logger)
	pf, ok := s.Lookup(t)
	if !ok {
		return nil, fmt.Errorf("flag --date: no temperature profile for %s", date)
	}
	pts := water.ProfilePoints(pf)
	if len(pts) == 0 {
		return nil, fmt.Errorf("flag --date: profile of %s without valid temperatures", date)
	}
	return pts, nil
}

func printSummary(w io.Writer, name string, s water.Summary) {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "\tcells: %d\tundefined: %d\n", s.N, s.Undefined)
	if s.N == 0 {
		return
	}
	fmt.Fprintf(w, "\tmin: %.3f\tmax: %.3f\n", s.Min, s.Max)
	fmt.Fprintf(w, "\tmean: %.3f\tmedian: %.3f\n", s.Mean, s.Median)
	fmt.Fprintf(w, "\t95%% interval: %.3f-%.3f\n", s.Q025, s.Q975)
}
