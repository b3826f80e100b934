// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/calparam"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
	"github.com/js-arias/ertsoil/water"
)

var Command = &command.Command{
	Usage: "prj [--set <dataset>=<path>] <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads an ertsoil project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.

The flag --set sets the path of a dataset, in the form <dataset>=<path>. If
the project file does not exist, it will be created. An empty path removes
the dataset from the project. Valid datasets are:

	surveys      directory with the raw survey dumps (tx0 files)
	data         directory for the normalized measurement tables
	temperature  soil temperature log
	detailed     directory for the detailed calibrated tables
	simplified   directory for the simplified calibrated tables
	params       calibration parameters file
	tempfield    temperature control points for water content
	water        directory for the water content tables

Type 'ertsoil help project' for more information on project files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var setFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&setFlag, "set", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	if setFlag != "" {
		return setDataset(args[0], setFlag)
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	w := c.Stdout()
	if d := p.Path(project.Surveys); d != "" {
		countFiles(w, "Raw surveys", d, survey.RawExt)
	}
	if d := p.Path(project.Data); d != "" {
		countFiles(w, "Normalized tables", d, survey.TableExt)
	}

	param, err := p.Params()
	if err != nil {
		return err
	}
	printParams(w, param)

	if name := p.Path(project.Temperature); name != "" {
		if err := readTemperature(w, name); err != nil {
			return err
		}
	}
	if name := p.Path(project.TempField); name != "" {
		pts, err := water.ReadPointFile(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Temperature control points:\n")
		fmt.Fprintf(w, "\tfile: %s\n", name)
		fmt.Fprintf(w, "\tpoints: %d [%.2f to %.2f m]\n", len(pts), pts[0].Depth, pts[len(pts)-1].Depth)
		fmt.Fprintf(w, "\n")
	}

	if d := p.Path(project.Detailed); d != "" {
		countFiles(w, "Detailed calibrated tables", d, survey.TableExt)
	}
	if d := p.Path(project.Simplified); d != "" {
		countFiles(w, "Simplified calibrated tables", d, survey.TableExt)
	}
	if d := p.Path(project.Water); d != "" {
		countFiles(w, "Water content tables", d, ".tab")
	}
	return nil
}

func setDataset(name, val string) error {
	k, path, ok := strings.Cut(val, "=")
	if !ok {
		return fmt.Errorf("invalid --set value %q: expecting <dataset>=<path>", val)
	}
	set, err := project.ParseDataset(k)
	if err != nil {
		return err
	}

	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p = project.New()
		p.SetName(name)
	} else if err != nil {
		return err
	}

	path = strings.TrimSpace(path)
	if set == project.Params && path != "" {
		if _, err := calparam.Read(path); err != nil {
			return err
		}
	}
	p.Add(set, path)
	return p.Write()
}

func countFiles(w io.Writer, title, dir, ext string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintf(w, "\tdirectory: %s\n", dir)
	files, err := survey.ListFiles(dir, ext)
	if err != nil {
		fmt.Fprintf(w, "\tfiles: %v\n", err)
	} else {
		fmt.Fprintf(w, "\tfiles: %d\n", len(files))
	}
	fmt.Fprintf(w, "\n")
}

func printParams(w io.Writer, p *calparam.P) {
	fmt.Fprintf(w, "Calibration parameters:\n")
	if p.Name() != "" {
		fmt.Fprintf(w, "\tfile: %s\n", p.Name())
	} else {
		fmt.Fprintf(w, "\tfile: <default values>\n")
	}
	for _, v := range p.Values() {
		fmt.Fprintf(w, "\t%s: %s\n", v[0], v[1])
	}
	fmt.Fprintf(w, "\n")
}

func readTemperature(w io.Writer, name string) error {
	l, err := tempseries.ReadFile(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Temperature log:\n")
	fmt.Fprintf(w, "\tfile: %s\n", name)
	fmt.Fprintf(w, "\tprofiles: %d\n", len(l.Profiles))
	if l.Bad > 0 {
		fmt.Fprintf(w, "\tinvalid rows: %d\n", l.Bad)
	}
	if len(l.Profiles) > 0 {
		s := tempseries.New(l.Profiles, tempseries.ByDay)
		ps := s.Profiles()
		fmt.Fprintf(w, "\tdays: %d [%s to %s]\n", s.Len(), ps[0].Time.Format(time.DateOnly), ps[len(ps)-1].Time.Format(time.DateOnly))
	}
	fmt.Fprintf(w, "\n")
	return nil
}
