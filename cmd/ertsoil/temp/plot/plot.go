// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to draw
// the temperature profiles of a soil temperature log.
package plot

import (
	"fmt"
	"log"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/ertsoil/project"
	"github.com/js-arias/ertsoil/section"
	"github.com/js-arias/ertsoil/tempseries"
)

var Command = &command.Command{
	Usage: `plot [--from <date>] [--to <date>] [--gradient <value>]
	-o|--output <file> <project-file>`,
	Short: "draw temperature profiles",
	Long: `
Command plot draws the temperature profiles of the soil temperature log of an
ertsoil project as lines of temperature against depth, with one line per day.

The argument of the command is the name of the project file.

The flag --output, or -o, is required and sets the name of the output file.
The image format is taken from the file extension (for example ".png" or
".svg").

The flags --from and --to set the first and last day (in YYYY-MM-DD format)
of the profiles to be drawn. By default all days are drawn.

Profiles are colored from the oldest to the newest using a color gradient. By
default a purple to red rainbow is used, use the flag --gradient with the
value "iridescent" for an iridescent gradient.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string
var fromFlag string
var toFlag string
var gradFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&fromFlag, "from", "", "")
	c.Flags().StringVar(&toFlag, "to", "", "")
	c.Flags().StringVar(&gradFlag, "gradient", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if output == "" {
		return c.UsageError("flag --output must be defined")
	}

	var g section.Gradienter = section.RainbowPurpleToRed{}
	switch gradFlag {
	case "", "rainbow":
	case "iridescent":
		g = section.Iridescent{}
	default:
		return fmt.Errorf("flag --gradient: unknown gradient %q", gradFlag)
	}

	from, err := parseDay(fromFlag, time.Time{})
	if err != nil {
		return fmt.Errorf("flag --from: %v", err)
	}
	to, err := parseDay(toFlag, time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return fmt.Errorf("flag --to: %v", err)
	}
	to = to.AddDate(0, 0, 1)

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	s := p.Temperature(tempseries.ByDay, log.New(c.Stderr(), "", 0))

	var ps []tempseries.Profile
	for _, pf := range s.Profiles() {
		if pf.Time.Before(from) || !pf.Time.Before(to) {
			continue
		}
		ps = append(ps, pf)
	}

	plt, err := section.Profiles(ps, g)
	if err != nil {
		return err
	}
	return section.Save(plt, output)
}

func parseDay(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(tempseries.DateLayout, s)
}
