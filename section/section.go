// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package section implements plots
// of soil temperature profiles
// and of water content sections.
package section

import (
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/js-arias/blind"
	"github.com/js-arias/ertsoil/outfile"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// A Scale maps values in a range
// into the colors of a gradient.
type Scale struct {
	Min, Max float64
	Gradient Gradienter
}

// Color returns the color of a value.
// Values outside the range
// take the color of the nearest limit.
func (s Scale) Color(v float64) color.Color {
	g := s.Gradient
	if g == nil {
		g = Iridescent{}
	}
	if s.Max <= s.Min {
		return g.Gradient(0)
	}
	return g.Gradient((v - s.Min) / (s.Max - s.Min))
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Save saves a plot in a file.
// The format is taken from the file extension.
func Save(p *plot.Plot, name string) error {
	return outfile.Write(name, func(w io.Writer) error {
		return Write(w, p, name)
	})
}

// Write writes a plot into a writer.
// The format is taken from the extension of name
// (for example "png" or "svg").
func Write(w io.Writer, p *plot.Plot, name string) error {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	wt, err := p.WriterTo(8*vg.Inch, 5*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
