// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package section

import (
	"fmt"
	"math"
	"time"

	"github.com/js-arias/ertsoil/tempseries"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Profiles returns a plot of temperature against depth
// for a set of temperature profiles.
// Each profile is drawn as a line
// with a color taken from the gradient
// (the oldest profile at the start of the gradient).
func Profiles(ps []tempseries.Profile, g Gradienter) (*plot.Plot, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("no temperature profiles")
	}
	if g == nil {
		g = RainbowPurpleToRed{}
	}

	p := plot.New()
	p.X.Label.Text = "temperature (°C)"
	p.Y.Label.Text = "depth (m)"
	if len(ps) == 1 {
		p.Title.Text = ps[0].Time.Format(time.DateTime)
	} else {
		p.Title.Text = fmt.Sprintf("%s to %s", ps[0].Time.Format(time.DateOnly), ps[len(ps)-1].Time.Format(time.DateOnly))
	}
	p.Add(plotter.NewGrid())

	for i, pf := range ps {
		xys := make(plotter.XYs, 0, len(pf.Depths))
		for j, d := range pf.Depths {
			if math.IsNaN(pf.Temps[j]) {
				continue
			}
			xys = append(xys, plotter.XY{X: pf.Temps[j], Y: d})
		}
		if len(xys) == 0 {
			continue
		}

		v := 0.0
		if len(ps) > 1 {
			v = float64(i) / float64(len(ps)-1)
		}
		c := g.Gradient(v)

		ln, pts, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %v", pf.Time.Format(time.DateTime), err)
		}
		ln.Color = c
		pts.Color = c
		pts.Shape = draw.CircleGlyph{}
		pts.Radius = vg.Points(2)
		p.Add(ln, pts)
		if len(ps) <= 8 {
			p.Legend.Add(pf.Time.Format(time.DateTime), ln, pts)
		}
	}
	p.Legend.Top = false
	p.Legend.Left = true
	return p, nil
}
