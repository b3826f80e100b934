// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package section

import (
	"fmt"
	"image/color"
	"math"

	"github.com/js-arias/ertsoil/water"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default range of the water content scale,
// in percent.
const (
	MinWater = 0
	MaxWater = 30
)

// undefColor is the color of cells
// without a water content value.
var undefColor = color.RGBA{211, 211, 211, 255}

// A waterPlot is a plot of the water content
// of the cells of a mesh.
type waterPlot struct {
	cells []water.Cell
	color Colorer

	// half size of a cell
	dx, dy float64
}

// DataRange implements the plot.DataRanger interface.
func (wp *waterPlot) DataRange() (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, c := range wp.cells {
		xMin = math.Min(xMin, c.X-wp.dx)
		xMax = math.Max(xMax, c.X+wp.dx)
		yMin = math.Min(yMin, c.Y-wp.dy)
		yMax = math.Max(yMax, c.Y+wp.dy)
	}
	return xMin, xMax, yMin, yMax
}

// Plot implements the plot.Plotter interface.
func (wp *waterPlot) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, cl := range wp.cells {
		col := color.Color(undefColor)
		if !math.IsNaN(cl.Water) {
			col = wp.color.Color(cl.Water)
		}
		x0, x1 := trX(cl.X-wp.dx), trX(cl.X+wp.dx)
		y0, y1 := trY(cl.Y-wp.dy), trY(cl.Y+wp.dy)
		pts := []vg.Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
			{X: x0, Y: y0},
		}
		c.FillPolygon(col, pts)
	}
}

// Water returns a plot of the water content
// of the cells of a mesh.
// Cells are drawn as rectangles
// centered at the cell coordinates,
// with a size taken from the smallest spacing
// between cell centers.
// If c is nil,
// a rainbow scale from MinWater to MaxWater is used.
func Water(title string, cells []water.Cell, c Colorer) (*plot.Plot, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("no cells to plot")
	}
	if c == nil {
		c = Scale{
			Min:      MinWater,
			Max:      MaxWater,
			Gradient: RainbowPurpleToRed{},
		}
	}

	xs := make([]float64, 0, len(cells))
	ys := make([]float64, 0, len(cells))
	for _, cl := range cells {
		xs = append(xs, cl.X)
		ys = append(ys, cl.Y)
	}

	wp := &waterPlot{
		cells: cells,
		color: c,
		dx:    minSpacing(xs) / 2,
		dy:    minSpacing(ys) / 2,
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "distance (m)"
	p.Y.Label.Text = "depth (m)"
	if s, ok := c.(Scale); ok {
		p.Y.Label.Text = fmt.Sprintf("depth (m) [water content %.0f-%.0f%%]", s.Min, s.Max)
	}
	p.Add(wp)
	return p, nil
}

// MinSpacing returns the smallest positive difference
// between a set of coordinates.
// It returns 0.5 if all the coordinates are equal.
func minSpacing(v []float64) float64 {
	v = slices.Clone(v)
	slices.Sort(v)
	v = slices.Compact(v)

	min := math.Inf(1)
	for i := 1; i < len(v); i++ {
		if d := v[i] - v[i-1]; d < min {
			min = d
		}
	}
	if math.IsInf(min, 1) {
		return 0.5
	}
	return min
}
