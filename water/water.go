// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package water implements the conversion
// of inverted resistivity values of a mesh
// into volumetric soil water content.
//
// The resistivity of each mesh cell
// is corrected to the reference temperature
// using a temperature interpolated at the cell depth
// from a set of control points,
// and then converted to water content
// using a power law:
//
//	water = A * corrected^B
package water

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/js-arias/ertsoil/calib"
	"github.com/js-arias/ertsoil/tempseries"
)

// A Point is a temperature control point.
type Point struct {
	Depth float64
	Temp  float64
}

// SortPoints sorts control points by depth,
// from the deepest to the shallowest.
func SortPoints(pts []Point) {
	slices.SortStableFunc(pts, func(a, b Point) int {
		return cmp.Compare(a.Depth, b.Depth)
	})
}

// ProfilePoints returns the control points
// of a temperature profile.
// Depths without a valid temperature are ignored.
func ProfilePoints(p tempseries.Profile) []Point {
	pts := make([]Point, 0, len(p.Depths))
	for i, d := range p.Depths {
		if math.IsNaN(p.Temps[i]) {
			continue
		}
		pts = append(pts, Point{Depth: d, Temp: p.Temps[i]})
	}
	return pts
}

// A Law is a power law that converts resistivity
// into volumetric water content.
type Law struct {
	A float64
	B float64
}

// Calibrated laws.
var (
	DefaultLaw = Law{A: 246.47, B: -0.627}
	AltLaw     = Law{A: 211, B: -0.59}
)

// ParseLaw returns a law from its name.
func ParseLaw(s string) (Law, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default", "":
		return DefaultLaw, nil
	case "alternate", "alt":
		return AltLaw, nil
	}
	return Law{}, fmt.Errorf("unknown water content law %q", s)
}

// Validate returns an error
// if the law is not decreasing with resistivity.
func (l Law) Validate() error {
	if math.IsNaN(l.A) || l.A <= 0 {
		return fmt.Errorf("invalid law coefficient A %.3f: must be positive", l.A)
	}
	if math.IsNaN(l.B) || l.B >= 0 {
		return fmt.Errorf("invalid law exponent B %.3f: must be negative", l.B)
	}
	return nil
}

// Content returns the water content
// for a corrected resistivity.
// It returns NaN if the resistivity is not positive.
func (l Law) Content(r float64) float64 {
	if math.IsNaN(r) || r <= 0 {
		return math.NaN()
	}
	return l.A * math.Pow(r, l.B)
}

// A Cell is a mesh cell
// with its inverted resistivity.
type Cell struct {
	ID  int
	X   float64
	Y   float64
	Rho float64

	// Values set by Correct.
	Temp      float64
	Corrected float64
	Water     float64
}

// Correct sets the temperature,
// the corrected resistivity,
// and the water content of each cell.
// The cells are modified in place.
//
// The temperature is interpolated
// at the y coordinate of the cell,
// and clamped to the temperature of the nearest control point
// outside the range of the control points.
// If there is a single control point,
// all the cells have the same temperature.
func Correct(cells []Cell, pts []Point, law Law) error {
	if err := law.Validate(); err != nil {
		return err
	}
	c, err := curve(pts)
	if err != nil {
		return err
	}

	for i := range cells {
		t := c.At(cells[i].Y)
		cr, _ := calib.Correct(cells[i].Rho, t)
		cells[i].Temp = t
		cells[i].Corrected = cr
		cells[i].Water = law.Content(cr)
	}
	return nil
}

// Convert returns the water content
// of a set of cells,
// defined by their resistivity
// and y coordinate.
func Convert(res, y []float64, pts []Point, law Law) ([]float64, error) {
	if len(res) != len(y) {
		return nil, fmt.Errorf("got %d resistivity values and %d coordinates", len(res), len(y))
	}
	cells := make([]Cell, len(res))
	for i := range cells {
		cells[i] = Cell{ID: i + 1, Y: y[i], Rho: res[i]}
	}
	if err := Correct(cells, pts, law); err != nil {
		return nil, err
	}

	wc := make([]float64, len(cells))
	for i, c := range cells {
		wc[i] = c.Water
	}
	return wc, nil
}

func curve(pts []Point) (*calib.Curve, error) {
	if len(pts) == 0 {
		return nil, fmt.Errorf("no temperature control points")
	}
	depths := make([]float64, len(pts))
	temps := make([]float64, len(pts))
	for i, p := range pts {
		depths[i] = p.Depth
		temps[i] = p.Temp
	}
	c, err := calib.NewCurve(depths, temps)
	if err != nil {
		return nil, fmt.Errorf("temperature control points: %v", err)
	}
	return c, nil
}
