// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package calib implements the temperature calibration
// of apparent resistivity measurements.
//
// A measurement taken at a soil temperature T
// is rescaled to the reference temperature of 25 °C
// with the linear law:
//
//	corrected = r * (1 + 0.025 * (T - 25))
//
// The temperature of each measurement
// is interpolated from a depth-temperature profile
// at the pseudo-depth of the measurement.
package calib

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// RefTemp is the reference temperature (°C)
// of the calibration.
const RefTemp = 25

// Coef is the relative change of resistivity
// per degree Celsius.
const Coef = 0.025

// Correct returns the resistivity r,
// measured at temperature t,
// corrected to the reference temperature.
// It returns false if t is NaN.
func Correct(r, t float64) (float64, bool) {
	if math.IsNaN(t) {
		return math.NaN(), false
	}
	return r * (1 + Coef*(t-RefTemp)), true
}

// A Curve is a depth-temperature curve.
// Between two depths,
// the temperature is linearly interpolated,
// outside the range of depths
// the temperature of the nearest depth is used.
type Curve struct {
	depths []float64
	temps  []float64
	pl     interp.PiecewiseLinear
}

// NewCurve returns a curve from a set of depths
// and the temperatures at each depth.
// Points are sorted by depth.
// A curve with a single point
// has the same temperature at any depth.
func NewCurve(depths, temps []float64) (*Curve, error) {
	if len(depths) != len(temps) {
		return nil, fmt.Errorf("got %d depths and %d temperatures", len(depths), len(temps))
	}
	if len(depths) == 0 {
		return nil, fmt.Errorf("empty depth curve")
	}

	idx := make([]int, len(depths))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		switch {
		case depths[a] < depths[b]:
			return -1
		case depths[a] > depths[b]:
			return 1
		}
		return 0
	})

	c := &Curve{
		depths: make([]float64, len(depths)),
		temps:  make([]float64, len(depths)),
	}
	for i, j := range idx {
		if math.IsNaN(depths[j]) {
			return nil, fmt.Errorf("invalid depth value")
		}
		c.depths[i] = depths[j]
		c.temps[i] = temps[j]
		if i > 0 && c.depths[i] == c.depths[i-1] {
			return nil, fmt.Errorf("repeated depth %.3f", c.depths[i])
		}
	}

	if len(c.depths) > 1 {
		if err := c.pl.Fit(c.depths, c.temps); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// At returns the temperature at depth z.
func (c *Curve) At(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	if len(c.depths) == 1 {
		return c.temps[0]
	}
	if z <= c.depths[0] {
		return c.temps[0]
	}
	if last := len(c.depths) - 1; z >= c.depths[last] {
		return c.temps[last]
	}
	return c.pl.Predict(z)
}

// Range returns the deepest and shallowest depths
// of the curve.
func (c *Curve) Range() (deep, shallow float64) {
	return floats.Min(c.depths), floats.Max(c.depths)
}

// Interpolate returns the temperature at depth z
// from a set of depths and temperatures.
// Depths must be sorted in ascending order.
//
// If z is outside the range of depths,
// the temperature at the nearest extreme is returned,
// otherwise the temperature is linearly interpolated
// between the two bracketing depths.
func Interpolate(z float64, depths, temps []float64) (float64, error) {
	c, err := NewCurve(depths, temps)
	if err != nil {
		return 0, err
	}
	return c.At(z), nil
}
