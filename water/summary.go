// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package water

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Summary is a summary of the water content
// of a set of cells.
type Summary struct {
	// Number of cells with a defined water content,
	// and with an undefined value.
	N         int
	Undefined int

	Min    float64
	Max    float64
	Mean   float64
	Median float64

	// 95% empirical interval
	Q025 float64
	Q975 float64
}

// Summarize returns a summary
// of the water content of the cells.
func Summarize(cells []Cell) Summary {
	var s Summary
	wc := make([]float64, 0, len(cells))
	for _, c := range cells {
		if math.IsNaN(c.Water) {
			s.Undefined++
			continue
		}
		wc = append(wc, c.Water)
	}
	s.N = len(wc)
	if s.N == 0 {
		s.Min = math.NaN()
		s.Max = math.NaN()
		s.Mean = math.NaN()
		s.Median = math.NaN()
		s.Q025 = math.NaN()
		s.Q975 = math.NaN()
		return s
	}

	slices.Sort(wc)
	s.Min = floats.Min(wc)
	s.Max = floats.Max(wc)
	s.Mean = stat.Mean(wc, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, wc, nil)
	s.Q025 = stat.Quantile(0.025, stat.Empirical, wc, nil)
	s.Q975 = stat.Quantile(0.975, stat.Empirical, wc, nil)
	return s
}
