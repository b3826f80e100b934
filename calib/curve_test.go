// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package calib_test

import (
	"math"
	"testing"

	"github.com/js-arias/ertsoil/calib"
	"github.com/js-arias/ertsoil/tempseries"
)

var testTemps = []float64{20, 21, 22, 23, 24, 25}

func TestInterpolateBoundaries(t *testing.T) {
	depths := tempseries.Depths()
	tests := map[string]struct {
		z    float64
		want float64
	}{
		"deeper":      {-10, 20},
		"deepest":     {-4, 20},
		"shallowest":  {-0.5, 25},
		"shallower":   {-0.1, 25},
		"surface":     {0, 25},
		"sample":      {-1.5, 23},
		"middle":      {-2.25, 22.5},
		"near bottom": {-3.75, 20.5},
	}
	for name, test := range tests {
		got, err := calib.Interpolate(test.z, depths, testTemps)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: z %.3f: got %.6f, want %.6f", name, test.z, got, test.want)
		}
	}
}

func TestInterpolateMonotonic(t *testing.T) {
	depths := tempseries.Depths()
	c, err := calib.NewCurve(depths, testTemps)
	if err != nil {
		t.Fatalf("unable to build curve: %v", err)
	}

	for i := 1; i < len(depths); i++ {
		lo, hi := testTemps[i-1], testTemps[i]
		for s := 1; s < 10; s++ {
			z := depths[i-1] + (depths[i]-depths[i-1])*float64(s)/10
			v := c.At(z)
			if v < lo || v > hi {
				t.Errorf("z %.3f: got %.6f, want value in [%.1f, %.1f]", z, v, lo, hi)
			}
		}
	}

	deep, shallow := c.Range()
	if deep != -4 || shallow != -0.5 {
		t.Errorf("range: got %.2f, %.2f, want %.2f, %.2f", deep, shallow, -4.0, -0.5)
	}
}

func TestCurveUnsorted(t *testing.T) {
	c, err := calib.NewCurve([]float64{0, -10}, []float64{10, 5})
	if err != nil {
		t.Fatalf("unable to build curve: %v", err)
	}
	if got := c.At(-5); math.Abs(got-7.5) > 1e-9 {
		t.Errorf("middle: got %.6f, want %.6f", got, 7.5)
	}
	if got := c.At(-20); got != 5 {
		t.Errorf("deeper: got %.6f, want %.6f", got, 5.0)
	}
}

func TestCurveSinglePoint(t *testing.T) {
	c, err := calib.NewCurve([]float64{0}, []float64{18})
	if err != nil {
		t.Fatalf("unable to build curve: %v", err)
	}
	for _, z := range []float64{-8, -1, 0, 3} {
		if got := c.At(z); got != 18 {
			t.Errorf("z %.1f: got %.3f, want %.3f", z, got, 18.0)
		}
	}
}

func TestCurveErrors(t *testing.T) {
	tests := map[string]struct {
		depths []float64
		temps  []float64
	}{
		"empty":    {nil, nil},
		"length":   {[]float64{-1, -2}, []float64{1}},
		"repeated": {[]float64{-1, -1}, []float64{1, 2}},
		"nan":      {[]float64{math.NaN(), -1}, []float64{1, 2}},
	}
	for name, test := range tests {
		if _, err := calib.NewCurve(test.depths, test.temps); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestCurveNaN(t *testing.T) {
	c, err := calib.NewCurve(tempseries.Depths(), testTemps)
	if err != nil {
		t.Fatalf("unable to build curve: %v", err)
	}
	if v := c.At(math.NaN()); !math.IsNaN(v) {
		t.Errorf("NaN depth: got %.3f, want NaN", v)
	}
}

func TestCorrect(t *testing.T) {
	for _, r := range []float64{0, 1, 152.31, 1e4, -3.5} {
		got, ok := calib.Correct(r, 25)
		if !ok {
			t.Errorf("r %.3f: expecting defined value", r)
		}
		if got != r {
			t.Errorf("r %.3f at 25 °C: got %.6f, want %.6f", r, got, r)
		}
	}

	got, _ := calib.Correct(100, 15)
	if math.Abs(got-75) > 1e-9 {
		t.Errorf("r 100 at 15 °C: got %.6f, want %.6f", got, 75.0)
	}

	got, ok := calib.Correct(100, math.NaN())
	if ok || !math.IsNaN(got) {
		t.Errorf("NaN temperature: got %.3f, %v, want NaN, false", got, ok)
	}
}
