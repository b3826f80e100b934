// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package calib

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/js-arias/ertsoil/survey"
	"github.com/js-arias/ertsoil/tempseries"
)

// A Row is a calibrated measurement.
type Row struct {
	survey.Measurement

	// Temperature interpolated at the measurement depth.
	Temp float64

	// Corrected resistivity.
	// It is NaN if the temperature is unknown.
	Corrected float64
}

// HasCorrected returns true
// if the corrected resistivity is defined.
func (r Row) HasCorrected() bool {
	return !math.IsNaN(r.Corrected)
}

// Calibrate calibrates a set of measurements
// using a temperature profile.
// Measurements without a valid resistivity or depth
// are ignored.
func Calibrate(data []survey.Measurement, p tempseries.Profile) ([]Row, error) {
	c, err := NewCurve(p.Depths, p.Temps)
	if err != nil {
		return nil, fmt.Errorf("temperature profile: %v", err)
	}

	rows := make([]Row, 0, len(data))
	for _, m := range data {
		if !m.Valid() {
			continue
		}
		t := c.At(m.Z)
		cr, _ := Correct(m.Rho, t)
		rows = append(rows, Row{
			Measurement: m,
			Temp:        t,
			Corrected:   cr,
		})
	}
	return rows, nil
}

// Comment lines with the column names
// of the calibrated tables.
const (
	detailedCols   = "# a b m n resistivity x z interpolated_temperature corrected_resistivity"
	simplifiedCols = "# a b m n rhoa"
)

// WriteDetailed writes a detailed calibrated table.
//
// The header is copied from the normalized table,
// followed by the column names,
// and a tab-delimited row for each measurement,
// with the electrode indices,
// the apparent resistivity,
// the pseudo-section coordinates,
// the interpolated temperature,
// and the corrected resistivity.
// An undefined corrected resistivity
// is written as an empty field.
func WriteDetailed(w io.Writer, header []string, rows []Row) error {
	bw := bufio.NewWriter(w)
	for _, h := range header {
		fmt.Fprintf(bw, "%s\n", h)
	}
	fmt.Fprintf(bw, "%s\n", detailedCols)

	for _, r := range rows {
		f := []string{
			strconv.Itoa(r.A),
			strconv.Itoa(r.B),
			strconv.Itoa(r.M),
			strconv.Itoa(r.N),
			formatG(r.Rho),
			formatG(r.X),
			formatG(r.Z),
			formatG(r.Temp),
			formatG(r.Corrected),
		}
		fmt.Fprintf(bw, "%s\n", strings.Join(f, "\t"))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// WriteSimplified writes a simplified calibrated table,
// read by the inversion engine.
//
// The header is copied from the normalized table,
// followed by the column names,
// and a fixed width row for each measurement,
// with the electrode indices
// and the corrected resistivity.
// An undefined corrected resistivity
// is written as a blank field.
func WriteSimplified(w io.Writer, header []string, rows []Row) error {
	bw := bufio.NewWriter(w)
	for _, h := range header {
		fmt.Fprintf(bw, "%s\n", h)
	}
	fmt.Fprintf(bw, "%s\n", simplifiedCols)

	for _, r := range rows {
		fmt.Fprintf(bw, "%6d\t%6d\t%6d\t%6d\t", r.A, r.B, r.M, r.N)
		if r.HasCorrected() {
			fmt.Fprintf(bw, "%15.2f\n", r.Corrected)
			continue
		}
		fmt.Fprintf(bw, "%15s\n", "")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// FormatG formats a number with six significant digits
// without trailing zeros.
func formatG(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
