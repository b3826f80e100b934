// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tempseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// SurveyDates returns the calendar days
// encoded in a list of survey file names.
// It also returns the names without a valid date.
func SurveyDates(names []string) (dates []string, unknown []string) {
	seen := make(map[string]bool)
	for _, n := range names {
		s, ok := FileStamp(n)
		if !ok {
			unknown = append(unknown, n)
			continue
		}
		if seen[s.Date] {
			continue
		}
		seen[s.Date] = true
		dates = append(dates, s.Date)
	}
	slices.Sort(dates)
	return dates, unknown
}

// Filter copies the header and the rows of a temperature log
// whose calendar day is in the list of dates.
// Dates must be in YYYY-MM-DD format.
// It returns the number of copied rows.
func Filter(w io.Writer, r io.Reader, dates []string) (int, error) {
	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		days[d] = true
	}

	in := csv.NewReader(r)
	in.Comma = '\t'
	in.Comment = '#'
	in.FieldsPerRecord = -1
	in.LazyQuotes = true

	head, err := in.Read()
	if err != nil {
		return 0, fmt.Errorf("while reading header: %v", err)
	}
	tCol, _, err := columns(head)
	if err != nil {
		return 0, err
	}

	out := csv.NewWriter(w)
	out.Comma = '\t'
	if err := out.Write(head); err != nil {
		return 0, fmt.Errorf("unable to write header: %v", err)
	}

	var n int
	for {
		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := in.FieldPos(0)
		if err != nil {
			return n, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) <= tCol {
			continue
		}
		t, ok := ParseTime(row[tCol])
		if !ok {
			continue
		}
		if !days[t.Format(DateLayout)] {
			continue
		}
		if err := out.Write(row); err != nil {
			return n, fmt.Errorf("when writing data: %v", err)
		}
		n++
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return n, fmt.Errorf("when writing data: %v", err)
	}
	return n, nil
}
