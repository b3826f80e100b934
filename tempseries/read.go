// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tempseries

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrColumns is returned when a temperature log
// does not have enough temperature columns.
var ErrColumns = errors.New("insufficient temperature columns")

// Timestamp layouts accepted in a temperature log.
// Dates are day-first.
var timeLayouts = []string{
	"2/1/2006 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006 15:04",
	"2-1-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC3339,
}

// ParseTime parses a timestamp of a temperature log.
// It returns false if the value can not be parsed.
func ParseTime(s string) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range timeLayouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// A Log is the content of a temperature log.
type Log struct {
	Profiles []Profile

	// Number of rows excluded
	// because of an invalid timestamp.
	Bad int
}

// Read reads a temperature log from a TSV file.
//
// The TSV file must have a header,
// a timestamp column
// (named "time", or the first column),
// and six temperature columns for the sensors
// at -4, -3.5, -3, -1.5, -1, and -0.5 m.
// If the header has columns named with the depths
// those columns are used,
// otherwise the six columns after the timestamp are used.
//
// Here is an example file:
//
//	time	-4	-3.5	-3	-1.5	-1	-0.5
//	10/07/2024 12:00:00 PM	16.2	16.5	16.9	18.1	18.8	19.6
//	10/07/2024 01:00:00 PM	16.2	16.5	16.9	18.1	18.9	19.9
//
// Rows with an invalid timestamp are excluded.
// Invalid temperature values are read as NaN.
func Read(r io.Reader) (*Log, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.FieldsPerRecord = -1
	tsv.LazyQuotes = true

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	tCol, cols, err := columns(head)
	if err != nil {
		return nil, err
	}

	l := &Log{}
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) <= tCol {
			l.Bad++
			continue
		}

		t, ok := ParseTime(row[tCol])
		if !ok {
			l.Bad++
			continue
		}

		temps := make([]float64, len(cols))
		for i, c := range cols {
			temps[i] = math.NaN()
			if c >= len(row) {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[c]), 64)
			if err != nil {
				continue
			}
			temps[i] = v
		}
		p, err := NewProfile(t, Depths(), temps)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		l.Profiles = append(l.Profiles, p)
	}
	return l, nil
}

// Columns returns the index of the time column
// and the indices of the temperature columns.
func columns(head []string) (int, []int, error) {
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}

	tCol := 0
	if c, ok := fields["time"]; ok {
		tCol = c
	}

	cols := make([]int, 0, len(depths))
	for _, d := range depths {
		c, ok := fields[strconv.FormatFloat(d, 'g', -1, 64)]
		if !ok {
			break
		}
		cols = append(cols, c)
	}
	if len(cols) == len(depths) {
		return tCol, cols, nil
	}

	cols = cols[:0]
	for i := tCol + 1; i < len(head) && len(cols) < len(depths); i++ {
		cols = append(cols, i)
	}
	if len(cols) < len(depths) {
		return 0, nil, fmt.Errorf("%w: found %d, want %d", ErrColumns, len(cols), len(depths))
	}
	return tCol, cols, nil
}

// Load reads a temperature log file
// and returns a series with the indicated mode.
//
// If the file can not be read,
// or it is malformed,
// the error is logged
// and an empty series is returned.
// The logger can be nil.
func Load(name string, m Mode, logger *log.Logger) Series {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	l, err := ReadFile(name)
	if err != nil {
		logger.Printf("temperature: %v", err)
		return New(nil, m)
	}
	if l.Bad > 0 {
		logger.Printf("temperature: on file %q: %d rows with invalid timestamps excluded", name, l.Bad)
	}

	s := New(l.Profiles, m)
	logger.Printf("temperature: on file %q: %d profiles loaded (%s)", name, s.Len(), m)
	return s
}

// ReadFile reads a temperature log from a file.
func ReadFile(name string) (*Log, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %w", name, err)
	}
	return l, nil
}
