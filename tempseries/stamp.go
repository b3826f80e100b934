// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tempseries

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// A Stamp is a date
// (and optionally a time of the day)
// extracted from a file name.
type Stamp struct {
	// Date in YYYY-MM-DD format.
	Date string

	// Clock in HH:MM:SS format.
	// It is empty if the file name does not have a time.
	Clock string
}

// Time returns the time value of the stamp.
// If the stamp has no clock,
// the time is the start of the day.
func (s Stamp) Time() (time.Time, error) {
	if s.Clock == "" {
		return time.Parse(DateLayout, s.Date)
	}
	return time.Parse(DateLayout+" 15:04:05", s.Date+" "+s.Clock)
}

func (s Stamp) String() string {
	if s.Clock == "" {
		return s.Date
	}
	return s.Date + " " + s.Clock
}

// DateLayout is the layout used for calendar days.
const DateLayout = "2006-01-02"

// File name date encodings,
// from the most specific to the least specific.
var stampPatterns = []struct {
	re    *regexp.Regexp
	stamp func(m []string) Stamp
}{
	{
		// YYYY-MM-DD_HH-MM-SS
		re: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})_(\d{2})-(\d{2})-(\d{2})`),
		stamp: func(m []string) Stamp {
			return Stamp{
				Date:  fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]),
				Clock: fmt.Sprintf("%s:%s:%s", m[4], m[5], m[6]),
			}
		},
	},
	{
		// YYYY-MM-DD
		re: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`),
		stamp: func(m []string) Stamp {
			return Stamp{Date: fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])}
		},
	},
	{
		// DD_MM_YYYY
		re: regexp.MustCompile(`(\d{2})_(\d{2})_(\d{4})`),
		stamp: func(m []string) Stamp {
			return Stamp{Date: fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])}
		},
	},
	{
		// YYYY_MM_DD
		re: regexp.MustCompile(`(\d{4})_(\d{2})_(\d{2})`),
		stamp: func(m []string) Stamp {
			return Stamp{Date: fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])}
		},
	},
}

// FileStamp extracts a date
// (and a time, if present)
// from a file name.
//
// The following encodings are tried in order,
// and the first match is returned:
//
//	YYYY-MM-DD_HH-MM-SS
//	YYYY-MM-DD
//	DD_MM_YYYY
//	YYYY_MM_DD
//
// If no encoding matches,
// or the matched values are not a valid date,
// it returns false.
func FileStamp(name string) (Stamp, bool) {
	name = filepath.Base(name)
	for _, p := range stampPatterns {
		m := p.re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		s := p.stamp(m)
		if _, err := s.Time(); err != nil {
			return Stamp{}, false
		}
		return s, true
	}
	return Stamp{}, false
}

// Layouts accepted for a leading date.
var leadingLayouts = []string{
	DateLayout,
	"2006/01/02",
	"20060102",
	"2006-1-2",
	"2006/1/2",
}

// LeadingDate returns the date
// encoded in the part of a file name
// before the first underscore.
// For example,
// the date of "2024-07-10_line1.txt" is 2024-07-10.
func LeadingDate(name string) (time.Time, bool) {
	name = filepath.Base(name)
	tok, _, ok := strings.Cut(name, "_")
	if !ok {
		tok = strings.TrimSuffix(name, filepath.Ext(name))
	}
	tok = strings.TrimSpace(tok)
	for _, l := range leadingLayouts {
		t, err := time.Parse(l, tok)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
