// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tempseries_test

import (
	"testing"
	"time"

	"github.com/js-arias/ertsoil/tempseries"
)

func TestFileStamp(t *testing.T) {
	tests := []struct {
		name string
		want tempseries.Stamp
		ok   bool
	}{
		{name: "2024-07-10_12-00-00.txt", want: tempseries.Stamp{Date: "2024-07-10", Clock: "12:00:00"}, ok: true},
		{name: "2023-05-15_report.pdf", want: tempseries.Stamp{Date: "2023-05-15"}, ok: true},
		{name: "15_05_2023_data.csv", want: tempseries.Stamp{Date: "2023-05-15"}, ok: true},
		{name: "2022_12_31_summary.docx", want: tempseries.Stamp{Date: "2022-12-31"}, ok: true},
		{name: "data/WP2_10_07_2024.tx0", want: tempseries.Stamp{Date: "2024-07-10"}, ok: true},
		{name: "DD_2024_07_10.txt", want: tempseries.Stamp{Date: "2024-07-10"}, ok: true},
		{name: "nodate_file.txt", ok: false},
		{name: "2024-13-45_bad.txt", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tempseries.FileStamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("match: got %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("stamp: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStampTime(t *testing.T) {
	s := tempseries.Stamp{Date: "2024-07-10", Clock: "12:30:05"}
	got, err := s.Time()
	if err != nil {
		t.Fatalf("unable to parse stamp: %v", err)
	}
	want := time.Date(2024, 7, 10, 12, 30, 5, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("time: got %v, want %v", got, want)
	}

	s.Clock = ""
	got, err = s.Time()
	if err != nil {
		t.Fatalf("unable to parse stamp: %v", err)
	}
	want = time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("time without clock: got %v, want %v", got, want)
	}
}

func TestLeadingDate(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{name: "2024-07-10_line1.txt", want: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "dir/20240710_line1.txt", want: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "2024-07-10.txt", want: time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "line1_2024-07-10.txt", ok: false},
		{name: "nodate.txt", ok: false},
	}
	for _, tt := range tests {
		got, ok := tempseries.LeadingDate(tt.name)
		if ok != tt.ok {
			t.Errorf("%q: match: got %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: date: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSurveyDates(t *testing.T) {
	names := []string{
		"2024-07-11_b.txt",
		"2024-07-10_a.txt",
		"2024-07-10_c.txt",
		"WP2_09_07_2024.tx0",
		"nodate.txt",
	}
	dates, unknown := tempseries.SurveyDates(names)
	want := []string{"2024-07-09", "2024-07-10", "2024-07-11"}
	if len(dates) != len(want) {
		t.Fatalf("dates: got %v, want %v", dates, want)
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates: got %v, want %v", dates, want)
			break
		}
	}
	if len(unknown) != 1 || unknown[0] != "nodate.txt" {
		t.Errorf("unknown: got %v, want [nodate.txt]", unknown)
	}
}
