// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tempseries implements temperature series
// made of depth-temperature profiles
// read from a soil temperature log.
//
// A series can be keyed by calendar day
// (the first profile of each day is used)
// or by timestamp
// (the profile closest in time is used).
package tempseries

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Depths are the depths (in meters)
// of the temperature sensors,
// in the order of the temperature log columns.
var depths = [...]float64{-4, -3.5, -3, -1.5, -1, -0.5}

// Depths returns the depths of the temperature sensors
// sorted from the deepest to the shallowest.
func Depths() []float64 {
	d := depths
	return d[:]
}

// A Profile is a set of temperatures
// at different depths
// taken at a given time.
type Profile struct {
	Time time.Time

	// Depths sorted in ascending order
	// (i.e., the deepest first),
	// and the temperature at each depth.
	Depths []float64
	Temps  []float64
}

// NewProfile returns a new profile.
// Depths are sorted in ascending order.
func NewProfile(t time.Time, depths, temps []float64) (Profile, error) {
	if len(depths) != len(temps) {
		return Profile{}, fmt.Errorf("got %d depths and %d temperatures", len(depths), len(temps))
	}
	if len(depths) == 0 {
		return Profile{}, fmt.Errorf("empty profile")
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

	p := Profile{
		Time:   t,
		Depths: make([]float64, len(depths)),
		Temps:  make([]float64, len(depths)),
	}
	for i, j := range idx {
		p.Depths[i] = depths[j]
		p.Temps[i] = temps[j]
	}
	return p, nil
}

// Manual returns a profile
// with temperatures given in the fixed depth order
// (from -4 m to -0.5 m).
func Manual(t time.Time, temps []float64) (Profile, error) {
	if len(temps) != len(depths) {
		return Profile{}, fmt.Errorf("expecting %d temperatures, got %d", len(depths), len(temps))
	}
	return NewProfile(t, Depths(), temps)
}

// Mode is the way in which profiles are matched
// in a temperature series.
type Mode int

// Valid modes.
const (
	// ByDay matches profiles by calendar day.
	ByDay Mode = iota

	// ByTime matches the profile closest in time.
	ByTime
)

// ParseMode returns a mode from its name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "date", "":
		return ByDay, nil
	case "time", "timestamp":
		return ByTime, nil
	}
	return ByDay, fmt.Errorf("unknown matching mode %q", s)
}

func (m Mode) String() string {
	if m == ByTime {
		return "time"
	}
	return "day"
}

// A Series is a collection of temperature profiles.
type Series interface {
	// Lookup returns the profile for a given time.
	Lookup(t time.Time) (Profile, bool)

	// Len returns the number of profiles in the series.
	Len() int

	// Mode returns the matching mode of the series.
	Mode() Mode

	// Profiles returns the profiles of the series,
	// sorted by time.
	Profiles() []Profile
}

// A DaySeries is a series of profiles
// keyed by calendar day.
type DaySeries struct {
	days map[string]Profile
}

// NewDaySeries returns a day series from a list of profiles.
// Only the first profile of each day is kept.
func NewDaySeries(ps []Profile) *DaySeries {
	ds := &DaySeries{
		days: make(map[string]Profile),
	}
	for _, p := range ps {
		k := p.Time.Format(DateLayout)
		if _, ok := ds.days[k]; ok {
			continue
		}
		ds.days[k] = p
	}
	return ds
}

// Lookup returns the profile
// of the calendar day of t.
func (ds *DaySeries) Lookup(t time.Time) (Profile, bool) {
	p, ok := ds.days[t.Format(DateLayout)]
	return p, ok
}

// Len returns the number of days in the series.
func (ds *DaySeries) Len() int {
	return len(ds.days)
}

// Mode returns ByDay.
func (ds *DaySeries) Mode() Mode {
	return ByDay
}

// Profiles returns the profiles of each day,
// sorted by time.
func (ds *DaySeries) Profiles() []Profile {
	ps := make([]Profile, 0, len(ds.days))
	for _, p := range ds.days {
		ps = append(ps, p)
	}
	sortProfiles(ps)
	return ps
}

// A TimeSeries is a series of profiles
// keyed by timestamp.
type TimeSeries struct {
	ps []Profile
}

// NewTimeSeries returns a time series from a list of profiles.
// The order of the list is kept,
// and used to break ties on lookups.
func NewTimeSeries(ps []Profile) *TimeSeries {
	return &TimeSeries{
		ps: slices.Clone(ps),
	}
}

// Lookup returns the profile
// with the smallest absolute time difference to t.
// On ties,
// the first profile in the series is returned.
func (ts *TimeSeries) Lookup(t time.Time) (Profile, bool) {
	if len(ts.ps) == 0 {
		return Profile{}, false
	}

	best := 0
	bd := absDuration(ts.ps[0].Time.Sub(t))
	for i, p := range ts.ps[1:] {
		d := absDuration(p.Time.Sub(t))
		if d < bd {
			best = i + 1
			bd = d
		}
	}
	return ts.ps[best], true
}

// Len returns the number of profiles in the series.
func (ts *TimeSeries) Len() int {
	return len(ts.ps)
}

// Mode returns ByTime.
func (ts *TimeSeries) Mode() Mode {
	return ByTime
}

// Profiles returns the profiles sorted by time.
func (ts *TimeSeries) Profiles() []Profile {
	ps := slices.Clone(ts.ps)
	sortProfiles(ps)
	return ps
}

// A FixedSeries is a series with a single profile
// used for any time.
type FixedSeries struct {
	p Profile
}

// Fixed returns a series that always returns
// the given profile.
func Fixed(p Profile) *FixedSeries {
	return &FixedSeries{p: p}
}

// Lookup returns the profile of the series.
func (fs *FixedSeries) Lookup(t time.Time) (Profile, bool) {
	return fs.p, true
}

// Len returns 1.
func (fs *FixedSeries) Len() int {
	return 1
}

// Mode returns ByDay.
func (fs *FixedSeries) Mode() Mode {
	return ByDay
}

// Profiles returns the profile of the series.
func (fs *FixedSeries) Profiles() []Profile {
	return []Profile{fs.p}
}

// New returns a new series
// for the given mode.
func New(ps []Profile, m Mode) Series {
	if m == ByTime {
		return NewTimeSeries(ps)
	}
	return NewDaySeries(ps)
}

func sortProfiles(ps []Profile) {
	slices.SortStableFunc(ps, func(a, b Profile) int {
		return a.Time.Compare(b.Time)
	})
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
