// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package delta re-expresses monthly time series as differences from
// a per-entity reference year, the transform behind warming-stripe
// charts.
package delta

import (
	"fmt"
	"math"
	"time"

	"github.com/vizlab/go-vizlab/stats"
)

// DateLayout is the timestamp format of input series.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD timestamp.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Series is one entity's values, aligned with Dataset.Times. NaN
// marks a missing observation.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Dataset is a set of series sharing one time axis.
type Dataset struct {
	Times  []time.Time `json:"times"`
	Series []Series    `json:"series"`
}

// MisalignedError is returned when a series does not have one value
// per timestamp.
type MisalignedError struct {
	Entity       string
	Len, WantLen int
}

func (e *MisalignedError) Error() string {
	return fmt.Sprintf("series %q has %d values, want %d", e.Entity, e.Len, e.WantLen)
}

// MissingReferenceError is returned when an entity has no reference
// year observation for a month that occurs in its series.
type MissingReferenceError struct {
	Entity string
	Year   int
	Month  time.Month
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("series %q has no %s %d reference value", e.Entity, e.Month, e.Year)
}

// Validate checks that every series is aligned with d.Times.
func (d Dataset) Validate() error {
	for _, s := range d.Series {
		if len(s.Values) != len(d.Times) {
			return &MisalignedError{s.Name, len(s.Values), len(d.Times)}
		}
	}
	return nil
}

// Reference returns the mean value of s for each calendar month of
// year, indexed by month-1. Months with no non-NaN observation are
// NaN.
func Reference(times []time.Time, s Series, year int) [12]float64 {
	var sum [12]float64
	var n [12]int
	for i, t := range times {
		if t.Year() != year || math.IsNaN(s.Values[i]) {
			continue
		}
		m := t.Month() - 1
		sum[m] += s.Values[i]
		n[m]++
	}
	var ref [12]float64
	for m := range ref {
		if n[m] == 0 {
			ref[m] = math.NaN()
		} else {
			ref[m] = sum[m] / float64(n[m])
		}
	}
	return ref
}

// Compute returns a dataset of the same shape as d in which every
// value is replaced by its difference from the entity's mean value
// for the same calendar month of referenceYear. Missing values stay
// missing. d is not modified.
//
// Compute fails if a series is misaligned or if an entity lacks a
// reference value for a month that appears in the data.
func Compute(d Dataset, referenceYear int) (Dataset, error) {
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}

	out := Dataset{
		Times:  append([]time.Time(nil), d.Times...),
		Series: make([]Series, len(d.Series)),
	}
	for si, s := range d.Series {
		ref := Reference(d.Times, s, referenceYear)
		vals := make([]float64, len(s.Values))
		for i, t := range d.Times {
			r := ref[t.Month()-1]
			if math.IsNaN(r) {
				return Dataset{}, &MissingReferenceError{s.Name, referenceYear, t.Month()}
			}
			vals[i] = s.Values[i] - r
		}
		out.Series[si] = Series{s.Name, vals}
	}
	return out, nil
}

// Extent returns the smallest and largest non-missing value across
// all series of d.
func Extent(d Dataset) (min, max float64, err error) {
	var all []float64
	for _, s := range d.Series {
		all = append(all, s.Values...)
	}
	return stats.Extent(all)
}
