// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats computes the descriptive statistics behind box plots
// and category charts: five-number summaries, extents and per-group
// counts.
package stats

import (
	"errors"
	"math"
	"sort"

	mstats "github.com/aclements/go-moremath/stats"
)

// ErrEmptySample is returned when a statistic is requested for a
// sample with no (non-NaN) values.
var ErrEmptySample = errors.New("empty sample")

// Summary is the five-number summary of a sample.
type Summary struct {
	Q1, Median, Q3 float64
	Min, Max       float64

	// N is the number of values summarized and Mean their
	// arithmetic mean.
	N    int
	Mean float64
}

// IQR returns the interquartile range Q3-Q1.
func (s Summary) IQR() float64 {
	return s.Q3 - s.Q1
}

// Summarize returns the five-number summary of xs. Quantiles use
// linear interpolation between closest ranks (method R7 of Hyndman
// and Fan). NaNs are ignored and xs is not modified.
//
// If xs has no values other than NaN, Summarize returns
// ErrEmptySample.
func Summarize(xs []float64) (Summary, error) {
	sorted := dropNaN(xs)
	if len(sorted) == 0 {
		return Summary{}, ErrEmptySample
	}
	sort.Float64s(sorted)
	smp := mstats.Sample{Xs: sorted, Sorted: true}
	min, max := smp.Bounds()
	return Summary{
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Min:    min,
		Max:    max,
		N:      len(sorted),
		Mean:   smp.Mean(),
	}, nil
}

// Quantile returns the p-quantile of sorted, which must be sorted in
// ascending order. p is clamped to [0, 1]. If sorted is empty,
// Quantile returns NaN.
//
// This matches d3.quantile, which differs from
// mstats.Sample.Quantile: that uses method R8.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	switch {
	case n == 0:
		return math.NaN()
	case p <= 0 || n == 1:
		return sorted[0]
	case p >= 1:
		return sorted[n-1]
	}
	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Extent returns the minimum and maximum of xs, ignoring NaNs.
func Extent(xs []float64) (min, max float64, err error) {
	clean := xs
	for _, x := range xs {
		if math.IsNaN(x) {
			clean = dropNaN(xs)
			break
		}
	}
	if len(clean) == 0 {
		return 0, 0, ErrEmptySample
	}
	min, max = mstats.Bounds(clean)
	return min, max, nil
}

func dropNaN(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}
