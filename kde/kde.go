// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kde estimates probability densities with an Epanechnikov
// kernel. The estimates drive violin shapes and density overlays.
package kde

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// ErrBandwidth is returned for a bandwidth that is not a positive,
// finite number.
var ErrBandwidth = errors.New("bandwidth must be positive and finite")

// Point is the estimated density at X.
type Point struct {
	X       float64 `json:"x"`
	Density float64 `json:"density"`
}

// Estimate evaluates the kernel density estimate of sample at every
// grid point:
//
//	f(x) = mean over v in sample of k((x - v)/h)/h
//	k(u) = 0.75(1 - u²) for |u| ≤ 1, else 0
//
// where h is bandwidth. The result has one Point per grid point, in
// grid order. NaNs in sample are ignored; an empty sample has
// density 0 everywhere.
func Estimate(sample, grid []float64, bandwidth float64) ([]Point, error) {
	if !(bandwidth > 0) || math.IsInf(bandwidth, 1) {
		return nil, ErrBandwidth
	}
	sample = finite(sample)

	out := make([]Point, len(grid))
	if len(sample) == 0 {
		for i, x := range grid {
			out[i] = Point{X: x}
		}
		return out, nil
	}

	// The KDE has unbounded support, so no boundary correction.
	k := &stats.KDE{
		Sample:    stats.Sample{Xs: sample},
		Kernel:    stats.EpanechnikovKernel,
		Bandwidth: bandwidth,
	}
	ys := vec.Map(k.PDF, grid)
	for i, x := range grid {
		out[i] = Point{x, ys[i]}
	}
	return out, nil
}

// finite returns xs without NaNs, copying only if it has any.
func finite(xs []float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) {
			out := append([]float64(nil), xs[:i]...)
			for _, x := range xs[i+1:] {
				if !math.IsNaN(x) {
					out = append(out, x)
				}
			}
			return out
		}
	}
	return xs
}

// Grid returns n evenly spaced points starting at lo and stepping
// toward hi, excluding hi. It returns nil if n < 1 or lo == hi.
func Grid(lo, hi float64, n int) []float64 {
	if n < 1 || lo == hi {
		return nil
	}
	step := (hi - lo) / float64(n)
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = lo + float64(i)*step
	}
	return xs
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 1 {
		return nil
	}
	return vec.Linspace(lo, hi, n)
}

// Max returns the largest density in ps, or 0 if ps is empty.
func Max(ps []Point) float64 {
	max := 0.0
	for _, p := range ps {
		if p.Density > max {
			max = p.Density
		}
	}
	return max
}
