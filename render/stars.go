// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/kde"
	"github.com/vizlab/go-vizlab/stats"
)

// StarGroup is the chart data of one spectral class.
type StarGroup struct {
	Class   string        `json:"class"`
	Count   int           `json:"count"`
	Summary stats.Summary `json:"summary"` // zero if Count is 0
	Density []kde.Point   `json:"density"`
	Teff    []float64     `json:"-"`
}

// StarGroups partitions stars by spectral class and computes each
// class's summary and temperature density. Every class shares one
// density grid of steps points over [0, hottest star), the chart's
// temperature axis.
func StarGroups(stars []datasets.Star, classes []string, bandwidth float64, steps int) ([]StarGroup, error) {
	teff := datasets.Temperatures(stars)
	grid := axisGrid(teff, steps)
	parts := stats.Partition(datasets.SpectralKeys(stars), classes, datasets.MatchSpectral)
	groups := make([]StarGroup, len(classes))
	for i, class := range classes {
		xs := stats.Select(teff, parts[i])
		g := StarGroup{Class: class, Count: len(xs), Teff: xs}
		if len(xs) > 0 {
			sum, err := stats.Summarize(xs)
			if err != nil {
				return nil, err
			}
			g.Summary = sum
			if g.Density, err = kde.Estimate(xs, grid, bandwidth); err != nil {
				return nil, err
			}
		}
		groups[i] = g
	}
	return groups, nil
}

// axisGrid returns steps density grid points over [0, max(xs)).
func axisGrid(xs []float64, steps int) []float64 {
	_, hi, err := stats.Extent(xs)
	if err != nil || !(hi > 0) {
		return nil
	}
	return kde.Grid(0, hi, steps)
}

// StarChart configures WriteStarChart.
type StarChart struct {
	Frame
	// Seed seeds the horizontal jitter of star points.
	Seed int64
}

// WriteStarChart draws one band per group: jittered stars colored by
// temperature, a violin of the temperature density and a box plot.
func WriteStarChart(w io.Writer, groups []StarGroup, opts StarChart) error {
	if len(groups) == 0 {
		return errors.New("no star groups")
	}
	maxTeff, maxDensity := 0.0, 0.0
	for _, g := range groups {
		if g.Count > 0 && g.Summary.Max > maxTeff {
			maxTeff = g.Summary.Max
		}
		if d := kde.Max(g.Density); d > maxDensity {
			maxDensity = d
		}
	}

	iw, ih := opts.Inner()
	m := opts.Margin
	y := newAxis(0, maxTeff, float64(m.Top+ih), float64(m.Top))
	band := float64(iw) / float64(len(groups))
	ramp := colorscale.Temperature()
	rnd := rand.New(rand.NewSource(opts.Seed))

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title("Stellar effective temperature by spectral class")
	yAxis(canvas, y, m.Left, "Teff (K)")

	for i, g := range groups {
		x0 := float64(m.Left) + float64(i)*band
		cx := x0 + band/2
		canvas.Group(fmt.Sprintf("id=\"class-%s\"", strings.ToLower(g.Class)))

		if maxDensity > 0 {
			violin(canvas, g.Density, cx, band*0.45/maxDensity, y, "fill:#ddd;fill-opacity:0.5;stroke:#999")
		}

		// Stars.
		for _, t := range g.Teff {
			jx := cx + (rnd.Float64()-0.5)*band*0.6
			canvas.Circle(round(jx), y.ipx(t), 2, fill(ramp.Color(t))+";fill-opacity:0.7")
		}

		// Box and whiskers.
		if g.Count > 0 {
			s := g.Summary
			bw := band * 0.2
			canvas.Line(round(cx), y.ipx(s.Min), round(cx), y.ipx(s.Q1), "stroke:#000")
			canvas.Line(round(cx), y.ipx(s.Q3), round(cx), y.ipx(s.Max), "stroke:#000")
			canvas.Line(round(cx-bw/2), y.ipx(s.Min), round(cx+bw/2), y.ipx(s.Min), "stroke:#000")
			canvas.Line(round(cx-bw/2), y.ipx(s.Max), round(cx+bw/2), y.ipx(s.Max), "stroke:#000")
			canvas.Rect(round(cx-bw), y.ipx(s.Q3), round(2*bw), y.ipx(s.Q1)-y.ipx(s.Q3), "fill:none;stroke:#000")
			canvas.Line(round(cx-bw), y.ipx(s.Median), round(cx+bw), y.ipx(s.Median), "stroke:#000;stroke-width:2")
		}
		canvas.Gend()
	}

	labels := make([]string, len(groups))
	counts := make([]string, len(groups))
	for i, g := range groups {
		labels[i] = g.Class
		counts[i] = fmt.Sprintf("n=%d", g.Count)
	}
	bandLabels(canvas, labels, float64(m.Left), band, m.Top+ih+18)
	bandLabels(canvas, counts, float64(m.Left), band, m.Top+ih+34)
	canvas.End()
	return nil
}
