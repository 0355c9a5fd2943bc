// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/kde"
	"github.com/vizlab/go-vizlab/stats"
)

// WriteFlightMap draws planes on an equirectangular world map,
// colored by altitude. Planes on the ground are drawn hollow.
func WriteFlightMap(w io.Writer, planes []datasets.Plane, f Frame) error {
	iw, ih := f.Inner()
	m := f.Margin
	x := newAxis(-180, 180, float64(m.Left), float64(m.Left+iw))
	y := newAxis(-90, 90, float64(m.Top+ih), float64(m.Top))
	ramp := colorscale.Altitude()

	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	canvas.Title(fmt.Sprintf("%d aircraft", len(planes)))
	canvas.Rect(m.Left, m.Top, iw, ih, "fill:#f8f8f8;stroke:#ccc")
	for _, p := range planes {
		px, py := x.ipx(p.Lon), y.ipx(p.Lat)
		if p.Status == datasets.OnGround {
			canvas.Circle(px, py, 2, stroke(colorscale.Missing, 1))
			continue
		}
		canvas.Circle(px, py, 2, fill(ramp.Color(p.Alt)))
	}
	canvas.End()
	return nil
}

// AltitudeGroup is the altitude distribution of one continent.
type AltitudeGroup struct {
	Continent string        `json:"continent"`
	Summary   stats.Summary `json:"summary"`
	Density   []kde.Point   `json:"density"`
	Alts      []float64     `json:"-"`
}

// AltitudeGroups computes the altitude distribution per
// continent, in datasets.Continents order. Continents without
// planes are omitted. All densities share one grid of steps points
// over [0, highest plane).
func AltitudeGroups(planes []datasets.Plane, bandwidth float64, steps int) ([]AltitudeGroup, error) {
	by := datasets.AltitudesByContinent(planes)
	var all []float64
	for _, c := range datasets.Continents {
		all = append(all, by[c]...)
	}
	grid := axisGrid(all, steps)
	var out []AltitudeGroup
	for _, c := range datasets.Continents {
		alts := by[c]
		if len(alts) == 0 {
			continue
		}
		sum, err := stats.Summarize(alts)
		if err != nil {
			return nil, err
		}
		d, err := kde.Estimate(alts, grid, bandwidth)
		if err != nil {
			return nil, err
		}
		out = append(out, AltitudeGroup{c, sum, d, alts})
	}
	return out, nil
}

// WriteAltitudeViolins draws a jittered scatter and violin of
// altitudes per continent.
func WriteAltitudeViolins(w io.Writer, groups []AltitudeGroup, f Frame, seed int64) error {
	if len(groups) == 0 {
		return errors.New("no planes")
	}
	maxAlt, maxDensity := 0.0, 0.0
	for _, g := range groups {
		if g.Summary.Max > maxAlt {
			maxAlt = g.Summary.Max
		}
		if d := kde.Max(g.Density); d > maxDensity {
			maxDensity = d
		}
	}
	iw, ih := f.Inner()
	m := f.Margin
	y := newAxis(0, maxAlt, float64(m.Top+ih), float64(m.Top))
	band := float64(iw) / float64(len(groups))
	ramp := colorscale.Altitude()
	rnd := rand.New(rand.NewSource(seed))

	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	yAxis(canvas, y, m.Left, "altitude (ft)")
	labels := make([]string, len(groups))
	for i, g := range groups {
		cx := float64(m.Left) + (float64(i)+0.5)*band
		if maxDensity > 0 {
			violin(canvas, g.Density, cx, band*0.45/maxDensity, y, "fill:none;stroke:#666")
		}
		for _, a := range g.Alts {
			jx := cx + (rnd.Float64()-0.5)*band*0.5
			canvas.Circle(round(jx), y.ipx(a), 1, fill(ramp.Color(a)))
		}
		labels[i] = g.Continent
	}
	bandLabels(canvas, labels, float64(m.Left), band, m.Top+ih+18)
	canvas.End()
	return nil
}

// WriteStatusBars draws a two-bar chart of planes on the ground and
// in the sky.
func WriteStatusBars(w io.Writer, planes []datasets.Plane, f Frame) error {
	onGround, inSky := datasets.StatusCounts(planes)
	counts := []int{onGround, inSky}
	labels := []string{datasets.OnGround, datasets.InSky}

	iw, ih := f.Inner()
	m := f.Margin
	y := newAxis(0, float64(max(onGround, inSky, 1)), float64(m.Top+ih), float64(m.Top))
	band := float64(iw) / float64(len(counts))

	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	yAxis(canvas, y, m.Left, "planes")
	for i, n := range counts {
		x0 := float64(m.Left) + float64(i)*band + band*0.1
		top := y.ipx(float64(n))
		canvas.Rect(round(x0), top, round(band*0.8), m.Top+ih-top, fill(colorscale.Category10[i]))
		canvas.Text(round(x0+band*0.4), top-4, strconv.Itoa(n), "style=\""+textStyle+";text-anchor:middle\"")
	}
	bandLabels(canvas, labels, float64(m.Left), band, m.Top+ih+18)
	canvas.End()
	return nil
}
