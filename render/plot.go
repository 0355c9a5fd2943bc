// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/vizlab/go-vizlab/delta"
	"github.com/vizlab/go-vizlab/stats"
)

// WriteDensityPlot draws the temperature density of every non-empty
// group except the wildcard as one line per spectral class.
func WriteDensityPlot(w io.Writer, groups []StarGroup, width, height int) error {
	var xs, ys []float64
	var class []string
	for _, g := range groups {
		if g.Class == stats.Wildcard {
			continue
		}
		for _, p := range g.Density {
			xs = append(xs, p.X)
			ys = append(ys, p.Density)
			class = append(class, g.Class)
		}
	}
	if len(xs) == 0 {
		return errors.New("no density to plot")
	}
	tab := new(table.Builder).
		Add("teff", xs).
		Add("density", ys).
		Add("class", class).
		Done()

	p := gg.NewPlot(tab)
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerLines{X: "teff", Y: "density", Color: "class"})
	p.Add(gg.AxisLabel("x", "Teff (K)"), gg.AxisLabel("y", "density"))
	p.Add(gg.Title("Temperature density by spectral class"))
	return p.WriteSVG(w, width, height)
}

// DecimalYear returns t as a fractional year.
func DecimalYear(t time.Time) float64 {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	return float64(t.Year()) + float64(t.Sub(start))/float64(end.Sub(start))
}

// WriteDeltaPlot draws one line per series of d against decimal
// years on a y scale that always includes zero. Missing values are skipped.
func WriteDeltaPlot(w io.Writer, d delta.Dataset, title string, width, height int) error {
	var xs, ys []float64
	var name []string
	for _, s := range d.Series {
		for i, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			xs = append(xs, DecimalYear(d.Times[i]))
			ys = append(ys, v)
			name = append(name, s.Name)
		}
	}
	if len(xs) == 0 {
		return errors.New("no values to plot")
	}
	tab := new(table.Builder).
		Add("year", xs).
		Add("delta", ys).
		Add("series", name).
		Done()

	p := gg.NewPlot(tab)
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	p.Add(gg.LayerLines{X: "year", Y: "delta", Color: "series"})
	p.Add(gg.AxisLabel("x", "year"), gg.AxisLabel("y", "Δ °C"))
	if title != "" {
		p.Add(gg.Title(title))
	}
	return p.WriteSVG(w, width, height)
}
