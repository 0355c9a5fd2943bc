// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/delta"
	"github.com/vizlab/go-vizlab/geom"
	"github.com/vizlab/go-vizlab/hierarchy"
	"github.com/vizlab/go-vizlab/internal/config"
	"github.com/vizlab/go-vizlab/render"
	"github.com/vizlab/go-vizlab/routes"
)

// A chart turns its inputs into one output document.
type chart struct {
	inputs   []string // input descriptions, for usage
	formats  []string // first is the default
	variants []string // first is the default; nil if none
	render   func(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error
}

var charts = map[string]chart{
	"stars": {
		inputs:   []string{"stars.csv"},
		formats:  []string{"svg", "json"},
		variants: []string{"box", "density"},
		render:   renderStars,
	},
	"temps": {
		inputs:  []string{"temps.csv"},
		formats: []string{"png", "svg", "json"},
		render:  renderTemps,
	},
	"budget": {
		inputs:   []string{"budget.csv"},
		formats:  []string{"svg", "json"},
		variants: []string{"treemap", "radial"},
		render:   renderBudget,
	},
	"routes": {
		inputs:   []string{"airports.json", "flights.json"},
		formats:  []string{"svg", "json", "dot"},
		variants: []string{"force", "map"},
		render:   renderRoutes,
	},
	"flights": {
		inputs:   []string{"dump.json"},
		formats:  []string{"svg", "json"},
		variants: []string{"map", "altitudes", "status"},
		render:   renderFlights,
	},
	"choropleth": {
		inputs:  []string{"regions.geojson", "density.csv"},
		formats: []string{"svg", "json"},
		render:  renderChoropleth,
	},
}

// check validates job against the chart and fills in defaults.
func (c chart) check(job *config.Job) error {
	if len(job.Inputs) != len(c.inputs) {
		return fmt.Errorf("%s needs %d inputs (%s), got %d", job.Chart, len(c.inputs), strings.Join(c.inputs, ", "), len(job.Inputs))
	}
	if job.Format == "" {
		job.Format = c.formats[0]
	}
	if !contains(c.formats, job.Format) {
		return fmt.Errorf("%s cannot write format %q (want one of %s)", job.Chart, job.Format, strings.Join(c.formats, ", "))
	}
	if job.Variant == "" && c.variants != nil {
		job.Variant = c.variants[0]
	}
	if job.Variant != "" && !contains(c.variants, job.Variant) {
		return fmt.Errorf("%s has no variant %q", job.Chart, job.Variant)
	}
	return nil
}

func contains(xs []string, x string) bool {
	for _, y := range xs {
		if x == y {
			return true
		}
	}
	return false
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// inputError marks err as a problem with the named input.
func inputError(name string, err error) error {
	return usageError(fmt.Errorf("reading %s: %w", name, err))
}

func frame(s config.Size) render.Frame {
	m := s.Margin
	return render.Frame{
		Width:  s.Width,
		Height: s.Height,
		Margin: render.Margin{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
	}
}

func renderStars(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	stars, err := datasets.LoadStars(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	groups, err := render.StarGroups(stars, datasets.StarTypes, c.Stars.Bandwidth, c.Stars.Steps)
	if err != nil {
		return failure(err)
	}
	switch {
	case job.Format == "json":
		return writeJSON(w, groups)
	case job.Variant == "density":
		return failure(render.WriteDensityPlot(w, groups, c.Stars.Width, c.Stars.Height))
	}
	return failure(render.WriteStarChart(w, groups, render.StarChart{Frame: frame(c.Stars.Size), Seed: c.Seed}))
}

// jsonDelta is a delta.Dataset with missing values as null.
type jsonDelta struct {
	Times  []string     `json:"times"`
	Series []jsonSeries `json:"series"`
}

type jsonSeries struct {
	Name   string     `json:"name"`
	Label  string     `json:"label"`
	Values []*float64 `json:"values"`
}

func toJSONDelta(d delta.Dataset) jsonDelta {
	out := jsonDelta{Times: make([]string, len(d.Times))}
	for i, t := range d.Times {
		out.Times[i] = t.Format(delta.DateLayout)
	}
	for _, s := range d.Series {
		js := jsonSeries{Name: s.Name, Label: datasets.CityLabel(s.Name), Values: make([]*float64, len(s.Values))}
		for i, v := range s.Values {
			if !math.IsNaN(v) {
				v := v
				js.Values[i] = &v
			}
		}
		out.Series = append(out.Series, js)
	}
	return out
}

func renderTemps(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	raw, err := datasets.LoadCityTemps(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	d, err := delta.Compute(raw, c.Temps.ReferenceYear)
	if err != nil {
		return failure(err)
	}
	switch job.Format {
	case "json":
		return writeJSON(w, toJSONDelta(d))
	case "png":
		return failure(render.WriteStripes(w, d, render.Stripes{
			RowHeight:   c.Temps.RowHeight,
			StripeWidth: c.Temps.StripeWidth,
			LabelWidth:  c.Temps.LabelWidth,
			Label:       datasets.CityLabel,
		}))
	}
	title := fmt.Sprintf("Monthly temperature anomaly (reference: %d)", c.Temps.ReferenceYear)
	return failure(render.WriteDeltaPlot(w, d, title, c.Temps.Width, c.Temps.Height))
}

func renderBudget(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	lines, err := datasets.LoadBudget(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	root, err := datasets.BudgetTree(lines)
	if err != nil {
		return usageError(fmt.Errorf("%s: %w", job.Inputs[0], err))
	}
	if job.Format == "json" {
		return writeJSON(w, root)
	}
	b := c.Budget
	if job.Variant == "radial" {
		radius := float64(min(b.Width, b.Height))/2 - 120
		placed := hierarchy.RadialCluster{Degrees: b.Degrees, Radius: math.Max(radius, 10)}.Layout(root)
		return failure(render.WriteRadialTree(w, placed, b.Width, b.Height, datasets.BudgetLabel))
	}
	placed := hierarchy.Treemap{
		Width:        float64(b.Width),
		Height:       float64(b.Height),
		PaddingInner: b.PaddingInner,
		PaddingOuter: b.PaddingOuter,
		Round:        true,
	}.Layout(root)
	return failure(render.WriteTreemap(w, placed, b.Width, b.Height, datasets.BudgetLabel))
}

// jsonVertex and jsonGraph are the JSON form of a route graph.
type jsonVertex struct {
	ID        string     `json:"id"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Degree    int        `json:"degree"`
	Map       geom.Point `json:"map"`
	Projected bool       `json:"projected"`
	Force     geom.Point `json:"force"`
}

type jsonGraph struct {
	Vertices []jsonVertex   `json:"vertices"`
	Edges    []routes.Edge  `json:"edges"`
	Curves   []jsonCurve    `json:"curves"`
	Extent   [2]float64     `json:"log_degree_extent"`
	Counts   map[string]int `json:"counts"`
}

type jsonCurve struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Path   string `json:"path"`
}

func toJSONGraph(g *routes.Graph, mode routes.Mode) jsonGraph {
	out := jsonGraph{Edges: g.Edges, Counts: map[string]int{"vertices": len(g.Vertices), "edges": len(g.Edges)}}
	for _, v := range g.Vertices {
		out.Vertices = append(out.Vertices, jsonVertex{v.ID, v.City, v.State, v.Degree, v.Map, v.Projected, v.Force})
	}
	for _, cv := range g.Curves(mode) {
		out.Curves = append(out.Curves, jsonCurve{g.Vertices[cv.Edge.Source].ID, g.Vertices[cv.Edge.Target].ID, cv.Path()})
	}
	out.Extent[0], out.Extent[1] = g.LogDegreeExtent()
	return out
}

func renderRoutes(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	airports, err := datasets.LoadAirports(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	flights, err := datasets.LoadFlights(in[1])
	if err != nil {
		return inputError(job.Inputs[1], err)
	}
	mode, err := routes.ParseMode(job.Variant)
	if err != nil {
		return usageError(err)
	}
	r := c.Routes
	cx, cy := float64(r.Width)/2, float64(r.Height)/2
	g, err := routes.Build(airports, flights, routes.Options{
		MinCount:   r.MinCount,
		Projection: geom.AlbersUSA{Scale: r.Scale, Translate: geom.Point{X: cx, Y: cy}},
		Fallback:   geom.Point{X: float64(r.Width - r.Inset), Y: float64(r.Height - r.Inset)},
		Simulation: routes.DefaultSimulation(cx, cy),
	})
	if err != nil {
		return failure(err)
	}
	switch job.Format {
	case "json":
		return writeJSON(w, toJSONGraph(g, mode))
	case "dot":
		return failure(g.WriteDot(w))
	}
	return failure(render.WriteRouteGraph(w, g, mode, r.Width, r.Height))
}

func renderFlights(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	dump, err := datasets.LoadDump(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	planes := datasets.Planes(dump)
	f := c.Flights
	if job.Format == "json" {
		onGround, inSky := datasets.StatusCounts(planes)
		return writeJSON(w, struct {
			Planes   []datasets.Plane `json:"planes"`
			OnGround int              `json:"on_ground"`
			InSky    int              `json:"in_sky"`
		}{planes, onGround, inSky})
	}
	switch job.Variant {
	case "altitudes":
		groups, err := render.AltitudeGroups(planes, f.Bandwidth, f.Steps)
		if err != nil {
			return failure(err)
		}
		return failure(render.WriteAltitudeViolins(w, groups, frame(f.Size), c.Seed))
	case "status":
		return failure(render.WriteStatusBars(w, planes, frame(f.Size)))
	}
	return failure(render.WriteFlightMap(w, planes, frame(f.Size)))
}

func renderChoropleth(c *config.Config, job config.Job, in []io.Reader, w io.Writer) error {
	regions, err := datasets.LoadRegions(in[0])
	if err != nil {
		return inputError(job.Inputs[0], err)
	}
	records, err := datasets.LoadDensity(in[1])
	if err != nil {
		return inputError(job.Inputs[1], err)
	}
	joined := datasets.JoinDensity(datasets.RegionIDs(regions), records, c.Choropleth.Year)
	if job.Format == "json" {
		return writeJSON(w, joined)
	}
	return failure(render.WriteChoropleth(w, regions, joined, frame(c.Choropleth.Size)))
}

// chartNames returns the chart names in order.
func chartNames() []string {
	var names []string
	for name := range charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
