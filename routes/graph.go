// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package routes builds the airport route graph: airports are
// vertices, busy routes are weighted edges, and every vertex carries
// both a map position and a force-directed position.
package routes

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"unicode"

	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/geom"
)

// ErrNoRoutes is returned by Build when no route survives filtering.
var ErrNoRoutes = errors.New("no routes above the flight threshold")

// Vertex is an airport in the graph.
type Vertex struct {
	ID     string // IATA code
	City   string
	State  string
	Lat    float64
	Lon    float64
	Degree int

	// Map is the projected position. Projected is false if the
	// projection did not cover the airport and Map is the
	// fallback.
	Map       geom.Point
	Projected bool

	// Force is the force-directed position.
	Force geom.Point
}

// Edge is a directed route between two vertices.
type Edge struct {
	Source, Target int // indexes into Graph.Vertices
	Value          int // number of flights
}

// Graph is a route graph.
type Graph struct {
	Vertices []*Vertex
	Edges    []Edge
}

// Options control Build.
type Options struct {
	// MinCount drops routes with fewer flights.
	MinCount int

	// Projection places airports on the map. Airports it does not
	// cover are placed at Fallback.
	Projection geom.Projection
	Fallback   geom.Point

	// Simulation lays the graph out by force, starting from the
	// map positions. A zero Simulation uses DefaultSimulation
	// centered on the mean map position.
	Simulation Simulation
}

// Build constructs the route graph. Airports whose IATA code starts
// with a digit are dropped, as are routes below opts.MinCount and
// routes touching unknown airports. Only airports on a remaining
// route become vertices; a vertex's degree is the number of its
// incident routes.
func Build(airports []datasets.Airport, flights []datasets.Flight, opts Options) (*Graph, error) {
	known := make(map[string]datasets.Airport)
	for _, a := range airports {
		if a.IATA == "" || unicode.IsDigit(rune(a.IATA[0])) {
			continue
		}
		if _, dup := known[a.IATA]; !dup {
			known[a.IATA] = a
		}
	}

	g := new(Graph)
	index := make(map[string]int)
	vertex := func(code string) int {
		if i, ok := index[code]; ok {
			return i
		}
		a := known[code]
		v := &Vertex{ID: code, City: a.City, State: a.State, Lat: a.Latitude, Lon: a.Longitude}
		index[code] = len(g.Vertices)
		g.Vertices = append(g.Vertices, v)
		return index[code]
	}
	for _, f := range flights {
		if f.Count < opts.MinCount {
			continue
		}
		_, okO := known[f.Origin]
		_, okD := known[f.Destination]
		if !okO || !okD {
			continue
		}
		s, t := vertex(f.Origin), vertex(f.Destination)
		g.Edges = append(g.Edges, Edge{s, t, f.Count})
		g.Vertices[s].Degree++
		g.Vertices[t].Degree++
	}
	if len(g.Edges) == 0 {
		return nil, ErrNoRoutes
	}

	for _, v := range g.Vertices {
		v.Map = opts.Fallback
		if opts.Projection != nil {
			if pt, ok := opts.Projection.Project(v.Lon, v.Lat); ok {
				v.Map, v.Projected = pt, true
			}
		}
	}

	sim := opts.Simulation
	if sim == (Simulation{}) {
		var cx, cy float64
		for _, v := range g.Vertices {
			cx += v.Map.X
			cy += v.Map.Y
		}
		n := float64(len(g.Vertices))
		sim = DefaultSimulation(cx/n, cy/n)
	}
	for i, p := range sim.Run(g) {
		g.Vertices[i].Force = p
	}
	return g, nil
}

// Mode selects which vertex positions to draw with.
type Mode int

const (
	ForceMode Mode = iota
	MapMode
)

// ParseMode parses "force" or "map".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "force":
		return ForceMode, nil
	case "map":
		return MapMode, nil
	}
	return 0, fmt.Errorf("unknown layout mode %q", s)
}

// Pos returns v's position in mode.
func (v *Vertex) Pos(mode Mode) geom.Point {
	if mode == MapMode {
		return v.Map
	}
	return v.Force
}

// Curve is an edge drawn as a quadratic Bézier curve.
type Curve struct {
	Edge      Edge
	P1, C, P2 geom.Point
}

// Path returns SVG path data for the curve.
func (c Curve) Path() string {
	return geom.QuadPath(c.P1, c.C, c.P2)
}

// Curves returns a curve for every edge of g in mode.
func (g *Graph) Curves(mode Mode) []Curve {
	out := make([]Curve, len(g.Edges))
	for i, e := range g.Edges {
		p1 := g.Vertices[e.Source].Pos(mode)
		p2 := g.Vertices[e.Target].Pos(mode)
		out[i] = Curve{e, p1, geom.QuadraticControlPoint(p1, p2, geom.BulgeAngle), p2}
	}
	return out
}

// LogDegreeExtent returns the range of log(degree) over g's vertices.
func (g *Graph) LogDegreeExtent() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range g.Vertices {
		l := math.Log(float64(v.Degree))
		min = math.Min(min, l)
		max = math.Max(max, l)
	}
	return
}

// WriteDot writes g in Graphviz format, with edge weights as labels.
func (g *Graph) WriteDot(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph routes {\n")
	for _, v := range g.Vertices {
		label := v.ID
		if v.City != "" {
			label = fmt.Sprintf("%s (%s)", v.City, v.ID)
		}
		fmt.Fprintf(&b, "  %q [label=%q];\n", v.ID, label)
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %q -> %q [label=\"%d\"];\n", g.Vertices[e.Source].ID, g.Vertices[e.Target].ID, e.Value)
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}
