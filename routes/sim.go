// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package routes

import (
	"math"

	"github.com/vizlab/go-vizlab/geom"
)

// Simulation is a force-directed layout with springs along edges,
// pairwise repulsion between vertices and re-centering. It runs a
// fixed number of ticks while the temperature alpha cools
// geometrically, so results are deterministic.
type Simulation struct {
	Center geom.Point

	// LinkDistance and LinkStrength configure edge springs.
	LinkDistance, LinkStrength float64

	// Charge is the pairwise force strength; negative repels.
	Charge float64

	// Ticks is the number of steps to run. VelocityDecay is the
	// fraction of velocity lost per tick.
	Ticks         int
	VelocityDecay float64
}

// DefaultSimulation returns the route-graph simulation centered at
// cx, cy.
func DefaultSimulation(cx, cy float64) Simulation {
	return Simulation{
		Center:        geom.Point{X: cx, Y: cy},
		LinkDistance:  5,
		LinkStrength:  0.08,
		Charge:        -30,
		Ticks:         300,
		VelocityDecay: 0.4,
	}
}

type body struct {
	x, y, vx, vy float64
}

// Run lays out g starting from the vertices' map positions and
// returns the final position of every vertex. g is not modified.
func (s Simulation) Run(g *Graph) []geom.Point {
	n := len(g.Vertices)
	bodies := make([]body, n)
	for i, v := range g.Vertices {
		bodies[i] = body{x: v.Map.X, y: v.Map.Y}
	}

	const alphaMin = 0.001
	alpha := 1.0
	alphaDecay := 1 - math.Pow(alphaMin, 1/float64(max(s.Ticks, 1)))

	for tick := 0; tick < s.Ticks; tick++ {
		alpha += (0 - alpha) * alphaDecay
		s.link(g, bodies, alpha)
		s.charge(bodies, alpha)
		s.center(bodies)
		for i := range bodies {
			b := &bodies[i]
			b.vx *= 1 - s.VelocityDecay
			b.vy *= 1 - s.VelocityDecay
			b.x += b.vx
			b.y += b.vy
		}
	}

	out := make([]geom.Point, n)
	for i, b := range bodies {
		out[i] = geom.Point{X: b.x, Y: b.y}
	}
	return out
}

// jiggle returns a tiny deterministic displacement used to separate
// coincident bodies.
func jiggle(i int) float64 {
	return (float64(i%7) - 3.5) * 1e-6
}

func (s Simulation) link(g *Graph, bodies []body, alpha float64) {
	for i, e := range g.Edges {
		src, dst := &bodies[e.Source], &bodies[e.Target]
		x := dst.x + dst.vx - src.x - src.vx
		y := dst.y + dst.vy - src.y - src.vy
		if x == 0 {
			x = jiggle(i)
		}
		if y == 0 {
			y = jiggle(i + 3)
		}
		l := math.Sqrt(x*x + y*y)
		l = (l - s.LinkDistance) / l * alpha * s.LinkStrength
		x, y = x*l, y*l

		ds, dt := float64(g.Vertices[e.Source].Degree), float64(g.Vertices[e.Target].Degree)
		bias := ds / (ds + dt)
		dst.vx -= x * bias
		dst.vy -= y * bias
		src.vx += x * (1 - bias)
		src.vy += y * (1 - bias)
	}
}

func (s Simulation) charge(bodies []body, alpha float64) {
	for i := range bodies {
		bi := &bodies[i]
		for j := range bodies {
			if i == j {
				continue
			}
			bj := &bodies[j]
			x, y := bj.x-bi.x, bj.y-bi.y
			if x == 0 {
				x = jiggle(i + j)
			}
			if y == 0 {
				y = jiggle(i + 2*j)
			}
			l := x*x + y*y
			if l < 1 {
				l = math.Sqrt(l)
			}
			w := s.Charge * alpha / l
			bi.vx += x * w
			bi.vy += y * w
		}
	}
}

func (s Simulation) center(bodies []body) {
	if len(bodies) == 0 {
		return
	}
	var sx, sy float64
	for _, b := range bodies {
		sx += b.x
		sy += b.y
	}
	sx = sx/float64(len(bodies)) - s.Center.X
	sy = sy/float64(len(bodies)) - s.Center.Y
	for i := range bodies {
		bodies[i].x -= sx
		bodies[i].y -= sy
	}
}
