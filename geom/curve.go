// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the planar geometry used to draw graph edges
// and place points on a map.
package geom

import (
	"math"
	"strconv"
	"strings"
)

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// BulgeAngle is the angle between an edge's chord and the tangent at
// its start used for route curves.
const BulgeAngle = math.Pi / 6

// QuadraticControlPoint returns the control point of a quadratic
// Bézier curve from p1 to p2 whose tangent at p1 makes angle (in
// radians) with the chord p1→p2. The control point is the apex of
// the isosceles triangle on the chord with base angles angle.
//
// Reversing p1 and p2 bulges to the opposite side of the line, so
// edges A→B and B→A drawn together do not overlap.
//
// If p1 == p2, or angle makes the triangle degenerate (cos(angle) is
// 0), the result is p1.
func QuadraticControlPoint(p1, p2 Point, angle float64) Point {
	d := p1.Dist(p2)
	cos := math.Cos(angle)
	if d == 0 || math.Abs(cos) < 1e-12 {
		return p1
	}
	rho := d / (2 * cos)
	alpha := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	return Point{
		p1.X + rho*math.Cos(alpha+angle),
		p1.Y + rho*math.Sin(alpha+angle),
	}
}

// QuadPath returns SVG path data for the quadratic Bézier curve from
// p1 to p2 with control point c.
func QuadPath(p1, c, p2 Point) string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, p1)
	b.WriteString(" Q ")
	writePoint(&b, c)
	b.WriteByte(' ')
	writePoint(&b, p2)
	return b.String()
}

func writePoint(b *strings.Builder, p Point) {
	b.WriteString(formatCoord(p.X))
	b.WriteByte(',')
	b.WriteString(formatCoord(p.Y))
}

// formatCoord prints a coordinate with at most 3 decimal places.
func formatCoord(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // Avoid "-0".
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
