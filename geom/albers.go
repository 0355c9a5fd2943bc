// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import "math"

const radians = math.Pi / 180

// ConicEqualArea is an Albers conic equal-area projection from
// longitude/latitude in degrees to screen coordinates, with y growing
// downward.
type ConicEqualArea struct {
	// Parallels are the two standard parallels, in degrees.
	Parallels [2]float64

	// Rotate is added to every longitude before projecting.
	Rotate float64

	// Center is the rotated longitude/latitude that projects to
	// Translate.
	Center [2]float64

	Scale     float64
	Translate Point
}

func (p ConicEqualArea) raw(lambda, phi float64) (x, y float64) {
	sy0 := math.Sin(p.Parallels[0] * radians)
	n := (sy0 + math.Sin(p.Parallels[1]*radians)) / 2
	if math.Abs(n) < 1e-6 {
		// Parallels symmetric about the equator: the cone
		// degenerates into a cylinder.
		cy0 := math.Cos(p.Parallels[0] * radians)
		return lambda * cy0, math.Sin(phi) / cy0
	}
	c := 1 + sy0*(2*n-sy0)
	r0 := math.Sqrt(c) / n
	r := math.Sqrt(c-2*n*math.Sin(phi)) / n
	lambda *= n
	return r * math.Sin(lambda), r0 - r*math.Cos(lambda)
}

// Project returns the screen position of lon, lat.
func (p ConicEqualArea) Project(lon, lat float64) Point {
	lambda := (lon + p.Rotate) * radians
	if lambda > math.Pi {
		lambda -= 2 * math.Pi
	} else if lambda < -math.Pi {
		lambda += 2 * math.Pi
	}
	x, y := p.raw(lambda, lat*radians)
	cx, cy := p.raw(p.Center[0]*radians, p.Center[1]*radians)
	return Point{
		p.Translate.X + p.Scale*(x-cx),
		p.Translate.Y - p.Scale*(y-cy),
	}
}

// A Projection maps longitude/latitude to screen coordinates. ok is
// false for locations the projection does not cover.
type Projection interface {
	Project(lon, lat float64) (pt Point, ok bool)
}

// AlbersUSA is a composite projection of the United States: the
// lower 48 states in an Albers projection, with Alaska and Hawaii
// moved into insets at the lower left. Locations outside all three
// regions do not project.
type AlbersUSA struct {
	Scale     float64
	Translate Point
}

var _ Projection = AlbersUSA{}

type inset struct {
	proj   ConicEqualArea
	x0, y0 float64
	x1, y1 float64
}

func (a AlbersUSA) insets() [3]inset {
	k, tx, ty := a.Scale, a.Translate.X, a.Translate.Y
	const eps = 1e-6
	return [3]inset{
		{
			ConicEqualArea{[2]float64{29.5, 45.5}, 96, [2]float64{-0.6, 38.7}, k, a.Translate},
			tx - 0.455*k, ty - 0.238*k, tx + 0.455*k, ty + 0.238*k,
		},
		{
			ConicEqualArea{[2]float64{55, 65}, 154, [2]float64{-2, 58.5}, 0.35 * k, Point{tx - 0.307*k, ty + 0.201*k}},
			tx - 0.425*k + eps, ty + 0.120*k + eps, tx - 0.214*k - eps, ty + 0.234*k - eps,
		},
		{
			ConicEqualArea{[2]float64{8, 18}, 157, [2]float64{-3, 19.9}, k, Point{tx - 0.205*k, ty + 0.212*k}},
			tx - 0.214*k + eps, ty + 0.166*k + eps, tx - 0.115*k - eps, ty + 0.234*k - eps,
		},
	}
}

// Project tries the lower 48, Alaska and Hawaii in turn and returns
// the first projection that lands inside its region.
func (a AlbersUSA) Project(lon, lat float64) (Point, bool) {
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return Point{}, false
	}
	for _, in := range a.insets() {
		pt := in.proj.Project(lon, lat)
		if in.x0 <= pt.X && pt.X <= in.x1 && in.y0 <= pt.Y && pt.Y <= in.y1 {
			return pt, true
		}
	}
	return Point{}, false
}
