// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadraticControlPoint(t *testing.T) {
	p1, p2 := Point{0, 0}, Point{10, 0}
	c := QuadraticControlPoint(p1, p2, BulgeAngle)
	rho := 10 / (2 * math.Cos(math.Pi/6))
	assert.InDelta(t, 5, c.X, 1e-9)
	assert.InDelta(t, rho*math.Sin(math.Pi/6), c.Y, 1e-9)
	assert.Greater(t, c.Y, 0.0)

	// The control point is equidistant from both ends.
	assert.InDelta(t, c.Dist(p1), c.Dist(p2), 1e-9)

	// Reversing the edge mirrors the bulge across the chord.
	r := QuadraticControlPoint(p2, p1, BulgeAngle)
	assert.InDelta(t, c.X, r.X, 1e-9)
	assert.InDelta(t, -c.Y, r.Y, 1e-9)
}

func TestQuadraticControlPointDegenerate(t *testing.T) {
	p := Point{3, 4}
	assert.Equal(t, p, QuadraticControlPoint(p, p, BulgeAngle))
	assert.Equal(t, p, QuadraticControlPoint(p, Point{5, 5}, math.Pi/2))

	// Zero angle puts the control point on the chord midpoint.
	c := QuadraticControlPoint(Point{0, 0}, Point{0, 8}, 0)
	assert.InDelta(t, 0, c.X, 1e-9)
	assert.InDelta(t, 4, c.Y, 1e-9)
}

func TestQuadPath(t *testing.T) {
	got := QuadPath(Point{1, 2}, Point{3.25, -0.0001}, Point{5.12345, 6})
	assert.Equal(t, "M 1,2 Q 3.25,0 5.123,6", got)
}

func TestConicCenter(t *testing.T) {
	p := ConicEqualArea{[2]float64{29.5, 45.5}, 96, [2]float64{-0.6, 38.7}, 1000, Point{480, 300}}
	pt := p.Project(-96.6, 38.7)
	assert.InDelta(t, 480, pt.X, 1e-9)
	assert.InDelta(t, 300, pt.Y, 1e-9)
}

func TestAlbersUSA(t *testing.T) {
	proj := AlbersUSA{Scale: 1000, Translate: Point{480, 300}}

	seattle, ok := proj.Project(-122.31, 47.45)
	assert.True(t, ok)
	boston, ok := proj.Project(-71.01, 42.36)
	assert.True(t, ok)
	miami, ok := proj.Project(-80.29, 25.80)
	assert.True(t, ok)
	assert.Less(t, seattle.X, boston.X)
	assert.Less(t, boston.Y, miami.Y)

	// Alaska and Hawaii land in the lower-left insets.
	for _, loc := range [][2]float64{{-149.99, 61.17}, {-157.92, 21.32}} {
		pt, ok := proj.Project(loc[0], loc[1])
		assert.True(t, ok, "%v", loc)
		assert.Less(t, pt.X, 480.0)
		assert.Greater(t, pt.Y, 300.0)
	}

	// Outside the United States.
	for _, loc := range [][2]float64{{-66.0, 18.44}, {-0.46, 51.47}, {math.NaN(), 0}} {
		_, ok := proj.Project(loc[0], loc[1])
		assert.False(t, ok, "%v", loc)
	}
}
