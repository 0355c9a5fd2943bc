// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/datasets"
	"github.com/vizlab/go-vizlab/stats"
)

// identity fits planar coordinates into a frame, flipping y so north
// is up.
type identity struct {
	minX, maxY float64
	k          float64
	x0, y0     float64
}

func fitIdentity(b *geom.Bounds, f Frame) identity {
	iw, ih := f.Inner()
	dx, dy := b.Max(0)-b.Min(0), b.Max(1)-b.Min(1)
	k := math.Min(float64(iw)/dx, float64(ih)/dy)
	if math.IsInf(k, 0) || math.IsNaN(k) {
		k = 1
	}
	// Center the fitted extent in the plot area.
	x0 := float64(f.Margin.Left) + (float64(iw)-k*dx)/2
	y0 := float64(f.Margin.Top) + (float64(ih)-k*dy)/2
	return identity{b.Min(0), b.Max(1), k, x0, y0}
}

func (p identity) point(c geom.Coord) (x, y float64) {
	return p.x0 + (c.X()-p.minX)*p.k, p.y0 + (p.maxY-c.Y())*p.k
}

// ringPath appends an SVG subpath for a closed ring.
func (p identity) ringPath(b *strings.Builder, ring []geom.Coord) {
	for i, c := range ring {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		x, y := p.point(c)
		fmt.Fprintf(b, "%s%s,%s", cmd, fmtNum(x), fmtNum(y))
	}
	b.WriteString("Z")
}

// featurePath returns path data for a polygonal feature, or "" for
// other geometry types.
func (p identity) featurePath(g geom.T) string {
	var b strings.Builder
	switch g := g.(type) {
	case *geom.Polygon:
		for _, ring := range g.Coords() {
			p.ringPath(&b, ring)
		}
	case *geom.MultiPolygon:
		for _, poly := range g.Coords() {
			for _, ring := range poly {
				p.ringPath(&b, ring)
			}
		}
	}
	return b.String()
}

func regionBounds(fc *geojson.FeatureCollection) *geom.Bounds {
	b := geom.NewBounds(geom.XY)
	for _, f := range fc.Features {
		if f.Geometry != nil {
			b.Extend(f.Geometry)
		}
	}
	return b
}

// WriteChoropleth draws the regions of fc filled by density on a
// logarithmic Viridis scale. densities must be in feature order, as
// returned by datasets.JoinDensity. Regions without a value are grey.
func WriteChoropleth(w io.Writer, fc *geojson.FeatureCollection, densities []datasets.RegionDensity, f Frame) error {
	if len(fc.Features) != len(densities) {
		return fmt.Errorf("%d regions but %d densities", len(fc.Features), len(densities))
	}
	bounds := regionBounds(fc)
	if bounds.IsEmpty() {
		return errors.New("no region geometry")
	}
	proj := fitIdentity(bounds, f)

	ramp := colorscale.Sequential{Log: true, Colors: colorscale.Viridis}
	if vals := datasets.DensityValues(densities); len(vals) > 0 {
		ramp.Min, ramp.Max, _ = stats.Extent(vals)
	}

	canvas := svg.New(w)
	canvas.Start(f.Width, f.Height)
	canvas.Group("style=\"stroke:#fff;stroke-width:0.5;fill-rule:evenodd\"")
	for i, feat := range fc.Features {
		if feat.Geometry == nil {
			continue
		}
		d := proj.featurePath(feat.Geometry)
		if d == "" {
			continue
		}
		c := colorscale.Missing
		if densities[i].OK {
			c = ramp.Color(densities[i].Density)
		}
		canvas.Path(d, fill(c), fmt.Sprintf("id=%q", densities[i].ID))
	}
	canvas.Gend()
	canvas.End()
	return nil
}
