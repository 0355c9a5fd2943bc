// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-moremath/scale"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/routes"
)

// WriteRouteGraph draws g with vertices at their mode positions.
// Routes are quadratic curves whose width grows with the number of
// flights; airports are colored on Viridis by log degree.
func WriteRouteGraph(w io.Writer, g *routes.Graph, mode routes.Mode, width, height int) error {
	maxValue := 0
	for _, e := range g.Edges {
		if e.Value > maxValue {
			maxValue = e.Value
		}
	}
	lo, hi := g.LogDegreeExtent()
	deg := scale.Linear{Min: lo, Max: hi, Clamp: true}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Title("Busiest air routes")

	canvas.Group("style=\"stroke:#4682b4;stroke-opacity:0.4;fill:none\"")
	for _, c := range g.Curves(mode) {
		sw := 0.5 + 2.5*float64(c.Edge.Value)/float64(maxValue)
		canvas.Path(c.Path(), fmt.Sprintf("stroke-width=\"%s\"", fmtNum(sw)))
	}
	canvas.Gend()

	canvas.Group("style=\"stroke:#fff;stroke-width:0.5\"")
	for _, v := range g.Vertices {
		p := v.Pos(mode)
		c := colorscale.Gradient(colorscale.Viridis, deg.Map(math.Log(float64(v.Degree))))
		canvas.Circle(round(p.X), round(p.Y), 2+int(math.Sqrt(float64(v.Degree))), fill(c))
	}
	canvas.Gend()
	canvas.End()
	return nil
}
