// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws the charts as SVG or PNG. Renderers consume
// only the outputs of the transform packages and write
// deterministic documents.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-moremath/scale"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/kde"
)

// Margin is the space around a chart's plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Frame is a chart's size and margins.
type Frame struct {
	Width, Height int
	Margin        Margin
}

// Inner returns the size of the plot area.
func (f Frame) Inner() (w, h int) {
	return f.Width - f.Margin.Left - f.Margin.Right, f.Height - f.Margin.Top - f.Margin.Bottom
}

// axis maps a data domain linearly onto a pixel range.
type axis struct {
	s      scale.Linear
	lo, hi float64
}

func newAxis(min, max, lo, hi float64) axis {
	return axis{scale.Linear{Min: min, Max: max}, lo, hi}
}

func (a axis) px(v float64) float64 {
	return a.lo + a.s.Map(v)*(a.hi-a.lo)
}

func (a axis) ipx(v float64) int {
	return round(a.px(v))
}

// ticks returns at most max nice tick values in the domain.
func (a axis) ticks(max int) []float64 {
	major, _ := a.s.Ticks(scale.TickOptions{Max: max})
	return major
}

func round(v float64) int {
	return int(math.Round(v))
}

func fill(c color.RGBA) string {
	return "fill:" + colorscale.Hex(c)
}

func stroke(c color.RGBA, width float64) string {
	return fmt.Sprintf("stroke:%s;stroke-width:%s;fill:none", colorscale.Hex(c), fmtNum(width))
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

const textStyle = "font-family:sans-serif;font-size:12px;fill:#333"

// yAxis draws a left axis with tick labels at x.
func yAxis(canvas *svg.SVG, a axis, x int, label string) {
	canvas.Group("class=\"axis\"", "style=\"stroke:#333;fill:none\"")
	canvas.Line(x, round(a.lo), x, round(a.hi))
	for _, t := range a.ticks(8) {
		y := a.ipx(t)
		canvas.Line(x-4, y, x, y)
	}
	canvas.Gend()
	canvas.Group("style=\"" + textStyle + ";text-anchor:end\"")
	for _, t := range a.ticks(8) {
		canvas.Text(x-6, a.ipx(t)+4, strconv.FormatFloat(t, 'f', -1, 64))
	}
	if label != "" {
		mid := round((a.lo + a.hi) / 2)
		canvas.Text(x-40, mid, label, fmt.Sprintf("transform=\"rotate(-90 %d %d)\"", x-40, mid), "text-anchor=\"middle\"")
	}
	canvas.Gend()
}

// bandLabels writes one label per band under a horizontal axis.
func bandLabels(canvas *svg.SVG, labels []string, x0, bandWidth float64, y int) {
	canvas.Group("style=\"" + textStyle + ";text-anchor:middle\"")
	for i, l := range labels {
		canvas.Text(round(x0+(float64(i)+0.5)*bandWidth), y, l)
	}
	canvas.Gend()
}

// violin draws a density mirrored around cx as a closed path. Density
// is scaled to pixels by k and positions are mapped through y.
func violin(canvas *svg.SVG, density []kde.Point, cx, k float64, y axis, style string) {
	if len(density) < 2 {
		return
	}
	var b strings.Builder
	for i, p := range density {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%s,%s ", cmd, fmtNum(cx-k*p.Density), fmtNum(y.px(p.X)))
	}
	for i := len(density) - 1; i >= 0; i-- {
		p := density[i]
		fmt.Fprintf(&b, "L%s,%s ", fmtNum(cx+k*p.Density), fmtNum(y.px(p.X)))
	}
	b.WriteString("Z")
	canvas.Path(b.String(), style)
}
