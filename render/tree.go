// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/vizlab/go-vizlab/colorscale"
	"github.com/vizlab/go-vizlab/hierarchy"
)

// MaxLabel is the longest radial tree label before truncation.
const MaxLabel = 20

// truncate shortens s to n runes followed by "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// WriteTreemap draws the leaves of a treemap layout. Each leaf is
// filled with the faded category color of its top-level ancestor
// and labelled when its cell is large enough.
func WriteTreemap(w io.Writer, placed []hierarchy.Placed, width, height int, label func(*hierarchy.Node) string) error {
	if len(placed) == 0 {
		return errors.New("empty layout")
	}
	colors := colorscale.Categories(0.6)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Group("style=\"" + textStyle + "\"")
	for _, p := range placed {
		n := p.Node
		if !n.IsLeaf() {
			continue
		}
		key := n.ID
		if top := n.AncestorAt(1); top != nil {
			key = top.ID
		}
		r := p.Rect
		x, y := round(r.X0), round(r.Y0)
		cw, ch := round(r.X1)-x, round(r.Y1)-y
		name := n.ID
		if label != nil {
			name = label(n)
		}
		canvas.Group()
		canvas.Title(fmt.Sprintf("%s: %g", name, n.Value))
		canvas.Rect(x, y, cw, ch, fill(colors.Color(key))+";stroke:#fff")
		if cw > 40 && ch > 16 {
			canvas.Text(x+3, y+13, truncate(name, cw/7))
		}
		canvas.Gend()
	}
	canvas.Gend()
	canvas.End()
	return nil
}

// WriteRadialTree draws a radial cluster layout centered in the
// canvas. Labels are truncated to MaxLabel runes and flipped on the
// left half so they read outward.
func WriteRadialTree(w io.Writer, placed []hierarchy.Placed, width, height int, label func(*hierarchy.Node) string) error {
	if len(placed) == 0 {
		return errors.New("empty layout")
	}
	at := make(map[*hierarchy.Node]hierarchy.Placed, len(placed))
	for _, p := range placed {
		at[p.Node] = p
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", width/2, height/2))

	canvas.Group("style=\"stroke:#999;stroke-width:1;fill:none\"")
	for _, l := range placed[0].Node.Links() {
		s, t := at[l.Source], at[l.Target]
		canvas.Line(round(s.X), round(s.Y), round(t.X), round(t.Y))
	}
	canvas.Gend()

	for _, p := range placed {
		n := p.Node
		c := "#555"
		if n.IsLeaf() {
			c = "#999"
		}
		canvas.Circle(round(p.X), round(p.Y), 3, "fill:"+c)
	}

	canvas.Group("style=\"font-family:sans-serif;font-size:10px;fill:#333\"")
	for _, p := range placed {
		if p.Node.Parent == nil {
			continue
		}
		name := p.Node.ID
		if label != nil {
			name = label(p.Node)
		}
		name = truncate(name, MaxLabel)
		transform := fmt.Sprintf("rotate(%s) translate(%s,0)", fmtNum(p.Angle-90), fmtNum(p.Radius+6))
		anchor := "start"
		if p.Angle >= 180 {
			transform = fmt.Sprintf("rotate(%s) translate(%s,0) rotate(180)", fmtNum(p.Angle-90), fmtNum(p.Radius+6))
			anchor = "end"
		}
		canvas.Text(0, 3, name, fmt.Sprintf("transform=%q", transform), fmt.Sprintf("text-anchor=%q", anchor))
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return nil
}
