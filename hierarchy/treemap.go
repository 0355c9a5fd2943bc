// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import "math"

// Treemap lays a tree out as nested rectangles whose areas are
// proportional to node values. Siblings are split recursively into
// two groups of roughly equal value, cutting along the longer side.
//
// Node values must already be set, typically by Aggregate.
type Treemap struct {
	Width, Height float64

	// PaddingInner separates siblings. PaddingOuter separates a
	// parent's edge from its children.
	PaddingInner, PaddingOuter float64

	// Round snaps every rectangle to integer coordinates.
	Round bool
}

var _ Layout = Treemap{}

func (t Treemap) Layout(root *Node) []Placed {
	rects := map[*Node]Rect{root: {0, 0, t.Width, t.Height}}
	pad := map[int]float64{0: 0}
	root.Each(func(n *Node) {
		r := rects[n]
		p := pad[n.Depth]
		r = shrink(r, p, p)
		rects[n] = r
		if n.IsLeaf() {
			return
		}
		p = t.PaddingInner / 2
		pad[n.Depth+1] = p
		inner := shrink(r, t.PaddingOuter-p, t.PaddingOuter-p)
		binary(n.Children, n.Value, inner, rects)
	})

	out := make([]Placed, 0, len(rects))
	root.Each(func(n *Node) {
		r := rects[n]
		if t.Round {
			r = Rect{math.Round(r.X0), math.Round(r.Y0), math.Round(r.X1), math.Round(r.Y1)}
		}
		out = append(out, Placed{Node: n, Rect: r, X: (r.X0 + r.X1) / 2, Y: (r.Y0 + r.Y1) / 2})
	})
	return out
}

// shrink insets r by dx and dy on each side, collapsing to the
// midline rather than inverting.
func shrink(r Rect, dx, dy float64) Rect {
	r = Rect{r.X0 + dx, r.Y0 + dy, r.X1 - dx, r.Y1 - dy}
	if r.X1 < r.X0 {
		m := (r.X0 + r.X1) / 2
		r.X0, r.X1 = m, m
	}
	if r.Y1 < r.Y0 {
		m := (r.Y0 + r.Y1) / 2
		r.Y0, r.Y1 = m, m
	}
	return r
}

// binary tiles nodes into r, whose total value is value.
func binary(nodes []*Node, value float64, r Rect, rects map[*Node]Rect) {
	sums := make([]float64, len(nodes)+1)
	for i, n := range nodes {
		sums[i+1] = sums[i] + n.Value
	}

	var partition func(i, j int, value float64, r Rect)
	partition = func(i, j int, value float64, r Rect) {
		if i >= j-1 {
			rects[nodes[i]] = r
			return
		}

		// Find the split k closest to half of the value.
		offset := sums[i]
		target := value/2 + offset
		k, hi := i+1, j-1
		for k < hi {
			mid := int(uint(k+hi) >> 1)
			if sums[mid] < target {
				k = mid + 1
			} else {
				hi = mid
			}
		}
		if target-sums[k-1] < sums[k]-target && i+1 < k {
			k--
		}

		left := sums[k] - offset
		right := value - left
		if r.Dx() > r.Dy() {
			xk := r.X1
			if value != 0 {
				xk = (r.X0*right + r.X1*left) / value
			}
			partition(i, k, left, Rect{r.X0, r.Y0, xk, r.Y1})
			partition(k, j, right, Rect{xk, r.Y0, r.X1, r.Y1})
		} else {
			yk := r.Y1
			if value != 0 {
				yk = (r.Y0*right + r.Y1*left) / value
			}
			partition(i, k, left, Rect{r.X0, r.Y0, r.X1, yk})
			partition(k, j, right, Rect{r.X0, yk, r.X1, r.Y1})
		}
	}
	partition(0, len(nodes), value, r)
}
