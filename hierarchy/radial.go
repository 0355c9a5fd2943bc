// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

// RadialCluster lays a tree out as a radial dendrogram. Leaves are
// spread evenly around the circle, with twice the gap between
// leaves of different parents; each internal node sits at the mean
// angle of its children. A node's radius is proportional to its
// depth, so leaves of different depths end on different rings.
type RadialCluster struct {
	// Degrees is the angular extent, usually 360.
	Degrees float64

	// Radius is the radius of the deepest ring.
	Radius float64
}

var _ Layout = RadialCluster{}

func (c RadialCluster) Layout(root *Node) []Placed {
	angle := make(map[*Node]float64)
	var prev *Node
	x := 0.0
	root.EachAfter(func(n *Node) {
		if n.IsLeaf() {
			if prev != nil {
				x += separation(n, prev)
			}
			angle[n] = x
			prev = n
			return
		}
		sum := 0.0
		for _, ch := range n.Children {
			sum += angle[ch]
		}
		angle[n] = sum / float64(len(n.Children))
	})

	left, right := root, root
	for !left.IsLeaf() {
		left = left.Children[0]
	}
	for !right.IsLeaf() {
		right = right.Children[len(right.Children)-1]
	}
	x0 := angle[left] - separation(left, right)/2
	x1 := angle[right] + separation(right, left)/2

	maxDepth := 0
	root.Each(func(n *Node) {
		if n.Depth-root.Depth > maxDepth {
			maxDepth = n.Depth - root.Depth
		}
	})

	var out []Placed
	root.Each(func(n *Node) {
		a := 0.0
		if x1 != x0 {
			a = (angle[n] - x0) / (x1 - x0) * c.Degrees
		}
		r := 0.0
		if maxDepth > 0 {
			r = float64(n.Depth-root.Depth) * c.Radius / float64(maxDepth)
		}
		px, py := polar(a, r)
		out = append(out, Placed{Node: n, X: px, Y: py, Angle: a, Radius: r})
	})
	return out
}

func separation(a, b *Node) float64 {
	if a.Parent == b.Parent {
		return 1
	}
	return 2
}
