// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import "math"

// A Layout assigns a position to every node of a tree.
type Layout interface {
	// Layout returns one Placed per node under root, in pre-order.
	// It does not modify the tree.
	Layout(root *Node) []Placed
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Dx() float64 { return r.X1 - r.X0 }
func (r Rect) Dy() float64 { return r.Y1 - r.Y0 }

// Placed is the position a Layout gave a node.
type Placed struct {
	Node *Node

	// Rect is the node's cell for area layouts such as Treemap.
	Rect Rect

	// X and Y are the node's anchor: the cell center for area
	// layouts and the Cartesian position relative to the center
	// for radial layouts.
	X, Y float64

	// Angle in degrees clockwise from 12 o'clock and Radius are
	// set by radial layouts.
	Angle, Radius float64
}

// polar converts an angle in degrees clockwise from 12 o'clock and
// a radius to Cartesian coordinates with y growing downward.
func polar(angle, radius float64) (x, y float64) {
	a := (angle - 90) * math.Pi / 180
	return radius * math.Cos(a), radius * math.Sin(a)
}
