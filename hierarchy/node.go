// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hierarchy builds rooted trees from flat parent-linked
// records, aggregates values up the tree and lays trees out as
// treemaps or radial dendrograms.
package hierarchy

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Node is one node of a tree built by Stratify.
type Node struct {
	ID       string
	ParentID string // "" for the root
	Parent   *Node
	Children []*Node

	// Value is set by Aggregate.
	Value float64

	// Depth is the number of edges from the root. Height is the
	// number of edges on the longest path down to a leaf.
	Depth, Height int

	// Data is the record this node was built from.
	Data any
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Each calls f on n and its descendants in pre-order.
func (n *Node) Each(f func(*Node)) {
	f(n)
	for _, c := range n.Children {
		c.Each(f)
	}
}

// EachAfter calls f on n and its descendants in post-order.
func (n *Node) EachAfter(f func(*Node)) {
	for _, c := range n.Children {
		c.EachAfter(f)
	}
	f(n)
}

// Descendants returns n and all of its descendants in pre-order.
func (n *Node) Descendants() []*Node {
	var out []*Node
	n.Each(func(d *Node) { out = append(out, d) })
	return out
}

// Leaves returns the leaves under n, left to right.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Each(func(d *Node) {
		if d.IsLeaf() {
			out = append(out, d)
		}
	})
	return out
}

// Ancestors returns n, its parent, and so on up to the root.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for a := n; a != nil; a = a.Parent {
		out = append(out, a)
	}
	return out
}

// AncestorAt returns the ancestor of n (or n itself) at the given
// depth, or nil if n is shallower than depth.
func (n *Node) AncestorAt(depth int) *Node {
	if depth < 0 || depth > n.Depth {
		return nil
	}
	a := n
	for a.Depth > depth {
		a = a.Parent
	}
	return a
}

// Find returns the first node in pre-order with the given ID, or nil.
func (n *Node) Find(id string) *Node {
	if n.ID == id {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(id); f != nil {
			return f
		}
	}
	return nil
}

// Link is a parent-child edge.
type Link struct {
	Source, Target *Node
}

// Links returns the edges of the tree under n, one per non-root
// descendant, in pre-order of the child.
func (n *Node) Links() []Link {
	var out []Link
	n.Each(func(d *Node) {
		for _, c := range d.Children {
			out = append(out, Link{d, c})
		}
	})
	return out
}

func (n *Node) String() string {
	var b strings.Builder
	n.format(&b, "")
	return b.String()
}

func (n *Node) format(b *strings.Builder, indent string) {
	fmt.Fprintf(b, "%s%s %s\n", indent, n.ID, strconv.FormatFloat(n.Value, 'g', -1, 64))
	for _, c := range n.Children {
		c.format(b, indent+"  ")
	}
}

type jsonNode struct {
	ID       string      `json:"id"`
	Value    float64     `json:"value"`
	Depth    int         `json:"depth"`
	Height   int         `json:"height"`
	Data     any         `json:"data,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

func (n *Node) toJSON() *jsonNode {
	j := &jsonNode{ID: n.ID, Value: n.Value, Depth: n.Depth, Height: n.Height, Data: n.Data}
	for _, c := range n.Children {
		j.Children = append(j.Children, c.toJSON())
	}
	return j
}

// MarshalJSON encodes the tree under n as nested objects.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

// ErrNoRoot is returned by Stratify when no record lacks a parent.
var ErrNoRoot = errors.New("hierarchy: no root")

// MultipleRootsError is returned by Stratify when more than one
// record lacks a parent.
type MultipleRootsError struct {
	IDs []string
}

func (e *MultipleRootsError) Error() string {
	return fmt.Sprintf("hierarchy: multiple roots: %s", strings.Join(e.IDs, ", "))
}

// DanglingParentError is returned by Stratify when a record names a
// parent that no record has.
type DanglingParentError struct {
	ID, ParentID string
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("hierarchy: %q has missing parent %q", e.ID, e.ParentID)
}

// DuplicateIDError is returned by Stratify when two records share an
// ID.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("hierarchy: duplicate id %q", e.ID)
}

// CycleError is returned by Stratify when some records are not
// reachable from the root because their parent links form a cycle.
type CycleError struct {
	IDs []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("hierarchy: cycle among %s", strings.Join(e.IDs, ", "))
}
