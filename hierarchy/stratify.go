// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hierarchy

import (
	"math"
	"strconv"
	"strings"
)

// Stratify builds a tree from flat records. idOf returns a record's
// unique ID and parentOf its parent's ID, with ok false for the root.
// Children appear in the order of their records.
//
// Stratify fails if there is not exactly one root, if a parent ID
// does not resolve, if IDs repeat or if parent links form a cycle.
func Stratify[T any](records []T, idOf func(T) string, parentOf func(T) (string, bool)) (*Node, error) {
	nodes := make([]*Node, len(records))
	byID := make(map[string]*Node, len(records))
	hasParent := make([]bool, len(records))
	var roots []*Node
	for i, r := range records {
		n := &Node{ID: idOf(r), Data: r}
		if _, dup := byID[n.ID]; dup {
			return nil, &DuplicateIDError{n.ID}
		}
		byID[n.ID] = n
		nodes[i] = n
		n.ParentID, hasParent[i] = parentOf(r)
		if !hasParent[i] {
			n.ParentID = ""
			roots = append(roots, n)
		}
	}

	switch {
	case len(roots) == 0:
		return nil, ErrNoRoot
	case len(roots) > 1:
		ids := make([]string, len(roots))
		for i, r := range roots {
			ids[i] = r.ID
		}
		return nil, &MultipleRootsError{ids}
	}

	for i, n := range nodes {
		if !hasParent[i] {
			continue
		}
		p, ok := byID[n.ParentID]
		if !ok {
			return nil, &DanglingParentError{n.ID, n.ParentID}
		}
		n.Parent = p
		p.Children = append(p.Children, n)
	}

	root := roots[0]
	reached := 0
	root.Each(func(n *Node) {
		reached++
		if n.Parent != nil {
			n.Depth = n.Parent.Depth + 1
		}
	})
	if reached != len(nodes) {
		var ids []string
		for _, n := range nodes {
			if root.Find(n.ID) == nil {
				ids = append(ids, n.ID)
			}
		}
		return nil, &CycleError{ids}
	}
	computeHeight(root)
	return root, nil
}

func computeHeight(root *Node) {
	root.EachAfter(func(n *Node) {
		n.Height = 0
		for _, c := range n.Children {
			if c.Height+1 > n.Height {
				n.Height = c.Height + 1
			}
		}
	})
}

// Aggregate returns a copy of the tree under root with Value set
// bottom-up: each leaf takes leafValue(leaf) and each internal node
// combines its children's values left to right. A nil combine sums.
// The input tree is not modified.
func Aggregate(root *Node, leafValue func(*Node) float64, combine func(a, b float64) float64) *Node {
	if combine == nil {
		combine = func(a, b float64) float64 { return a + b }
	}
	return aggregate(root, nil, leafValue, combine)
}

func aggregate(n, parent *Node, leafValue func(*Node) float64, combine func(a, b float64) float64) *Node {
	out := *n
	out.Parent = parent
	out.Children = nil
	if n.IsLeaf() {
		out.Value = leafValue(n)
		return &out
	}
	out.Children = make([]*Node, len(n.Children))
	for i, c := range n.Children {
		out.Children[i] = aggregate(c, &out, leafValue, combine)
		if i == 0 {
			out.Value = out.Children[i].Value
		} else {
			out.Value = combine(out.Value, out.Children[i].Value)
		}
	}
	return &out
}

// ParseAmount parses a numeric cell. Blank, missing or unparsable
// cells count as 0.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}
